package csv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favbox/lfx/components"
)

func TestNewLoaderValidation(t *testing.T) {
	_, err := NewLoader(nil)
	assert.True(t, components.IsConfigError(err))

	t.Run("无数据源", func(t *testing.T) {
		_, err := NewLoader(&Config{})
		assert.True(t, components.IsConfigError(err))
		assert.Contains(t, err.Error(), "exactly one")
	})

	t.Run("多数据源", func(t *testing.T) {
		_, err := NewLoader(&Config{Text: "a,b", Reader: strings.NewReader("a,b")})
		assert.True(t, components.IsConfigError(err))
		assert.Contains(t, err.Error(), "exactly one")
	})

	t.Run("后缀不是csv", func(t *testing.T) {
		// 校验在访问文件系统之前完成，路径不存在也没关系。
		_, err := NewLoader(&Config{FilePath: "/no/such/file.txt"})
		assert.True(t, components.IsConfigError(err))
		assert.Contains(t, err.Error(), ".csv")
	})
}

func TestLoadFromText(t *testing.T) {
	l, err := NewLoader(&Config{Text: "name,age\nalice,30\nbob,25\n"})
	require.NoError(t, err)

	records, err := l.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "alice", records[0].Payload["name"])
	assert.Equal(t, "30", records[0].Payload["age"])
	assert.Equal(t, "bob", records[1].Payload["name"])
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,city\n1,beijing\n"), 0o644))

	l, err := NewLoader(&Config{FilePath: path, TextKey: "city"})
	require.NoError(t, err)

	records, err := l.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "beijing", records[0].Text())
}

func TestLoadFromReader(t *testing.T) {
	l, err := NewLoader(&Config{Reader: strings.NewReader("k\nv1\nv2\nv3\n")})
	require.NoError(t, err)

	records, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestLoadEmptyInput(t *testing.T) {
	t.Run("完全为空", func(t *testing.T) {
		l, err := NewLoader(&Config{Reader: strings.NewReader("")})
		require.NoError(t, err)

		records, err := l.Load(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.NotNil(t, records)
	})

	t.Run("只有表头", func(t *testing.T) {
		l, err := NewLoader(&Config{Text: "a,b,c\n"})
		require.NoError(t, err)

		records, err := l.Load(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.NotNil(t, records)
	})
}

func TestLoadMissingFile(t *testing.T) {
	l, err := NewLoader(&Config{FilePath: "/no/such/dir/data.csv"})
	require.NoError(t, err)

	_, err = l.Load(context.Background())
	assert.True(t, components.IsVendorError(err))
}
