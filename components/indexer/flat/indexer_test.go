package flat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/embedding"
	"github.com/favbox/lfx/schema"
)

// hashEmbedder 确定性嵌入器：按字符分布生成向量，测试专用。
type hashEmbedder struct{}

func (hashEmbedder) EmbedStrings(_ context.Context, texts []string, _ ...embedding.Option) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		v := make([]float64, 16)
		for _, r := range text {
			v[int(r)%16]++
		}
		vectors[i] = v
	}
	return vectors, nil
}

func TestNewIndexerValidation(t *testing.T) {
	ctx := context.Background()

	_, err := NewIndexer(ctx, nil)
	assert.True(t, components.IsConfigError(err))

	_, err = NewIndexer(ctx, &IndexerConfig{Embedding: hashEmbedder{}})
	assert.True(t, components.IsConfigError(err))
	assert.Contains(t, err.Error(), "directory")

	_, err = NewIndexer(ctx, &IndexerConfig{Directory: t.TempDir()})
	assert.True(t, components.IsConfigError(err))
	assert.Contains(t, err.Error(), "embedding")
}

func TestStoreAssignsIDs(t *testing.T) {
	ctx := context.Background()
	idx, err := NewIndexer(ctx, &IndexerConfig{
		Directory: t.TempDir(),
		Embedding: hashEmbedder{},
	})
	require.NoError(t, err)

	ids, err := idx.Store(ctx, []*schema.Document{
		{ID: "fixed", Content: "first document"},
		{Content: "second document"},
	})
	require.NoError(t, err)

	require.Len(t, ids, 2)
	assert.Equal(t, "fixed", ids[0])
	assert.NotEmpty(t, ids[1])
	assert.NotEqual(t, ids[0], ids[1])
}

func TestStoreEmptyDocs(t *testing.T) {
	ctx := context.Background()
	idx, err := NewIndexer(ctx, &IndexerConfig{
		Directory: t.TempDir(),
		Embedding: hashEmbedder{},
	})
	require.NoError(t, err)

	_, err = idx.Store(ctx, nil)
	assert.True(t, components.IsConfigError(err))
}
