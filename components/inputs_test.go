package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favbox/lfx/schema"
)

func TestInputsString(t *testing.T) {
	in := Inputs{
		"s": "hello",
		"f": 3.5,
		"i": 7,
		"b": true,
		"n": nil,
	}

	assert.Equal(t, "hello", in.String("s"))
	assert.Equal(t, "3.5", in.String("f"))
	assert.Equal(t, "7", in.String("i"))
	assert.Equal(t, "true", in.String("b"))
	assert.Equal(t, "", in.String("n"))
	assert.Equal(t, "", in.String("missing"))
}

func TestInputsNumeric(t *testing.T) {
	in := Inputs{
		"int":    5,
		"json":   float64(6),
		"str":    " 7 ",
		"bad":    "seven",
		"strf":   "2.5",
		"floatv": 1.25,
	}

	assert.Equal(t, 5, in.Int("int", 0))
	assert.Equal(t, 6, in.Int("json", 0))
	assert.Equal(t, 7, in.Int("str", 0))
	assert.Equal(t, 9, in.Int("bad", 9))
	assert.Equal(t, 9, in.Int("missing", 9))

	assert.Equal(t, 1.25, in.Float("floatv", 0))
	assert.Equal(t, 2.5, in.Float("strf", 0))
	assert.Equal(t, 0.5, in.Float("missing", 0.5))
}

func TestInputsBoolAndSlice(t *testing.T) {
	in := Inputs{
		"on":    true,
		"str":   "true",
		"list":  []string{"a", "b"},
		"anys":  []any{"x", "y"},
		"mixed": []any{"x", 1},
	}

	assert.True(t, in.Bool("on", false))
	assert.False(t, in.Bool("str", false))
	assert.True(t, in.Bool("missing", true))

	assert.Equal(t, []string{"a", "b"}, in.StringSlice("list"))
	assert.Equal(t, []string{"x", "y"}, in.StringSlice("anys"))
	assert.Nil(t, in.StringSlice("mixed"))
	assert.Nil(t, in.StringSlice("missing"))
}

func TestInputsData(t *testing.T) {
	record := schema.NewTextData("hello")
	in := Inputs{
		"one":  record,
		"many": []*schema.Data{record, record},
	}

	d, ok := in.Data("one")
	require.True(t, ok)
	assert.Equal(t, "hello", d.Text())

	_, ok = in.Data("missing")
	assert.False(t, ok)

	assert.Len(t, in.DataList("many"), 2)
	// 单条记录提升为单元素列表。
	assert.Len(t, in.DataList("one"), 1)
	assert.Nil(t, in.DataList("missing"))
}

func TestInputsRequireString(t *testing.T) {
	in := Inputs{"ok": "value", "blank": "  "}

	s, err := in.RequireString("ok")
	require.NoError(t, err)
	assert.Equal(t, "value", s)

	_, err = in.RequireString("blank")
	assert.True(t, IsConfigError(err))

	_, err = in.RequireString("missing")
	assert.True(t, IsConfigError(err))
}
