package redisvec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favbox/lfx/components"
)

func TestNewRetrieverValidation(t *testing.T) {
	ctx := context.Background()

	_, err := NewRetriever(ctx, nil)
	assert.True(t, components.IsConfigError(err))

	_, err = NewRetriever(ctx, &RetrieverConfig{})
	assert.True(t, components.IsConfigError(err))
	assert.Contains(t, err.Error(), "client")
}

func TestParseSearchReply(t *testing.T) {
	r := &Retriever{config: RetrieverConfig{KeyPrefix: DefaultKeyPrefix}}

	t.Run("命中两条", func(t *testing.T) {
		docs, err := r.parseSearchReply([]any{
			int64(2),
			"lfx:doc:a", []any{"content", "first", "metadata", `{"lang":"go"}`, "score", "0.1"},
			"lfx:doc:b", []any{"content", "second", "score", "0.4"},
		})
		require.NoError(t, err)

		require.Len(t, docs, 2)
		assert.Equal(t, "a", docs[0].ID)
		assert.Equal(t, "first", docs[0].Content)
		assert.Equal(t, "go", docs[0].MetaData["lang"])
		assert.InDelta(t, 0.9, docs[0].Score(), 1e-9)
		assert.InDelta(t, 0.6, docs[1].Score(), 1e-9)
	})

	t.Run("无命中", func(t *testing.T) {
		docs, err := r.parseSearchReply([]any{int64(0)})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("回复类型错误", func(t *testing.T) {
		_, err := r.parseSearchReply("not an array")
		require.Error(t, err)

		_, err = r.parseSearchReply([]any{int64(1), "key", "not a field list"})
		require.Error(t, err)
	})
}
