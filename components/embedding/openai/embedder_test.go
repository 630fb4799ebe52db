package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/embedding"
)

func TestNewEmbedderValidation(t *testing.T) {
	ctx := context.Background()

	_, err := NewEmbedder(ctx, nil)
	assert.True(t, components.IsConfigError(err))

	_, err = NewEmbedder(ctx, &EmbedderConfig{APIKey: "   "})
	assert.True(t, components.IsConfigError(err))
	assert.Contains(t, err.Error(), "api_key")
}

func TestEmbedStrings(t *testing.T) {
	var gotReq embeddingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&gotReq))

		// 响应刻意乱序，嵌入器须按 index 归位。
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"model": gotReq.Model,
			"data": []map[string]any{
				{"index": 1, "embedding": []float64{0, 1}},
				{"index": 0, "embedding": []float64{1, 0}},
			},
		})
	}))
	defer srv.Close()

	e, err := NewEmbedder(context.Background(), &EmbedderConfig{APIKey: "sk-test", BaseURL: srv.URL})
	require.NoError(t, err)

	vectors, err := e.EmbedStrings(context.Background(), []string{"first", "second"})
	require.NoError(t, err)

	assert.Equal(t, defaultModel, gotReq.Model)
	assert.Equal(t, []string{"first", "second"}, gotReq.Input)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float64{1, 0}, vectors[0])
	assert.Equal(t, []float64{0, 1}, vectors[1])
}

func TestEmbedStringsModelOption(t *testing.T) {
	var gotReq embeddingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&gotReq))
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"index": 0, "embedding": []float64{1}}},
		})
	}))
	defer srv.Close()

	e, err := NewEmbedder(context.Background(), &EmbedderConfig{APIKey: "sk-test", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = e.EmbedStrings(context.Background(), []string{"x"},
		embedding.WithModel("text-embedding-3-large"))
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-large", gotReq.Model)
}

func TestEmbedStringsCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	e, err := NewEmbedder(context.Background(), &EmbedderConfig{APIKey: "sk-test", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = e.EmbedStrings(context.Background(), []string{"x"})
	assert.True(t, components.IsVendorError(err))
	assert.Contains(t, err.Error(), "expected 1 embeddings")
}

func TestEmbedStringsEmptyInput(t *testing.T) {
	e, err := NewEmbedder(context.Background(), &EmbedderConfig{APIKey: "sk-test"})
	require.NoError(t, err)

	_, err = e.EmbedStrings(context.Background(), nil)
	assert.True(t, components.IsConfigError(err))
}
