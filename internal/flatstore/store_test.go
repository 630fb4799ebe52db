package flatstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenEmpty(t *testing.T) {
	s, err := Open(t.TempDir(), "idx")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Search([]float64{1, 0}, 4, 0))
}

func TestAddAndReload(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, "idx")
	require.NoError(t, err)
	require.NoError(t, s.Add([]Entry{
		{ID: "a", Content: "first", Vector: []float64{1, 0}},
		{ID: "b", Content: "second", Vector: []float64{0, 1}, MetaData: map[string]any{"source": "unit"}},
	}))
	assert.Equal(t, 2, s.Len())

	// 重新打开后从盘上恢复。
	reloaded, err := Open(dir, "idx")
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Len())

	hits := reloaded.Search([]float64{0, 1}, 1, 0)
	require.Len(t, hits, 1)
	assert.Equal(t, "b", hits[0].Entry.ID)
	assert.Equal(t, "unit", hits[0].Entry.MetaData["source"])
}

func TestSearchOrderingAndTopK(t *testing.T) {
	s, err := Open(t.TempDir(), "idx")
	require.NoError(t, err)
	require.NoError(t, s.Add([]Entry{
		{ID: "exact", Vector: []float64{1, 0}},
		{ID: "near", Vector: []float64{1, 0.2}},
		{ID: "far", Vector: []float64{0, 1}},
	}))

	hits := s.Search([]float64{1, 0}, 2, 0)
	require.Len(t, hits, 2)
	assert.Equal(t, "exact", hits[0].Entry.ID)
	assert.Equal(t, "near", hits[1].Entry.ID)
	assert.Greater(t, hits[0].Score, hits[1].Score)

	assert.Nil(t, s.Search([]float64{1, 0}, 0, 0))
}

func TestSearchThreshold(t *testing.T) {
	s, err := Open(t.TempDir(), "idx")
	require.NoError(t, err)
	require.NoError(t, s.Add([]Entry{
		{ID: "aligned", Vector: []float64{1, 0}},
		{ID: "orthogonal", Vector: []float64{0, 1}},
	}))

	hits := s.Search([]float64{1, 0}, 10, 0.5)
	require.Len(t, hits, 1)
	assert.Equal(t, "aligned", hits[0].Entry.ID)
}

func TestCosineEdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, cosine(nil, nil))
	assert.Equal(t, 0.0, cosine([]float64{1}, []float64{1, 2}))
	assert.Equal(t, 0.0, cosine([]float64{0, 0}, []float64{1, 1}))
	assert.InDelta(t, 1.0, cosine([]float64{2, 0}, []float64{4, 0}), 1e-9)
}
