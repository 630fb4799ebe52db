package redisvec

import (
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favbox/lfx/components"
)

func TestNewIndexerValidation(t *testing.T) {
	ctx := context.Background()

	_, err := NewIndexer(ctx, nil)
	assert.True(t, components.IsConfigError(err))

	_, err = NewIndexer(ctx, &IndexerConfig{})
	assert.True(t, components.IsConfigError(err))
	assert.Contains(t, err.Error(), "client")
}

func TestVectorToBytes(t *testing.T) {
	raw := VectorToBytes([]float64{1.5, -0.25})
	require.Len(t, raw, 8)

	first := math.Float32frombits(binary.LittleEndian.Uint32(raw[:4]))
	second := math.Float32frombits(binary.LittleEndian.Uint32(raw[4:]))
	assert.Equal(t, float32(1.5), first)
	assert.Equal(t, float32(-0.25), second)
}
