package pgvector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/favbox/lfx/components"
)

func TestNewRetrieverValidation(t *testing.T) {
	ctx := context.Background()

	_, err := NewRetriever(ctx, nil)
	assert.True(t, components.IsConfigError(err))

	_, err = NewRetriever(ctx, &RetrieverConfig{})
	assert.True(t, components.IsConfigError(err))
	assert.Contains(t, err.Error(), "pool")
}
