package components

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	err := ErrRequiredField("api_key")
	assert.Contains(t, err.Error(), `"api_key"`)
	assert.Contains(t, err.Error(), "required")
	assert.True(t, IsConfigError(err))

	bare := NewConfigError("", "config is nil")
	assert.Equal(t, "invalid configuration: config is nil", bare.Error())

	wrapped := fmt.Errorf("building component: %w", err)
	assert.True(t, IsConfigError(wrapped))
	assert.False(t, IsVendorError(wrapped))
}

func TestVendorError(t *testing.T) {
	cause := errors.New("status 429")
	err := WrapVendor("openai", "/chat/completions", cause)

	assert.True(t, IsVendorError(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "openai")
	assert.Contains(t, err.Error(), "/chat/completions")

	var ve *VendorError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "openai", ve.Vendor)

	assert.Nil(t, WrapVendor("openai", "op", nil))
}

func TestDependencyError(t *testing.T) {
	err := &DependencyError{Dependency: "milvus client", Hint: "pass a connected client"}
	assert.Contains(t, err.Error(), "milvus client")
	assert.Contains(t, err.Error(), "pass a connected client")

	noHint := &DependencyError{Dependency: "redis"}
	assert.Equal(t, "missing dependency: redis", noHint.Error())
}
