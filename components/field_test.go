package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeSpecClamp(t *testing.T) {
	r := RangeSpec{Min: 3, Max: 30}

	assert.Equal(t, 3.0, r.Clamp(1))
	assert.Equal(t, 30.0, r.Clamp(100))
	assert.Equal(t, 15.0, r.Clamp(15))
	assert.Equal(t, 3.0, r.Clamp(3))
	assert.Equal(t, 30.0, r.Clamp(30))

	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(30))
	assert.False(t, r.Contains(2.9))
	assert.False(t, r.Contains(30.1))
}

func TestDescriptorFieldByName(t *testing.T) {
	d := Descriptor{
		Name: "example",
		Kind: ComponentOfTool,
		Inputs: []Field{
			{Name: "api_key", Type: FieldTypeSecret, Required: true},
			{Name: "query", Type: FieldTypeStr},
		},
	}

	f, ok := d.FieldByName("api_key")
	assert.True(t, ok)
	assert.True(t, f.Required)
	assert.Equal(t, FieldTypeSecret, f.Type)

	_, ok = d.FieldByName("missing")
	assert.False(t, ok)
}
