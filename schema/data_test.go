package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataText(t *testing.T) {
	t.Run("默认文本键", func(t *testing.T) {
		d := NewTextData("hello")
		assert.Equal(t, "hello", d.Text())
		assert.Equal(t, "hello", d.String())
	})

	t.Run("自定义文本键", func(t *testing.T) {
		d := NewData(map[string]any{"content": "hi", "text": "ignored"}).WithTextKey("content")
		assert.Equal(t, "hi", d.Text())
	})

	t.Run("文本键缺失时回退为 JSON", func(t *testing.T) {
		d := NewData(map[string]any{"a": 1})
		assert.Equal(t, "", d.Text())
		assert.Contains(t, d.String(), `"a"`)
	})
}

func TestDataAccess(t *testing.T) {
	d := NewData(nil)
	assert.NotNil(t, d.Payload)

	_, ok := d.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "", d.GetString("missing"))

	d.Set("b", "2").Set("a", 1)
	assert.True(t, d.Has("a"))
	assert.Equal(t, "2", d.GetString("b"))
	assert.Equal(t, []string{"a", "b"}, d.Keys())

	var nilData *Data
	_, ok = nilData.Get("a")
	assert.False(t, ok)
	assert.Equal(t, "", nilData.String())
}

func TestErrorData(t *testing.T) {
	d := ErrorData("boom")
	assert.True(t, d.HasError())
	assert.Equal(t, "boom", d.GetString("error"))
	assert.False(t, NewTextData("ok").HasError())
}

func TestDataDocumentRoundTrip(t *testing.T) {
	d := NewData(map[string]any{
		"text":   "content here",
		"id":     "doc-1",
		"source": "unit",
	})

	doc := d.ToDocument()
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, "content here", doc.Content)
	assert.Equal(t, "unit", doc.MetaData["source"])
	assert.NotContains(t, doc.MetaData, "text")

	back := DataFromDocument(doc)
	assert.Equal(t, "content here", back.Text())
	assert.Equal(t, "doc-1", back.GetString("id"))
	assert.Equal(t, "unit", back.GetString("source"))
}
