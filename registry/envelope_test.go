package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/favbox/lfx/schema"
)

func TestEnvelopeKind(t *testing.T) {
	assert.Equal(t, EnvelopeData, NewDataEnvelope(schema.NewData(nil)).Kind())
	assert.Equal(t, EnvelopeDataList, NewDataListEnvelope(nil).Kind())
	assert.Equal(t, EnvelopeMessage, NewMessageEnvelope(schema.NewAIMessage("hi")).Kind())
	assert.Equal(t, EnvelopeFrame, NewFrameEnvelope(schema.NewDataFrame(nil)).Kind())
}

func TestNewDataListEnvelopeNeverNil(t *testing.T) {
	e := NewDataListEnvelope(nil)
	assert.NotNil(t, e.DataList)
	assert.Empty(t, e.DataList)
}

func TestStatusText(t *testing.T) {
	t.Run("单条记录", func(t *testing.T) {
		e := NewDataEnvelope(schema.NewData(map[string]any{"text": "hello"}))
		assert.NotEmpty(t, e.StatusText())
	})

	t.Run("失败记录", func(t *testing.T) {
		e := NewDataEnvelope(schema.ErrorData("boom"))
		assert.Equal(t, "boom", e.StatusText())
	})

	t.Run("记录列表", func(t *testing.T) {
		e := NewDataListEnvelope([]*schema.Data{
			schema.NewData(nil), schema.NewData(nil), schema.NewData(nil),
		})
		assert.Equal(t, "3 records", e.StatusText())
	})

	t.Run("消息", func(t *testing.T) {
		e := NewMessageEnvelope(schema.NewUserMessage("question"))
		assert.Equal(t, "question", e.StatusText())
	})

	t.Run("表格", func(t *testing.T) {
		e := NewFrameEnvelope(schema.DataFrameFromMaps([]map[string]any{
			{"a": 1}, {"a": 2},
		}))
		assert.Equal(t, "2 rows", e.StatusText())
	})
}
