// Package registry 提供组件注册表：声明式描述符加显式构建函数，
// 宿主据此渲染配置表单并发起调用。
package registry

import (
	"fmt"

	"github.com/favbox/lfx/schema"
)

// Envelope 组件调用结果的封装联合，四个字段中恰好一个非空。
// 宿主按 Kind 分派，无需类型断言链。
type Envelope struct {
	Data     *schema.Data      `json:"data,omitempty"`
	DataList []*schema.Data    `json:"data_list,omitempty"`
	Message  *schema.Message   `json:"message,omitempty"`
	Frame    *schema.DataFrame `json:"frame,omitempty"`
}

// EnvelopeKind 封装的结果类型名。
type EnvelopeKind string

const (
	EnvelopeData     EnvelopeKind = "Data"
	EnvelopeDataList EnvelopeKind = "DataList"
	EnvelopeMessage  EnvelopeKind = "Message"
	EnvelopeFrame    EnvelopeKind = "DataFrame"
)

// NewDataEnvelope 封装单条记录。
func NewDataEnvelope(d *schema.Data) *Envelope {
	return &Envelope{Data: d}
}

// NewDataListEnvelope 封装记录列表。
func NewDataListEnvelope(list []*schema.Data) *Envelope {
	if list == nil {
		list = []*schema.Data{}
	}
	return &Envelope{DataList: list}
}

// NewMessageEnvelope 封装消息。
func NewMessageEnvelope(m *schema.Message) *Envelope {
	return &Envelope{Message: m}
}

// NewFrameEnvelope 封装表格。
func NewFrameEnvelope(f *schema.DataFrame) *Envelope {
	return &Envelope{Frame: f}
}

// Kind 返回结果类型名。
func (e *Envelope) Kind() EnvelopeKind {
	switch {
	case e.Data != nil:
		return EnvelopeData
	case e.DataList != nil:
		return EnvelopeDataList
	case e.Message != nil:
		return EnvelopeMessage
	default:
		return EnvelopeFrame
	}
}

// StatusText 生成结果的状态摘要文本，供旁路通道与宿主 UI 展示。
func (e *Envelope) StatusText() string {
	switch {
	case e.Data != nil:
		if e.Data.HasError() {
			return e.Data.GetString("error")
		}
		return e.Data.String()
	case e.DataList != nil:
		return fmt.Sprintf("%d records", len(e.DataList))
	case e.Message != nil:
		return e.Message.Text
	case e.Frame != nil:
		return fmt.Sprintf("%d rows", e.Frame.NumRows())
	default:
		return ""
	}
}
