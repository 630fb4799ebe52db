package schema

import (
	"time"

	"github.com/google/uuid"
)

// 消息发送方常量。
// 组件在未显式指定时使用这些默认值填充消息元数据。
const (
	// SenderAI 机器发送方，表示消息由模型生成。
	SenderAI = "Machine"
	// SenderUser 用户发送方，表示消息来自用户输入。
	SenderUser = "User"
	// SenderSystem 系统发送方，表示消息为系统指令。
	SenderSystem = "System"

	// SenderNameAI 机器发送方的默认显示名。
	SenderNameAI = "AI"
	// SenderNameUser 用户发送方的默认显示名。
	SenderNameUser = "User"

	// DefaultSessionID 默认会话标识。
	DefaultSessionID = "default"
)

// Message - 对话消息容器，会话类组件的输出形态。
//
// 一段命名文本外加发送方与会话元数据。Text 恒为字符串（不会是空指针
// 语义的缺失值）；Sender、SessionID 缺省时由组件补齐默认常量。
type Message struct {
	// ID 消息的唯一标识。
	ID string `json:"id"`

	// Text 消息文本，恒为字符串。
	Text string `json:"text"`

	// Sender 发送方类别，取值见 Sender* 常量。
	Sender string `json:"sender"`

	// SenderName 发送方显示名。
	SenderName string `json:"sender_name"`

	// SessionID 会话标识，用于把消息归入某次对话。
	SessionID string `json:"session_id"`

	// Timestamp 消息创建时间。
	Timestamp time.Time `json:"timestamp"`

	// Properties 额外属性，按需携带图标、来源模型等展示信息。
	Properties map[string]any `json:"properties,omitempty"`
}

// newMessage 创建消息并补齐标识、会话与时间戳。
func newMessage(text, sender, senderName string) *Message {
	return &Message{
		ID:         uuid.NewString(),
		Text:       text,
		Sender:     sender,
		SenderName: senderName,
		SessionID:  DefaultSessionID,
		Timestamp:  time.Now().UTC(),
	}
}

// NewAIMessage 创建一条机器消息。
func NewAIMessage(text string) *Message {
	return newMessage(text, SenderAI, SenderNameAI)
}

// NewUserMessage 创建一条用户消息。
func NewUserMessage(text string) *Message {
	return newMessage(text, SenderUser, SenderNameUser)
}

// NewSystemMessage 创建一条系统消息。
func NewSystemMessage(text string) *Message {
	return newMessage(text, SenderSystem, SenderSystem)
}

// WithSessionID 设置会话标识并返回消息本身。
func (m *Message) WithSessionID(sessionID string) *Message {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	m.SessionID = sessionID

	return m
}

// WithSenderName 设置发送方显示名并返回消息本身。
func (m *Message) WithSenderName(name string) *Message {
	m.SenderName = name
	return m
}

// WithProperty 写入额外属性并返回消息本身。
func (m *Message) WithProperty(key string, value any) *Message {
	if m.Properties == nil {
		m.Properties = make(map[string]any)
	}
	m.Properties[key] = value

	return m
}

// String 实现 Stringer 接口，返回消息文本。
func (m *Message) String() string {
	if m == nil {
		return ""
	}

	return m.Text
}

// ToData 将消息降级为通用记录，便于下游统一消费。
func (m *Message) ToData() *Data {
	d := NewData(map[string]any{
		"id":          m.ID,
		"sender":      m.Sender,
		"sender_name": m.SenderName,
		"session_id":  m.SessionID,
	}).WithText(m.Text)

	for k, v := range m.Properties {
		d.Set(k, v)
	}

	return d
}

// MessageFromData 从通用记录还原一条消息。
// 发送方与会话字段缺失时回填默认常量。
func MessageFromData(d *Data) *Message {
	m := &Message{
		ID:         d.GetString("id"),
		Text:       d.Text(),
		Sender:     d.GetString("sender"),
		SenderName: d.GetString("sender_name"),
		SessionID:  d.GetString("session_id"),
		Timestamp:  time.Now().UTC(),
	}

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Sender == "" {
		m.Sender = SenderAI
		if m.SenderName == "" {
			m.SenderName = SenderNameAI
		}
	}
	if m.SessionID == "" {
		m.SessionID = DefaultSessionID
	}

	return m
}
