package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMessages(t *testing.T) {
	ai := NewAIMessage("reply")
	assert.Equal(t, SenderAI, ai.Sender)
	assert.Equal(t, SenderNameAI, ai.SenderName)
	assert.Equal(t, DefaultSessionID, ai.SessionID)
	assert.NotEmpty(t, ai.ID)
	assert.False(t, ai.Timestamp.IsZero())

	user := NewUserMessage("question")
	assert.Equal(t, SenderUser, user.Sender)
	assert.NotEqual(t, ai.ID, user.ID)

	system := NewSystemMessage("instruction")
	assert.Equal(t, SenderSystem, system.Sender)
}

func TestMessageChaining(t *testing.T) {
	m := NewAIMessage("hi").
		WithSessionID("session-1").
		WithSenderName("Bot").
		WithProperty("model", "gpt-4o-mini")

	assert.Equal(t, "session-1", m.SessionID)
	assert.Equal(t, "Bot", m.SenderName)
	assert.Equal(t, "gpt-4o-mini", m.Properties["model"])

	m.WithSessionID("")
	assert.Equal(t, DefaultSessionID, m.SessionID)

	assert.Equal(t, "hi", m.String())
	var nilMsg *Message
	assert.Equal(t, "", nilMsg.String())
}

func TestMessageDataRoundTrip(t *testing.T) {
	m := NewAIMessage("the reply").
		WithSessionID("s1").
		WithProperty("finish_reason", "stop")

	d := m.ToData()
	assert.Equal(t, "the reply", d.Text())
	assert.Equal(t, "s1", d.GetString("session_id"))
	assert.Equal(t, "stop", d.GetString("finish_reason"))

	back := MessageFromData(d)
	assert.Equal(t, m.ID, back.ID)
	assert.Equal(t, m.Text, back.Text)
	assert.Equal(t, m.Sender, back.Sender)
	assert.Equal(t, "s1", back.SessionID)
}

func TestMessageFromDataDefaults(t *testing.T) {
	back := MessageFromData(NewTextData("bare"))
	assert.Equal(t, "bare", back.Text)
	assert.Equal(t, SenderAI, back.Sender)
	assert.Equal(t, SenderNameAI, back.SenderName)
	assert.Equal(t, DefaultSessionID, back.SessionID)
	assert.NotEmpty(t, back.ID)
}
