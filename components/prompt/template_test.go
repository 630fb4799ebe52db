package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/schema"
)

func TestNewPromptTemplateValidation(t *testing.T) {
	_, err := NewPromptTemplate(nil)
	assert.True(t, components.IsConfigError(err))

	_, err = NewPromptTemplate(&Config{Template: "  "})
	assert.True(t, components.IsConfigError(err))
}

func TestFormatFString(t *testing.T) {
	p, err := NewPromptTemplate(&Config{Template: "Answer the question about {topic} in {language}."})
	require.NoError(t, err)

	msg, err := p.Format(context.Background(), map[string]any{
		"topic":    "goroutines",
		"language": "Chinese",
	})
	require.NoError(t, err)

	assert.Equal(t, "Answer the question about goroutines in Chinese.", msg.Text)
	assert.Equal(t, schema.SenderAI, msg.Sender)
	assert.Equal(t, schema.DefaultSessionID, msg.SessionID)
}

func TestFormatGoTemplate(t *testing.T) {
	p, err := NewPromptTemplate(&Config{
		Template: "Hello {{.name}}, you have {{.count}} tasks.",
		Format:   GoTemplate,
		Sender:   schema.SenderUser,
	})
	require.NoError(t, err)

	msg, err := p.Format(context.Background(), map[string]any{"name": "alice", "count": 3})
	require.NoError(t, err)
	assert.Equal(t, "Hello alice, you have 3 tasks.", msg.Text)
	assert.Equal(t, schema.SenderUser, msg.Sender)
}

func TestFormatJinja2(t *testing.T) {
	p, err := NewPromptTemplate(&Config{
		Template: "{% for item in items %}{{ item }};{% endfor %}",
		Format:   Jinja2,
	})
	require.NoError(t, err)

	msg, err := p.Format(context.Background(), map[string]any{"items": []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "a;b;", msg.Text)
}

func TestFormatJinja2DisabledKeyword(t *testing.T) {
	p, err := NewPromptTemplate(&Config{
		Template: `{% include "other.tpl" %}`,
		Format:   Jinja2,
	})
	require.NoError(t, err)

	_, err = p.Format(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestFormatMissingVariable(t *testing.T) {
	t.Run("go template", func(t *testing.T) {
		p, err := NewPromptTemplate(&Config{Template: "{{.missing}}", Format: GoTemplate})
		require.NoError(t, err)

		_, err = p.Format(context.Background(), map[string]any{})
		require.Error(t, err)
	})

	t.Run("f-string", func(t *testing.T) {
		p, err := NewPromptTemplate(&Config{Template: "{missing}"})
		require.NoError(t, err)

		_, err = p.Format(context.Background(), map[string]any{})
		require.Error(t, err)
	})
}

func TestFormatSessionID(t *testing.T) {
	p, err := NewPromptTemplate(&Config{
		Template:  "hi",
		Sender:    schema.SenderSystem,
		SessionID: "sess-42",
	})
	require.NoError(t, err)

	msg, err := p.Format(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, schema.SenderSystem, msg.Sender)
	assert.Equal(t, "sess-42", msg.SessionID)
}

func TestUnknownFormatType(t *testing.T) {
	_, err := formatContent("x", nil, FormatType(99))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format type")
}
