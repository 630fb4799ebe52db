package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favbox/lfx/callbacks"
	"github.com/favbox/lfx/components"
)

func TestNewRegistersBuiltins(t *testing.T) {
	r, err := New(Config{})
	require.NoError(t, err)

	list := r.List()
	assert.Len(t, list, len(builtinBuilders()))

	// 清单按注册名排序。
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Name, list[i].Name)
	}

	_, ok := r.Lookup("calculator")
	assert.True(t, ok)
}

func TestNewSkipsDisabled(t *testing.T) {
	r, err := New(Config{Disabled: []string{"calculator", "notion_search"}})
	require.NoError(t, err)

	_, ok := r.Lookup("calculator")
	assert.False(t, ok)
	_, ok = r.Lookup("notion_search")
	assert.False(t, ok)
	_, ok = r.Lookup("google_search")
	assert.True(t, ok)
}

func TestRegisterValidation(t *testing.T) {
	r, err := New(Config{})
	require.NoError(t, err)

	build := func(context.Context, components.Inputs) (*Envelope, error) { return nil, nil }

	err = r.Register(Builder{Build: build})
	assert.True(t, components.IsConfigError(err))

	err = r.Register(Builder{Descriptor: components.Descriptor{Name: "x"}})
	assert.True(t, components.IsConfigError(err))

	err = r.Register(Builder{Descriptor: components.Descriptor{Name: "calculator"}, Build: build})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestInvoke(t *testing.T) {
	recorder := callbacks.NewStatusRecorder()
	r, err := New(Config{Handler: recorder})
	require.NoError(t, err)

	out, err := r.Invoke(context.Background(), "calculator",
		components.Inputs{"expression": "2 + 2 * 3"})
	require.NoError(t, err)

	assert.Equal(t, EnvelopeData, out.Kind())
	assert.Equal(t, "8", out.Data.Payload["result"])

	status, ok := recorder.Status("calculator")
	assert.True(t, ok)
	assert.NotEmpty(t, status)
}

func TestInvokeUnknownComponent(t *testing.T) {
	r, err := New(Config{})
	require.NoError(t, err)

	_, err = r.Invoke(context.Background(), "no_such_component", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestInvokeCallbackSequence(t *testing.T) {
	var events []string
	handler := callbacks.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *callbacks.RunInfo, _ components.Inputs) context.Context {
			events = append(events, "start:"+info.Name)
			return ctx
		}).
		OnEndFn(func(ctx context.Context, info *callbacks.RunInfo, status string) context.Context {
			events = append(events, "end:"+status)
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
			events = append(events, "error:"+err.Error())
			return ctx
		}).
		Build()

	r, err := New(Config{Handler: handler})
	require.NoError(t, err)

	boom := errors.New("boom")
	require.NoError(t, r.Register(Builder{
		Descriptor: components.Descriptor{Name: "failing"},
		Build: func(context.Context, components.Inputs) (*Envelope, error) {
			return nil, boom
		},
	}))

	_, err = r.Invoke(context.Background(), "failing", nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"start:failing", "error:boom"}, events)

	events = nil
	_, err = r.Invoke(context.Background(), "calculator",
		components.Inputs{"expression": "1 + 1"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "start:calculator", events[0])
	assert.Contains(t, events[1], "end:")
}

func TestInvokeRecoversPanic(t *testing.T) {
	recorder := callbacks.NewStatusRecorder()
	r, err := New(Config{Handler: recorder})
	require.NoError(t, err)

	require.NoError(t, r.Register(Builder{
		Descriptor: components.Descriptor{Name: "panicking"},
		Build: func(context.Context, components.Inputs) (*Envelope, error) {
			panic("builder exploded")
		},
	}))

	_, err = r.Invoke(context.Background(), "panicking", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "builder exploded")

	status, ok := recorder.Status("panicking")
	assert.True(t, ok)
	assert.Contains(t, status, "builder exploded")
}

func TestInvokePromptTemplate(t *testing.T) {
	r, err := New(Config{})
	require.NoError(t, err)

	out, err := r.Invoke(context.Background(), "prompt_template", components.Inputs{
		"template": "Hello {name}!",
		"variables": map[string]any{
			"name": "world",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, EnvelopeMessage, out.Kind())
	assert.Equal(t, "Hello world!", out.Message.Text)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvDisabledComponents, " calculator , ,notion_search ")

	conf := ConfigFromEnv()
	assert.Equal(t, []string{"calculator", "notion_search"}, conf.Disabled)

	t.Setenv(EnvDisabledComponents, "")
	conf = ConfigFromEnv()
	assert.Empty(t, conf.Disabled)
}
