package assemblyai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favbox/lfx/components"
)

func TestNewTranscriberValidation(t *testing.T) {
	_, err := NewTranscriber(nil)
	assert.True(t, components.IsConfigError(err))

	_, err = NewTranscriber(&Config{APIKey: "  "})
	assert.True(t, components.IsConfigError(err))
	assert.Contains(t, err.Error(), "api_key")
}

func TestClampInterval(t *testing.T) {
	assert.Equal(t, DefaultPollInterval, clampInterval(0))
	assert.Equal(t, 3*time.Second, clampInterval(time.Second))
	assert.Equal(t, 5*time.Second, clampInterval(5*time.Second))
	assert.Equal(t, 30*time.Second, clampInterval(time.Minute))
}

func TestSubmit(t *testing.T) {
	var gotReq transcriptRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, pathTranscript, r.URL.Path)
		assert.Equal(t, "aai-key", r.Header.Get("Authorization"))
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&gotReq))

		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"id":     "tr-1",
			"status": "queued",
		})
	}))
	defer srv.Close()

	tr, err := NewTranscriber(&Config{
		APIKey:        "aai-key",
		BaseURL:       srv.URL,
		LanguageCode:  "en",
		SpeakerLabels: true,
	})
	require.NoError(t, err)

	data, err := tr.Submit(context.Background(), "https://cdn.example.com/audio.mp3")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/audio.mp3", gotReq.AudioURL)
	assert.Equal(t, "en", gotReq.LanguageCode)
	assert.True(t, gotReq.SpeakerLabels)

	assert.Equal(t, "tr-1", data.Payload["transcript_id"])
	assert.Equal(t, "queued", data.Payload["status"])
	assert.Equal(t, "https://cdn.example.com/audio.mp3", data.Payload["audio_url"])
}

func TestSubmitValidation(t *testing.T) {
	tr, err := NewTranscriber(&Config{APIKey: "aai-key"})
	require.NoError(t, err)

	_, err = tr.Submit(context.Background(), "  ")
	assert.True(t, components.IsConfigError(err))
}

func TestSubmitMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tr, err := NewTranscriber(&Config{APIKey: "aai-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = tr.Submit(context.Background(), "https://cdn.example.com/audio.mp3")
	assert.True(t, components.IsVendorError(err))
}

func TestPollCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, pathTranscript+"/tr-1", r.URL.Path)

		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"id":         "tr-1",
			"status":     "completed",
			"text":       "hello world",
			"confidence": 0.97,
			"audio_url":  "https://cdn.example.com/audio.mp3",
			"utterances": []map[string]any{
				{"speaker": "A", "text": "hello"},
				{"speaker": "B", "text": "world"},
			},
		})
	}))
	defer srv.Close()

	tr, err := NewTranscriber(&Config{APIKey: "aai-key", BaseURL: srv.URL})
	require.NoError(t, err)

	data, err := tr.Poll(context.Background(), "tr-1")
	require.NoError(t, err)

	assert.Equal(t, "hello world", data.Text())
	assert.Equal(t, "completed", data.Payload["status"])
	assert.Equal(t, 0.97, data.Payload["confidence"])
	utterances := data.Payload["utterances"].([]map[string]any)
	require.Len(t, utterances, 2)
	assert.Equal(t, "A", utterances[0]["speaker"])
}

func TestPollErrorStatusBecomesErrorData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"id":     "tr-1",
			"status": "error",
			"error":  "audio file unreachable",
		})
	}))
	defer srv.Close()

	tr, err := NewTranscriber(&Config{APIKey: "aai-key", BaseURL: srv.URL})
	require.NoError(t, err)

	data, err := tr.Poll(context.Background(), "tr-1")
	require.NoError(t, err)
	assert.Equal(t, "audio file unreachable", data.Payload["error"])
}

func TestPollContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"id":     "tr-1",
			"status": "processing",
		})
	}))
	defer srv.Close()

	tr, err := NewTranscriber(&Config{APIKey: "aai-key", BaseURL: srv.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = tr.Poll(ctx, "tr-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
				"id":     "tr-9",
				"status": "queued",
			})
			return
		}
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"id":     "tr-9",
			"status": "completed",
			"text":   "done",
		})
	}))
	defer srv.Close()

	tr, err := NewTranscriber(&Config{APIKey: "aai-key", BaseURL: srv.URL})
	require.NoError(t, err)

	data, err := tr.Transcribe(context.Background(), "https://cdn.example.com/audio.mp3")
	require.NoError(t, err)
	assert.Equal(t, "done", data.Text())
}
