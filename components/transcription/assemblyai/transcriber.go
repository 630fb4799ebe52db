// Package assemblyai 实现基于 AssemblyAI 的语音转写组件。
// 提交与轮询拆成两步，轮询间隔收敛到服务方允许的区间。
package assemblyai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/internal/httpx"
	"github.com/favbox/lfx/schema"
)

const (
	vendorName     = "assemblyai"
	defaultBaseURL = "https://api.assemblyai.com"
	pathTranscript = "/v2/transcript"
)

// PollIntervalRange 允许的轮询间隔区间（秒）。
var PollIntervalRange = components.RangeSpec{Min: 3, Max: 30}

// DefaultPollInterval 默认轮询间隔。
const DefaultPollInterval = 3 * time.Second

// Config 转写组件的配置。
type Config struct {
	// APIKey AssemblyAI API 密钥。必填。
	APIKey string

	// BaseURL 服务地址，默认官方端点。
	BaseURL string

	// Timeout 单次请求超时，默认 httpx.DefaultTimeout。
	Timeout time.Duration

	// PollInterval 轮询间隔，收敛到 PollIntervalRange，默认 3 秒。
	PollInterval time.Duration

	// LanguageCode 音频语言，为空时由服务方检测。
	LanguageCode string

	// SpeakerLabels 是否区分说话人。
	SpeakerLabels bool
}

// Transcriber 基于 AssemblyAI 的转写实现。
type Transcriber struct {
	config Config
	client *httpx.Client
}

// NewTranscriber 创建转写组件。
func NewTranscriber(conf *Config) (*Transcriber, error) {
	if conf == nil {
		return nil, components.NewConfigError("", "config is nil")
	}
	if strings.TrimSpace(conf.APIKey) == "" {
		return nil, components.ErrRequiredField("api_key")
	}
	conf.PollInterval = clampInterval(conf.PollInterval)

	baseURL := conf.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Transcriber{
		config: *conf,
		client: httpx.New(vendorName, baseURL, conf.Timeout, map[string]string{
			"Authorization": conf.APIKey,
		}),
	}, nil
}

// clampInterval 把轮询间隔收敛到允许区间，零值取默认。
func clampInterval(interval time.Duration) time.Duration {
	if interval <= 0 {
		return DefaultPollInterval
	}
	seconds := PollIntervalRange.Clamp(interval.Seconds())
	return time.Duration(seconds * float64(time.Second))
}

type transcriptRequest struct {
	AudioURL      string `json:"audio_url"`
	LanguageCode  string `json:"language_code,omitempty"`
	SpeakerLabels bool   `json:"speaker_labels,omitempty"`
}

type transcriptResponse struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	Text       string  `json:"text"`
	AudioURL   string  `json:"audio_url"`
	Error      string  `json:"error"`
	Confidence float64 `json:"confidence"`
	Utterances []struct {
		Speaker string `json:"speaker"`
		Text    string `json:"text"`
	} `json:"utterances"`
}

// Submit 提交转写任务，返回含 "transcript_id" 的记录。
func (t *Transcriber) Submit(ctx context.Context, audioURL string) (*schema.Data, error) {
	if strings.TrimSpace(audioURL) == "" {
		return nil, components.ErrRequiredField("audio_url")
	}

	req := transcriptRequest{
		AudioURL:      audioURL,
		LanguageCode:  t.config.LanguageCode,
		SpeakerLabels: t.config.SpeakerLabels,
	}

	var resp transcriptResponse
	if err := t.client.PostJSON(ctx, pathTranscript, req, &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, components.WrapVendor(vendorName, "submit",
			errors.New("response contains no transcript id"))
	}

	return schema.NewData(map[string]any{
		"transcript_id": resp.ID,
		"status":        resp.Status,
		"audio_url":     audioURL,
	}), nil
}

// Poll 轮询转写任务直到完成或失败。
// 失败结果转换为带 "error" 键的记录返回，不作为 error 抛出。
func (t *Transcriber) Poll(ctx context.Context, transcriptID string) (*schema.Data, error) {
	if strings.TrimSpace(transcriptID) == "" {
		return nil, components.ErrRequiredField("transcript_id")
	}

	ticker := time.NewTicker(t.config.PollInterval)
	defer ticker.Stop()

	for {
		var resp transcriptResponse
		if err := t.client.GetJSON(ctx, pathTranscript+"/"+transcriptID, nil, &resp); err != nil {
			return nil, err
		}

		switch resp.Status {
		case "completed":
			return t.resultData(&resp), nil
		case "error":
			msg := resp.Error
			if msg == "" {
				msg = "transcription failed"
			}
			return schema.ErrorData(msg), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Transcribe 提交音频并轮询到结束。
func (t *Transcriber) Transcribe(ctx context.Context, audioURL string) (*schema.Data, error) {
	submitted, err := t.Submit(ctx, audioURL)
	if err != nil {
		return nil, err
	}
	return t.Poll(ctx, submitted.GetString("transcript_id"))
}

// resultData 文本与话语列表排在前面，与下游消费顺序一致。
func (t *Transcriber) resultData(resp *transcriptResponse) *schema.Data {
	utterances := make([]map[string]any, 0, len(resp.Utterances))
	for _, u := range resp.Utterances {
		utterances = append(utterances, map[string]any{
			"speaker": u.Speaker,
			"text":    u.Text,
		})
	}

	return schema.NewData(map[string]any{
		schema.DefaultTextKey: resp.Text,
		"utterances":          utterances,
		"id":                  resp.ID,
		"status":              resp.Status,
		"confidence":          resp.Confidence,
		"audio_url":           resp.AudioURL,
	})
}
