// Package openai 实现基于 OpenAI Chat Completions API 的聊天模型组件。
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/model"
	"github.com/favbox/lfx/internal/generic"
	"github.com/favbox/lfx/internal/httpx"
	"github.com/favbox/lfx/schema"
)

const (
	vendorName     = "openai"
	defaultBaseURL = "https://api.openai.com/v1"
	pathChat       = "/chat/completions"
)

// ChatModelConfig 聊天模型组件的配置。
type ChatModelConfig struct {
	// APIKey OpenAI API 密钥。必填。
	APIKey string

	// Model 模型名称，如 "gpt-4o-mini"。必填。
	Model string

	// BaseURL 服务地址，默认官方端点。
	// 指向兼容网关（Azure 以外的 OpenAI 兼容服务）时修改。
	BaseURL string

	// Timeout 单次请求超时，默认 httpx.DefaultTimeout。
	Timeout time.Duration

	// Temperature 默认采样温度。
	Temperature *float64

	// MaxTokens 默认最大生成 token 数。
	MaxTokens *int
}

// ChatModel 基于 OpenAI 的聊天模型实现。
type ChatModel struct {
	config ChatModelConfig
	client *httpx.Client
}

// NewChatModel 创建聊天模型组件。
// 必填字段为空时在访问供应商前返回配置错误。
func NewChatModel(_ context.Context, conf *ChatModelConfig) (*ChatModel, error) {
	if conf == nil {
		return nil, components.NewConfigError("", "config is nil")
	}
	if strings.TrimSpace(conf.APIKey) == "" {
		return nil, components.ErrRequiredField("api_key")
	}
	if strings.TrimSpace(conf.Model) == "" {
		return nil, components.ErrRequiredField("model")
	}

	baseURL := conf.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &ChatModel{
		config: *conf,
		client: httpx.New(vendorName, baseURL, conf.Timeout, map[string]string{
			"Authorization": "Bearer " + conf.APIKey,
		}),
	}, nil
}

// chatMessage Chat Completions 的消息结构。
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest Chat Completions 的请求体。
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
}

// chatResponse Chat Completions 的响应体。
type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Generate 实现 model.ChatModel 接口。
func (cm *ChatModel) Generate(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if len(messages) == 0 {
		return nil, components.NewConfigError("messages", "must not be empty")
	}

	options := model.GetCommonOptions(&model.Options{
		Model:       generic.PtrOf(cm.config.Model),
		Temperature: cm.config.Temperature,
		MaxTokens:   cm.config.MaxTokens,
	}, opts...)

	req := chatRequest{
		Model:       generic.ValueOf(options.Model, cm.config.Model),
		Messages:    make([]chatMessage, 0, len(messages)),
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
		TopP:        options.TopP,
		Stop:        options.Stop,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, chatMessage{Role: roleOf(m), Content: m.Text})
	}

	var resp chatResponse
	if err := cm.client.PostJSON(ctx, pathChat, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, components.WrapVendor(vendorName, pathChat,
			fmt.Errorf("response contains no choices"))
	}

	msg := schema.NewAIMessage(resp.Choices[0].Message.Content).
		WithProperty("model", resp.Model).
		WithProperty("finish_reason", resp.Choices[0].FinishReason).
		WithProperty("total_tokens", resp.Usage.TotalTokens)

	return msg, nil
}

// roleOf 把消息发送方映射为 Chat Completions 的角色。
func roleOf(m *schema.Message) string {
	switch m.Sender {
	case schema.SenderAI:
		return "assistant"
	case schema.SenderSystem:
		return "system"
	default:
		return "user"
	}
}
