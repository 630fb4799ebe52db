// Package openai 实现基于 OpenAI Embeddings API 的嵌入组件。
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/embedding"
	"github.com/favbox/lfx/internal/generic"
	"github.com/favbox/lfx/internal/httpx"
)

const (
	vendorName     = "openai"
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "text-embedding-3-small"
	pathEmbeddings = "/embeddings"
)

// EmbedderConfig 嵌入组件的配置。
type EmbedderConfig struct {
	// APIKey OpenAI API 密钥。必填。
	APIKey string

	// Model 嵌入模型名称，默认 text-embedding-3-small。
	Model string

	// BaseURL 服务地址，默认官方端点。
	BaseURL string

	// Timeout 单次请求超时，默认 httpx.DefaultTimeout。
	Timeout time.Duration

	// Dimensions 输出向量维度，仅 v3 系列模型支持。
	Dimensions *int
}

// Embedder 基于 OpenAI 的嵌入实现。
type Embedder struct {
	config EmbedderConfig
	client *httpx.Client
}

// NewEmbedder 创建嵌入组件。
func NewEmbedder(_ context.Context, conf *EmbedderConfig) (*Embedder, error) {
	if conf == nil {
		return nil, components.NewConfigError("", "config is nil")
	}
	if strings.TrimSpace(conf.APIKey) == "" {
		return nil, components.ErrRequiredField("api_key")
	}
	if conf.Model == "" {
		conf.Model = defaultModel
	}

	baseURL := conf.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Embedder{
		config: *conf,
		client: httpx.New(vendorName, baseURL, conf.Timeout, map[string]string{
			"Authorization": "Bearer " + conf.APIKey,
		}),
	}, nil
}

type embeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions *int     `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Model string `json:"model"`
}

// EmbedStrings 实现 embedding.Embedder 接口。
// 所有文本在一次调用中批量提交。
func (e *Embedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, components.NewConfigError("texts", "must not be empty")
	}

	options := embedding.GetCommonOptions(&embedding.Options{
		Model: generic.PtrOf(e.config.Model),
	}, opts...)

	req := embeddingRequest{
		Model:      generic.ValueOf(options.Model, e.config.Model),
		Input:      texts,
		Dimensions: e.config.Dimensions,
	}

	var resp embeddingResponse
	if err := e.client.PostJSON(ctx, pathEmbeddings, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, components.WrapVendor(vendorName, pathEmbeddings,
			fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data)))
	}

	vectors := make([][]float64, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, components.WrapVendor(vendorName, pathEmbeddings,
				fmt.Errorf("embedding index %d out of range", item.Index))
		}
		vectors[item.Index] = item.Embedding
	}

	return vectors, nil
}
