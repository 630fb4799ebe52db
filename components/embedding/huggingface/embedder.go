// Package huggingface 实现基于 HuggingFace 推理 API 的嵌入组件。
//
// 推理 API 的模型冷启动时会返回暂时性失败，因此本组件是仓库中少数
// 对单次幂等网络调用做有限次固定间隔重试的例外，不代表系统性策略。
package huggingface

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/embedding"
	"github.com/favbox/lfx/internal/httpx"
	"github.com/favbox/lfx/internal/retry"
)

const (
	vendorName     = "huggingface"
	defaultBaseURL = "https://api-inference.huggingface.co"
	defaultModel   = "sentence-transformers/all-MiniLM-L6-v2"

	defaultMaxRetries    = 3
	defaultRetryInterval = 2 * time.Second
)

// EmbedderConfig 嵌入组件的配置。
type EmbedderConfig struct {
	// APIKey HuggingFace API 令牌。必填。
	APIKey string

	// Model 模型仓库名，默认 sentence-transformers/all-MiniLM-L6-v2。
	Model string

	// BaseURL 推理服务地址，默认官方端点。
	BaseURL string

	// Timeout 单次请求超时，默认 httpx.DefaultTimeout。
	Timeout time.Duration

	// MaxRetries 最大尝试次数，默认 3。
	MaxRetries int

	// RetryInterval 两次尝试之间的固定间隔，默认 2 秒。
	RetryInterval time.Duration
}

// Embedder 基于 HuggingFace 推理 API 的嵌入实现。
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
	if conf.MaxRetries <= 0 {
		conf.MaxRetries = defaultMaxRetries
	}
	if conf.RetryInterval <= 0 {
		conf.RetryInterval = defaultRetryInterval
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

type featureRequest struct {
	Inputs []string `json:"inputs"`
	// 冷启动时等待模型加载而不是立即报错。
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

// EmbedStrings 实现 embedding.Embedder 接口。
func (e *Embedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, components.NewConfigError("texts", "must not be empty")
	}

	options := embedding.GetCommonOptions(&embedding.Options{}, opts...)
	modelName := e.config.Model
	if options.Model != nil {
		modelName = *options.Model
	}
	path := "/pipeline/feature-extraction/" + modelName

	req := featureRequest{Inputs: texts}
	req.Options.WaitForModel = true

	var vectors [][]float64
	err := retry.Do(ctx, func() error {
		vectors = nil
		return e.client.PostJSON(ctx, path, req, &vectors)
	},
		retry.WithTimes(e.config.MaxRetries),
		retry.WithInterval(e.config.RetryInterval),
		retry.WithLabel("huggingface embeddings"),
	)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, components.WrapVendor(vendorName, path,
			fmt.Errorf("expected %d embeddings, got %d", len(texts), len(vectors)))
	}

	return vectors, nil
}
