// Package firecrawl 实现基于 Firecrawl 抓取 API 的加载组件。
// 单页抓取走 v1 scrape 接口，返回 Markdown 正文与页面元数据。
package firecrawl

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
	vendorName     = "firecrawl"
	defaultBaseURL = "https://api.firecrawl.dev"
	pathScrape     = "/v1/scrape"
)

// Config Firecrawl 加载器的配置。
type Config struct {
	// APIKey Firecrawl API 密钥。必填。
	APIKey string

	// URL 抓取的页面地址。必填。
	URL string

	// Formats 返回的内容格式，默认 ["markdown"]。
	Formats []string

	// OnlyMainContent 只保留正文，剔除导航与页脚。
	OnlyMainContent bool

	// BaseURL 服务地址，默认官方端点。
	BaseURL string

	// Timeout 单次请求超时，默认 httpx.DefaultTimeout。
	Timeout time.Duration
}

// Loader Firecrawl 加载器。
type Loader struct {
	config Config
	client *httpx.Client
}

// NewLoader 创建 Firecrawl 加载器。
func NewLoader(conf *Config) (*Loader, error) {
	if conf == nil {
		return nil, components.NewConfigError("", "config is nil")
	}
	if strings.TrimSpace(conf.APIKey) == "" {
		return nil, components.ErrRequiredField("api_key")
	}
	if strings.TrimSpace(conf.URL) == "" {
		return nil, components.ErrRequiredField("url")
	}
	if len(conf.Formats) == 0 {
		conf.Formats = []string{"markdown"}
	}

	baseURL := conf.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Loader{
		config: *conf,
		client: httpx.New(vendorName, baseURL, conf.Timeout, map[string]string{
			"Authorization": "Bearer " + conf.APIKey,
		}),
	}, nil
}

type scrapeRequest struct {
	URL             string   `json:"url"`
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent"`
}

type scrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string         `json:"markdown"`
		HTML     string         `json:"html"`
		Metadata map[string]any `json:"metadata"`
	} `json:"data"`
	Error string `json:"error"`
}

// Load 实现 loader.Loader 接口。
// 单页抓取固定返回一条记录。
func (l *Loader) Load(ctx context.Context) ([]*schema.Data, error) {
	req := scrapeRequest{
		URL:             l.config.URL,
		Formats:         l.config.Formats,
		OnlyMainContent: l.config.OnlyMainContent,
	}

	var resp scrapeResponse
	if err := l.client.PostJSON(ctx, pathScrape, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "scrape failed"
		}
		return nil, components.WrapVendor(vendorName, "scrape", errors.New(msg))
	}

	text := resp.Data.Markdown
	if text == "" {
		text = resp.Data.HTML
	}

	payload := map[string]any{
		schema.DefaultTextKey: text,
		"source":              l.config.URL,
	}
	for k, v := range resp.Data.Metadata {
		if _, exists := payload[k]; !exists {
			payload[k] = v
		}
	}

	return []*schema.Data{schema.NewData(payload)}, nil
}
