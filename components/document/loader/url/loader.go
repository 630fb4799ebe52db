// Package url 实现抓取 URL 原始内容的加载组件。
package url

import (
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/schema"
)

// DefaultTimeout 默认的单次请求超时。
const DefaultTimeout = 30 * time.Second

// maxBodyLen 抓取内容的体积上限。
const maxBodyLen = 10 << 20

// Config URL 加载器的配置。
type Config struct {
	// URLs 抓取的地址列表，缺少协议前缀时补全 https。必填。
	URLs []string

	// Timeout 单次请求超时，默认 DefaultTimeout。
	Timeout time.Duration

	// Client 自定义 HTTP 客户端，测试时注入。
	Client *http.Client
}

// Loader URL 加载器。
type Loader struct {
	config Config
	client *http.Client
}

// NewLoader 创建 URL 加载器。
func NewLoader(conf *Config) (*Loader, error) {
	if conf == nil {
		return nil, components.NewConfigError("", "config is nil")
	}
	if len(conf.URLs) == 0 {
		return nil, components.ErrRequiredField("urls")
	}

	normalized := make([]string, len(conf.URLs))
	for i, raw := range conf.URLs {
		u := strings.TrimSpace(raw)
		if u == "" {
			return nil, components.NewConfigError("urls", "must not contain blank entries")
		}
		if !strings.Contains(u, "://") {
			u = "https://" + u
		}
		if _, err := neturl.ParseRequestURI(u); err != nil {
			return nil, components.NewConfigError("urls", fmt.Sprintf("invalid url %q", raw))
		}
		normalized[i] = u
	}
	conf.URLs = normalized

	client := conf.Client
	if client == nil {
		timeout := conf.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Loader{config: *conf, client: client}, nil
}

// Load 实现 loader.Loader 接口。
// 每个地址一条记录，包含正文、来源地址与状态码。
func (l *Loader) Load(ctx context.Context) ([]*schema.Data, error) {
	records := make([]*schema.Data, 0, len(l.config.URLs))
	for _, u := range l.config.URLs {
		record, err := l.fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (l *Loader) fetch(ctx context.Context, u string) (*schema.Data, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, components.WrapVendor("url", "build request", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, components.WrapVendor("url", "fetch", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyLen))
	if err != nil {
		return nil, components.WrapVendor("url", "read body", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, components.WrapVendor("url", "fetch",
			fmt.Errorf("unexpected status %d for %s", resp.StatusCode, u))
	}

	return schema.NewData(map[string]any{
		schema.DefaultTextKey: string(body),
		"source":              u,
		"status_code":         resp.StatusCode,
		"content_type":        resp.Header.Get("Content-Type"),
	}), nil
}
