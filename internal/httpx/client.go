// Package httpx 是 HTTP 型供应商适配器共用的轻量 JSON 客户端。
//
// 统一处理超时传递、鉴权头、sonic 编解码与非 2xx 响应到
// VendorError 的包装，适配器只关心各自的请求/响应结构体。
package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/favbox/lfx/components"
)

// DefaultTimeout 供应商调用的默认超时。
const DefaultTimeout = 30 * time.Second

// 错误响应体在错误信息中保留的最大字节数。
const maxErrBodyLen = 512

// Client HTTP 型供应商的 JSON 客户端。
type Client struct {
	vendor  string
	baseURL string
	headers map[string]string
	hc      *http.Client
}

// New 创建供应商客户端。
// timeout 为零时使用 DefaultTimeout；headers 附加到每个请求上。
func New(vendor, baseURL string, timeout time.Duration, headers map[string]string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		vendor:  vendor,
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: headers,
		hc:      &http.Client{Timeout: timeout},
	}
}

// PostJSON 发送 JSON 请求体并把响应解码到 out。
// out 为 nil 时丢弃响应体。
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	raw, err := sonic.Marshal(body)
	if err != nil {
		return components.WrapVendor(c.vendor, path, fmt.Errorf("encode request: %w", err))
	}

	return c.do(ctx, http.MethodPost, path, bytes.NewReader(raw), out)
}

// GetJSON 发送 GET 请求并把响应解码到 out。
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}

	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return components.WrapVendor(c.vendor, path, err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return components.WrapVendor(c.vendor, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return components.WrapVendor(c.vendor, path, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := string(raw)
		if len(detail) > maxErrBodyLen {
			detail = detail[:maxErrBodyLen]
		}
		return components.WrapVendor(c.vendor, path,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail))
	}

	if out == nil {
		return nil
	}
	if err = sonic.Unmarshal(raw, out); err != nil {
		return components.WrapVendor(c.vendor, path, fmt.Errorf("decode response: %w", err))
	}

	return nil
}
