// Package notion 实现基于 Notion REST API 的工作区搜索工具。
package notion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/tool"
	"github.com/favbox/lfx/internal/httpx"
	"github.com/favbox/lfx/schema"
)

const (
	// ToolName 注册用的工具名。
	ToolName = "notion_search"

	vendorName     = "notion"
	defaultBaseURL = "https://api.notion.com"
	pathSearch     = "/v1/search"

	// notionVersion Notion API 的版本头，随官方版本演进更新。
	notionVersion = "2022-06-28"
)

// Config Notion 搜索工具的配置。
type Config struct {
	// Token Notion 集成令牌。必填。
	Token string

	// BaseURL 服务地址，默认官方端点。
	BaseURL string

	// Timeout 单次请求超时，默认 httpx.DefaultTimeout。
	Timeout time.Duration

	// FilterType 限定结果对象类型（page 或 database），为空不过滤。
	FilterType string
}

// Search 基于 Notion 的工作区搜索工具。
type Search struct {
	config Config
	client *httpx.Client
}

// NewSearch 创建 Notion 搜索工具。
func NewSearch(_ context.Context, conf *Config) (*Search, error) {
	if conf == nil {
		return nil, components.NewConfigError("", "config is nil")
	}
	if strings.TrimSpace(conf.Token) == "" {
		return nil, components.ErrRequiredField("token")
	}

	baseURL := conf.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Search{
		config: *conf,
		client: httpx.New(vendorName, baseURL, conf.Timeout, map[string]string{
			"Authorization":  "Bearer " + conf.Token,
			"Notion-Version": notionVersion,
		}),
	}, nil
}

// Info 实现 tool.BaseTool 接口。
func (s *Search) Info(_ context.Context) (*tool.Info, error) {
	return &tool.Info{
		Name: ToolName,
		Desc: "Search pages and databases in a Notion workspace.",
		Params: map[string]*tool.ParameterInfo{
			"query": {
				Type:     "string",
				Desc:     "Text to match against page and database titles.",
				Required: true,
			},
		},
	}, nil
}

type searchRequest struct {
	Query  string `json:"query"`
	Filter *struct {
		Value    string `json:"value"`
		Property string `json:"property"`
	} `json:"filter,omitempty"`
}

type searchResponse struct {
	Results []struct {
		ID             string         `json:"id"`
		Object         string         `json:"object"`
		URL            string         `json:"url"`
		CreatedTime    string         `json:"created_time"`
		LastEditedTime string         `json:"last_edited_time"`
		Properties     map[string]any `json:"properties"`
	} `json:"results"`
	HasMore bool `json:"has_more"`
}

type searchArgs struct {
	Query string `json:"query"`
}

// InvokableRun 实现 tool.InvokableTool 接口。
// 成功时返回的记录中 "results" 为命中对象列表。
func (s *Search) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (*schema.Data, error) {
	var args searchArgs
	if err := sonic.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
		return schema.ErrorData(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if strings.TrimSpace(args.Query) == "" {
		return schema.ErrorData("empty query"), nil
	}

	results, err := s.SearchPages(ctx, args.Query)
	if err != nil {
		return schema.ErrorData(err.Error()), nil
	}

	return schema.NewData(map[string]any{
		"query":   args.Query,
		"results": results,
	}), nil
}

// SearchPages 搜索工作区并把每个命中对象转为一条记录。
func (s *Search) SearchPages(ctx context.Context, query string) ([]*schema.Data, error) {
	req := searchRequest{Query: query}
	if s.config.FilterType != "" {
		req.Filter = &struct {
			Value    string `json:"value"`
			Property string `json:"property"`
		}{Value: s.config.FilterType, Property: "object"}
	}

	var resp searchResponse
	if err := s.client.PostJSON(ctx, pathSearch, req, &resp); err != nil {
		return nil, err
	}

	results := make([]*schema.Data, 0, len(resp.Results))
	for _, item := range resp.Results {
		results = append(results, schema.NewData(map[string]any{
			"id":               item.ID,
			"object":           item.Object,
			"url":              item.URL,
			"title":            titleOf(item.Properties),
			"created_time":     item.CreatedTime,
			"last_edited_time": item.LastEditedTime,
		}))
	}

	return results, nil
}

// titleOf 从属性表里找标题属性并拼接其纯文本。
func titleOf(props map[string]any) string {
	for _, raw := range props {
		prop, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		title, ok := prop["title"].([]any)
		if !ok {
			continue
		}
		var sb strings.Builder
		for _, part := range title {
			if p, ok := part.(map[string]any); ok {
				if text, ok := p["plain_text"].(string); ok {
					sb.WriteString(text)
				}
			}
		}
		return sb.String()
	}
	return ""
}
