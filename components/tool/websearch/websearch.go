// Package websearch 实现基于 Google Custom Search 的网页搜索工具。
// 结果以表格形式返回，每行包含标题、链接与摘要。
package websearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/tool"
	"github.com/favbox/lfx/schema"
)

const (
	// ToolName 注册用的工具名。
	ToolName = "google_search"

	// DefaultNumResults 默认返回的结果条数。
	DefaultNumResults = 4
)

// NumResultsRange Custom Search 单次请求允许的条数区间。
var NumResultsRange = components.RangeSpec{Min: 1, Max: 10}

// Config 网页搜索工具的配置。
type Config struct {
	// APIKey Google API 密钥。必填。
	APIKey string

	// CSEID 自定义搜索引擎标识。必填。
	CSEID string

	// NumResults 默认返回的结果条数，取值收敛到 NumResultsRange。
	NumResults int

	// Options 传给底层服务的额外选项，测试时用来注入端点与客户端。
	Options []option.ClientOption
}

// Search 基于 Google Custom Search 的搜索工具。
type Search struct {
	config  Config
	service *customsearch.Service
}

// NewSearch 创建网页搜索工具。
func NewSearch(ctx context.Context, conf *Config) (*Search, error) {
	if conf == nil {
		return nil, components.NewConfigError("", "config is nil")
	}
	if strings.TrimSpace(conf.APIKey) == "" {
		return nil, components.ErrRequiredField("api_key")
	}
	if strings.TrimSpace(conf.CSEID) == "" {
		return nil, components.ErrRequiredField("cse_id")
	}
	if conf.NumResults <= 0 {
		conf.NumResults = DefaultNumResults
	}
	conf.NumResults = int(NumResultsRange.Clamp(float64(conf.NumResults)))

	opts := append([]option.ClientOption{option.WithAPIKey(conf.APIKey)}, conf.Options...)
	service, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, components.WrapVendor("google", "new service", err)
	}

	return &Search{config: *conf, service: service}, nil
}

// Info 实现 tool.BaseTool 接口。
func (s *Search) Info(_ context.Context) (*tool.Info, error) {
	return &tool.Info{
		Name: ToolName,
		Desc: "Search the web with Google and return titles, links and snippets.",
		Params: map[string]*tool.ParameterInfo{
			"query": {
				Type:     "string",
				Desc:     "The search query.",
				Required: true,
			},
			"num_results": {
				Type: "integer",
				Desc: "Number of results to return, between 1 and 10.",
			},
		},
	}, nil
}

type searchArgs struct {
	Query      string `json:"query"`
	NumResults int    `json:"num_results"`
}

// InvokableRun 实现 tool.InvokableTool 接口。
// 成功时返回的记录中 "results" 为搜索结果表格。
func (s *Search) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (*schema.Data, error) {
	var args searchArgs
	if err := sonic.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
		return schema.ErrorData(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if strings.TrimSpace(args.Query) == "" {
		return schema.ErrorData("empty query"), nil
	}

	frame, err := s.SearchFrame(ctx, args.Query, args.NumResults)
	if err != nil {
		return schema.ErrorData(err.Error()), nil
	}

	return schema.NewData(map[string]any{
		"query":   args.Query,
		"results": frame,
	}), nil
}

// SearchFrame 执行搜索并把结果转为表格。
// num 超出允许区间时收敛到边界，取零值时使用配置默认。
func (s *Search) SearchFrame(ctx context.Context, query string, num int) (*schema.DataFrame, error) {
	if num <= 0 {
		num = s.config.NumResults
	}
	num = int(NumResultsRange.Clamp(float64(num)))

	resp, err := s.service.Cse.List().
		Q(query).
		Cx(s.config.CSEID).
		Num(int64(num)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, components.WrapVendor("google", "cse list", err)
	}

	rows := make([]map[string]any, 0, len(resp.Items))
	for _, item := range resp.Items {
		rows = append(rows, map[string]any{
			"title":   item.Title,
			"link":    item.Link,
			"snippet": item.Snippet,
		})
	}

	return schema.DataFrameFromMaps(rows), nil
}
