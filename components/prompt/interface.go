package prompt

import (
	"context"

	"github.com/favbox/lfx/schema"
)

// Template 接口定义了提示词模板组件的核心能力。
type Template interface {
	// Format 用变量渲染模板，产出一条消息。
	//
	// 参数：
	//   - ctx: 上下文信息，用于取消、超时和传递请求相关数据
	//   - variables: 模板变量映射
	//   - opts: 可选的配置参数
	//
	// 返回：
	//   - *schema.Message: 渲染后的消息
	//   - error: 渲染过程中的错误（如果有）
	Format(ctx context.Context, variables map[string]any, opts ...Option) (*schema.Message, error)
}

// Option 定义了用于提示词模板组件的函数选项类型。
type Option struct {
	implSpecificOptFn any
}

// WrapImplSpecificOptFn 包装实现特定的选项函数。
func WrapImplSpecificOptFn[T any](optFn func(*T)) Option {
	return Option{
		implSpecificOptFn: optFn,
	}
}

// GetImplSpecificOptions 从选项列表中提取实现特定的选项。
func GetImplSpecificOptions[T any](base *T, opts ...Option) *T {
	if base == nil {
		base = new(T)
	}

	for i := range opts {
		opt := opts[i]
		if opt.implSpecificOptFn != nil {
			optFn, ok := opt.implSpecificOptFn.(func(*T))
			if ok {
				optFn(base)
			}
		}
	}

	return base
}
