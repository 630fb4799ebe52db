package model

// Options 定义了聊天模型的通用配置选项。
type Options struct {
	// Model 指定本次调用使用的模型名称。
	Model *string

	// Temperature 采样温度，取值越大输出越发散。
	Temperature *float64

	// MaxTokens 生成内容的最大 token 数。
	MaxTokens *int

	// TopP 核采样阈值。
	TopP *float64

	// Stop 停止词列表，生成遇到任一停止词即截断。
	Stop []string
}

// Option 定义了用于 ChatModel 组件的函数选项类型。
type Option struct {
	apply func(opts *Options)

	implSpecificOptFn any
}

// WithModel 设置本次调用使用的模型名称。
func WithModel(model string) Option {
	return Option{
		apply: func(opts *Options) {
			opts.Model = &model
		},
	}
}

// WithTemperature 设置采样温度。
func WithTemperature(temperature float64) Option {
	return Option{
		apply: func(opts *Options) {
			opts.Temperature = &temperature
		},
	}
}

// WithMaxTokens 设置生成内容的最大 token 数。
func WithMaxTokens(maxTokens int) Option {
	return Option{
		apply: func(opts *Options) {
			opts.MaxTokens = &maxTokens
		},
	}
}

// WithTopP 设置核采样阈值。
func WithTopP(topP float64) Option {
	return Option{
		apply: func(opts *Options) {
			opts.TopP = &topP
		},
	}
}

// WithStop 设置停止词列表。
func WithStop(stop []string) Option {
	return Option{
		apply: func(opts *Options) {
			opts.Stop = stop
		},
	}
}

// GetCommonOptions 从选项列表中提取聊天模型的通用选项。
// 可以选择性地提供一个基础 Options 作为默认值。
func GetCommonOptions(base *Options, opts ...Option) *Options {
	if base == nil {
		base = &Options{}
	}

	for i := range opts {
		if opts[i].apply != nil {
			opts[i].apply(base)
		}
	}

	return base
}

// WrapImplSpecificOptFn 包装实现特定的选项函数。
// 用于支持特定模型提供商的扩展配置选项。
func WrapImplSpecificOptFn[T any](optFn func(*T)) Option {
	return Option{
		implSpecificOptFn: optFn,
	}
}

// GetImplSpecificOptions 从选项列表中提取实现特定的选项。
// 可以选择性地提供一个基础选项作为默认值。
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
