package embedding

// Options 定义了嵌入模型的通用配置选项。
type Options struct {
	// Model 指定嵌入模型的名称。
	Model *string
}

// Option 定义了用于 Embedder 组件的函数选项类型。
type Option struct {
	apply func(opts *Options)

	implSpecificOptFn any
}

// WithModel 设置嵌入模型的名称。
func WithModel(model string) Option {
	return Option{
		apply: func(opts *Options) {
			opts.Model = &model
		},
	}
}

// GetCommonOptions 从选项列表中提取嵌入模型的通用选项。
// 可以选择性地提供一个基础 Options 作为默认值。
func GetCommonOptions(base *Options, opts ...Option) *Options {
	if base == nil {
		base = &Options{}
	}

	for i := range opts {
		opt := opts[i]
		if opt.apply != nil {
			opt.apply(base)
		}
	}

	return base
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
