package indexer

import "github.com/favbox/lfx/components/embedding"

// Options 定义了索引器的通用配置选项。
type Options struct {
	// Embedding 用于把文档内容向量化的嵌入器。
	// 覆盖索引器构建时配置的默认嵌入器。
	Embedding embedding.Embedder
}

// Option 定义了用于 Indexer 组件的函数选项类型。
type Option struct {
	apply func(opts *Options)

	implSpecificOptFn any
}

// WithEmbedding 设置本次写入使用的嵌入器。
func WithEmbedding(emb embedding.Embedder) Option {
	return Option{
		apply: func(opts *Options) {
			opts.Embedding = emb
		},
	}
}

// GetCommonOptions 从选项列表中提取索引器的通用选项。
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
