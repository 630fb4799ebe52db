package retriever

import "github.com/favbox/lfx/components/embedding"

// Options 定义了检索器的通用配置选项。
type Options struct {
	// Index 指定检索器使用的索引名称。
	// 不同的检索器实现含义不同：本地索引文件名、Milvus 集合名等。
	Index *string

	// TopK 指定要检索的文档数量上限。
	TopK *int

	// ScoreThreshold 相似度分数阈值，低于阈值的文档不返回。
	ScoreThreshold *float64

	// Embedding 用于把查询转换为向量的嵌入器。
	// 覆盖检索器构建时配置的默认嵌入器。
	Embedding embedding.Embedder
}

// Option 定义了用于 Retriever 组件的函数选项类型。
type Option struct {
	apply func(opts *Options)

	implSpecificOptFn any
}

// WithIndex 设置检索器的索引名称。
func WithIndex(index string) Option {
	return Option{
		apply: func(opts *Options) {
			opts.Index = &index
		},
	}
}

// WithTopK 设置检索返回的文档数量上限。
func WithTopK(topK int) Option {
	return Option{
		apply: func(opts *Options) {
			opts.TopK = &topK
		},
	}
}

// WithScoreThreshold 设置相似度分数阈值。
func WithScoreThreshold(threshold float64) Option {
	return Option{
		apply: func(opts *Options) {
			opts.ScoreThreshold = &threshold
		},
	}
}

// WithEmbedding 设置检索器使用的嵌入器。
func WithEmbedding(emb embedding.Embedder) Option {
	return Option{
		apply: func(opts *Options) {
			opts.Embedding = emb
		},
	}
}

// GetCommonOptions 从选项列表中提取检索器的通用选项。
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
