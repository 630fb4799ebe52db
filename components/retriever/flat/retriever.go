// Package flat 实现本地向量索引的检索器，与同名索引器共享落盘格式。
package flat

import (
	"context"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/embedding"
	"github.com/favbox/lfx/components/retriever"
	"github.com/favbox/lfx/internal/flatstore"
	"github.com/favbox/lfx/internal/generic"
	"github.com/favbox/lfx/schema"
)

const (
	// DefaultIndexName 默认索引名，与索引器一致。
	DefaultIndexName = "lfx_index"
	// DefaultTopK 默认返回的文档数量。
	DefaultTopK = 4
)

// RetrieverConfig 本地检索器的配置。
type RetrieverConfig struct {
	// Directory 索引文件所在目录。必填。
	Directory string

	// IndexName 索引名，默认 DefaultIndexName。
	IndexName string

	// Embedding 把查询向量化的嵌入器。必填。
	Embedding embedding.Embedder

	// TopK 返回的文档数量上限，默认 DefaultTopK。
	TopK int

	// ScoreThreshold 相似度阈值，大于零时过滤低分文档。
	ScoreThreshold float64
}

// Retriever 本地向量索引检索器。
type Retriever struct {
	config RetrieverConfig
	store  *flatstore.Store
}

// NewRetriever 创建本地向量检索器。
func NewRetriever(_ context.Context, conf *RetrieverConfig) (*Retriever, error) {
	if conf == nil {
		return nil, components.NewConfigError("", "config is nil")
	}
	if conf.Directory == "" {
		return nil, components.ErrRequiredField("directory")
	}
	if conf.Embedding == nil {
		return nil, components.ErrRequiredField("embedding")
	}
	if conf.IndexName == "" {
		conf.IndexName = DefaultIndexName
	}
	if conf.TopK <= 0 {
		conf.TopK = DefaultTopK
	}

	store, err := flatstore.Open(conf.Directory, conf.IndexName)
	if err != nil {
		return nil, components.WrapVendor("flat", "open index", err)
	}

	return &Retriever{config: *conf, store: store}, nil
}

// Retrieve 实现 retriever.Retriever 接口。
// 查询向量化后做全量余弦检索，评分写入文档元数据。
func (r *Retriever) Retrieve(ctx context.Context, query string, opts ...retriever.Option) ([]*schema.Document, error) {
	if query == "" {
		return nil, components.ErrRequiredField("query")
	}

	options := retriever.GetCommonOptions(&retriever.Options{
		TopK:           generic.PtrOf(r.config.TopK),
		ScoreThreshold: generic.PtrOf(r.config.ScoreThreshold),
		Embedding:      r.config.Embedding,
	}, opts...)
	emb := options.Embedding
	if emb == nil {
		return nil, components.ErrRequiredField("embedding")
	}

	vectors, err := emb.EmbedStrings(ctx, []string{query})
	if err != nil {
		return nil, err
	}

	hits := r.store.Search(vectors[0],
		generic.ValueOf(options.TopK, DefaultTopK),
		generic.ValueOf(options.ScoreThreshold, 0),
	)

	docs := make([]*schema.Document, 0, len(hits))
	for _, hit := range hits {
		doc := &schema.Document{
			ID:       hit.Entry.ID,
			Content:  hit.Entry.Content,
			MetaData: generic.CopyMap(hit.Entry.MetaData),
		}
		docs = append(docs, doc.WithScore(hit.Score))
	}

	return docs, nil
}
