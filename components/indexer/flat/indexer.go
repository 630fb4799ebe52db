// Package flat 实现落盘的本地向量索引器：无外部服务依赖，
// 全量余弦检索，适合小规模语料与离线试验。
package flat

import (
	"context"

	"github.com/google/uuid"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/embedding"
	"github.com/favbox/lfx/components/indexer"
	"github.com/favbox/lfx/internal/flatstore"
	"github.com/favbox/lfx/schema"
)

// DefaultIndexName 默认索引名。
const DefaultIndexName = "lfx_index"

// IndexerConfig 本地索引器的配置。
type IndexerConfig struct {
	// Directory 索引文件所在目录。必填。
	Directory string

	// IndexName 索引名，决定落盘文件名，默认 DefaultIndexName。
	IndexName string

	// Embedding 把文档内容向量化的嵌入器。必填。
	Embedding embedding.Embedder
}

// Indexer 本地向量索引器。
type Indexer struct {
	config IndexerConfig
	store  *flatstore.Store
}

// NewIndexer 创建本地向量索引器。
// 目录不存在时自动创建；已有索引文件会被加载并在其上追加。
func NewIndexer(_ context.Context, conf *IndexerConfig) (*Indexer, error) {
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

	store, err := flatstore.Open(conf.Directory, conf.IndexName)
	if err != nil {
		return nil, components.WrapVendor("flat", "open index", err)
	}

	return &Indexer{config: *conf, store: store}, nil
}

// Store 实现 indexer.Indexer 接口。
// 文档内容批量向量化后连同元数据一起落盘；ID 为空的文档分配新标识。
func (i *Indexer) Store(ctx context.Context, docs []*schema.Document, opts ...indexer.Option) ([]string, error) {
	if len(docs) == 0 {
		return nil, components.NewConfigError("docs", "must not be empty")
	}

	options := indexer.GetCommonOptions(&indexer.Options{
		Embedding: i.config.Embedding,
	}, opts...)
	emb := options.Embedding
	if emb == nil {
		return nil, components.ErrRequiredField("embedding")
	}

	texts := make([]string, len(docs))
	for idx, doc := range docs {
		texts[idx] = doc.Content
	}

	vectors, err := emb.EmbedStrings(ctx, texts)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(docs))
	entries := make([]flatstore.Entry, len(docs))
	for idx, doc := range docs {
		id := doc.ID
		if id == "" {
			id = uuid.NewString()
		}
		ids[idx] = id
		entries[idx] = flatstore.Entry{
			ID:       id,
			Content:  doc.Content,
			Vector:   vectors[idx],
			MetaData: doc.MetaData,
		}
	}

	if err = i.store.Add(entries); err != nil {
		return nil, components.WrapVendor("flat", "persist index", err)
	}

	return ids, nil
}
