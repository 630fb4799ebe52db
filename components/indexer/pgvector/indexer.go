// Package pgvector 实现基于 PostgreSQL + pgvector 扩展的索引组件。
// 表不存在时自动创建，主键为文档 ID。
package pgvector

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	pgv "github.com/pgvector/pgvector-go"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/embedding"
	"github.com/favbox/lfx/components/indexer"
	"github.com/favbox/lfx/schema"
)

const (
	vendorName = "pgvector"

	// DefaultTable 默认表名。
	DefaultTable = "lfx_documents"
	// DefaultDim 默认向量维度，与 text-embedding-3-small 对齐。
	DefaultDim = 1536
)

// IndexerConfig pgvector 索引器的配置。
type IndexerConfig struct {
	// Pool 已连接的 PostgreSQL 连接池。必填。
	Pool *pgxpool.Pool

	// Table 表名，默认 DefaultTable。
	Table string

	// Dim 向量维度，默认 DefaultDim。须与嵌入器输出一致。
	Dim int

	// Embedding 把文档内容向量化的嵌入器。必填。
	Embedding embedding.Embedder
}

// Indexer 基于 pgvector 的索引实现。
type Indexer struct {
	config IndexerConfig
}

// NewIndexer 创建 pgvector 索引器。
// 自动启用 vector 扩展并建表。
func NewIndexer(ctx context.Context, conf *IndexerConfig) (*Indexer, error) {
	if conf == nil {
		return nil, components.NewConfigError("", "config is nil")
	}
	if conf.Pool == nil {
		return nil, components.ErrRequiredField("pool")
	}
	if conf.Embedding == nil {
		return nil, components.ErrRequiredField("embedding")
	}
	if conf.Table == "" {
		conf.Table = DefaultTable
	}
	if conf.Dim <= 0 {
		conf.Dim = DefaultDim
	}

	if _, err := conf.Pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return nil, components.WrapVendor(vendorName, "create extension", err)
	}
	ddl := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			metadata JSONB,
			embedding vector(%d)
		)`, conf.Table, conf.Dim)
	if _, err := conf.Pool.Exec(ctx, ddl); err != nil {
		return nil, components.WrapVendor(vendorName, "create table", err)
	}

	return &Indexer{config: *conf}, nil
}

// Store 实现 indexer.Indexer 接口。
// 同一 ID 重复写入时覆盖旧内容。
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
	if len(vectors) != len(docs) {
		return nil, components.WrapVendor(vendorName, "embed",
			fmt.Errorf("expected %d embeddings, got %d", len(docs), len(vectors)))
	}

	insert := fmt.Sprintf(
		`INSERT INTO %s (id, content, metadata, embedding) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			metadata = EXCLUDED.metadata,
			embedding = EXCLUDED.embedding`, i.config.Table)

	ids := make([]string, len(docs))
	for idx, doc := range docs {
		id := doc.ID
		if id == "" {
			id = uuid.NewString()
		}
		ids[idx] = id

		metadata, mErr := sonic.Marshal(doc.MetaData)
		if mErr != nil {
			return nil, components.WrapVendor(vendorName, "marshal metadata", mErr)
		}

		if _, err = i.config.Pool.Exec(ctx, insert,
			id, doc.Content, metadata, pgv.NewVector(toFloat32(vectors[idx])),
		); err != nil {
			return nil, components.WrapVendor(vendorName, "insert row", err)
		}
	}

	return ids, nil
}

func toFloat32(vec []float64) []float32 {
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(v)
	}
	return out
}
