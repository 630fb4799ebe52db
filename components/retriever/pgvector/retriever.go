// Package pgvector 实现基于 PostgreSQL + pgvector 扩展的检索组件。
package pgvector

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5/pgxpool"
	pgv "github.com/pgvector/pgvector-go"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/embedding"
	"github.com/favbox/lfx/components/retriever"
	"github.com/favbox/lfx/internal/generic"
	"github.com/favbox/lfx/schema"
)

const (
	vendorName = "pgvector"

	// DefaultTable 默认表名，与索引器一致。
	DefaultTable = "lfx_documents"
	// DefaultTopK 默认返回的文档数量。
	DefaultTopK = 4
)

// RetrieverConfig pgvector 检索器的配置。
type RetrieverConfig struct {
	// Pool 已连接的 PostgreSQL 连接池。必填。
	Pool *pgxpool.Pool

	// Table 表名，默认 DefaultTable。表必须已由索引器创建。
	Table string

	// Embedding 把查询向量化的嵌入器。必填。
	Embedding embedding.Embedder

	// TopK 返回的文档数量上限，默认 DefaultTopK。
	TopK int

	// ScoreThreshold 相似度阈值，大于零时过滤低分文档。
	ScoreThreshold float64
}

// Retriever 基于 pgvector 的检索实现。
type Retriever struct {
	config RetrieverConfig
}

// NewRetriever 创建 pgvector 检索器。
func NewRetriever(_ context.Context, conf *RetrieverConfig) (*Retriever, error) {
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
	if conf.TopK <= 0 {
		conf.TopK = DefaultTopK
	}

	return &Retriever{config: *conf}, nil
}

// Retrieve 实现 retriever.Retriever 接口。
// 按余弦距离排序取最近邻，评分为 1 - 距离。
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

	sql := fmt.Sprintf(
		`SELECT id, content, metadata, 1 - (embedding <=> $1) AS score
		 FROM %s ORDER BY embedding <=> $1 LIMIT $2`, r.config.Table)

	rows, err := r.config.Pool.Query(ctx, sql,
		pgv.NewVector(toFloat32(vectors[0])),
		generic.ValueOf(options.TopK, DefaultTopK),
	)
	if err != nil {
		return nil, components.WrapVendor(vendorName, "query", err)
	}
	defer rows.Close()

	threshold := generic.ValueOf(options.ScoreThreshold, 0)
	var docs []*schema.Document
	for rows.Next() {
		var (
			id       string
			content  string
			metadata []byte
			score    float64
		)
		if err = rows.Scan(&id, &content, &metadata, &score); err != nil {
			return nil, components.WrapVendor(vendorName, "scan row", err)
		}
		if threshold > 0 && score < threshold {
			continue
		}

		var meta map[string]any
		if len(metadata) > 0 {
			_ = sonic.Unmarshal(metadata, &meta)
		}

		doc := &schema.Document{ID: id, Content: content, MetaData: meta}
		docs = append(docs, doc.WithScore(score))
	}
	if err = rows.Err(); err != nil {
		return nil, components.WrapVendor(vendorName, "iterate rows", err)
	}

	return docs, nil
}

func toFloat32(vec []float64) []float32 {
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(v)
	}
	return out
}
