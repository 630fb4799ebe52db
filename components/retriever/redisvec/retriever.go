// Package redisvec 实现基于 Redis Stack（RediSearch KNN）的检索组件。
package redisvec

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-redis/redis/v8"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/embedding"
	"github.com/favbox/lfx/components/indexer/redisvec"
	"github.com/favbox/lfx/components/retriever"
	"github.com/favbox/lfx/internal/generic"
	"github.com/favbox/lfx/schema"
)

const (
	vendorName = "redis"

	// DefaultIndexName 默认向量索引名，与索引器一致。
	DefaultIndexName = "lfx_index"
	// DefaultKeyPrefix 默认文档键前缀，与索引器一致。
	DefaultKeyPrefix = "lfx:doc:"
	// DefaultTopK 默认返回的文档数量。
	DefaultTopK = 4

	fieldContent  = "content"
	fieldVector   = "vector"
	fieldMetadata = "metadata"
	fieldScore    = "score"
)

// RetrieverConfig Redis 向量检索器的配置。
type RetrieverConfig struct {
	// Client 已连接的 Redis 客户端，须指向 Redis Stack 实例。必填。
	Client *redis.Client

	// IndexName 向量索引名，默认 DefaultIndexName。索引必须已存在。
	IndexName string

	// KeyPrefix 文档键前缀，默认 DefaultKeyPrefix。
	KeyPrefix string

	// Embedding 把查询向量化的嵌入器。必填。
	Embedding embedding.Embedder

	// TopK 返回的文档数量上限，默认 DefaultTopK。
	TopK int

	// ScoreThreshold 相似度阈值，大于零时过滤低分文档。
	ScoreThreshold float64
}

// Retriever 基于 Redis 的向量检索实现。
type Retriever struct {
	config RetrieverConfig
}

// NewRetriever 创建 Redis 向量检索器。
func NewRetriever(ctx context.Context, conf *RetrieverConfig) (*Retriever, error) {
	if conf == nil {
		return nil, components.NewConfigError("", "config is nil")
	}
	if conf.Client == nil {
		return nil, components.ErrRequiredField("client")
	}
	if conf.Embedding == nil {
		return nil, components.ErrRequiredField("embedding")
	}
	if conf.IndexName == "" {
		conf.IndexName = DefaultIndexName
	}
	if conf.KeyPrefix == "" {
		conf.KeyPrefix = DefaultKeyPrefix
	}
	if conf.TopK <= 0 {
		conf.TopK = DefaultTopK
	}

	if err := conf.Client.Do(ctx, "FT.INFO", conf.IndexName).Err(); err != nil {
		return nil, components.WrapVendor(vendorName, "ft.info", err)
	}

	return &Retriever{config: *conf}, nil
}

// Retrieve 实现 retriever.Retriever 接口。
// 通过 FT.SEARCH 的 KNN 查询返回最近邻，余弦距离换算为相似度评分。
func (r *Retriever) Retrieve(ctx context.Context, query string, opts ...retriever.Option) ([]*schema.Document, error) {
	if query == "" {
		return nil, components.ErrRequiredField("query")
	}

	options := retriever.GetCommonOptions(&retriever.Options{
		Index:          generic.PtrOf(r.config.IndexName),
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

	topK := generic.ValueOf(options.TopK, DefaultTopK)
	indexName := generic.ValueOf(options.Index, r.config.IndexName)

	raw, err := r.config.Client.Do(ctx,
		"FT.SEARCH", indexName,
		fmt.Sprintf("*=>[KNN %d @%s $vec AS %s]", topK, fieldVector, fieldScore),
		"PARAMS", "2", "vec", redisvec.VectorToBytes(vectors[0]),
		"RETURN", "3", fieldContent, fieldMetadata, fieldScore,
		"SORTBY", fieldScore,
		"DIALECT", "2",
	).Result()
	if err != nil {
		return nil, components.WrapVendor(vendorName, "ft.search", err)
	}

	docs, err := r.parseSearchReply(raw)
	if err != nil {
		return nil, components.WrapVendor(vendorName, "ft.search", err)
	}

	threshold := generic.ValueOf(options.ScoreThreshold, 0)
	if threshold <= 0 {
		return docs, nil
	}
	filtered := docs[:0]
	for _, doc := range docs {
		if doc.Score() >= threshold {
			filtered = append(filtered, doc)
		}
	}
	return filtered, nil
}

// parseSearchReply 解析 FT.SEARCH 的数组回复：
// [total, key1, [field, value, ...], key2, ...]。
func (r *Retriever) parseSearchReply(raw any) ([]*schema.Document, error) {
	reply, ok := raw.([]any)
	if !ok || len(reply) == 0 {
		return nil, fmt.Errorf("unexpected reply type %T", raw)
	}

	var docs []*schema.Document
	for i := 1; i+1 < len(reply); i += 2 {
		key, ok := reply[i].(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key type %T at %d", reply[i], i)
		}
		fieldList, ok := reply[i+1].([]any)
		if !ok {
			return nil, fmt.Errorf("unexpected fields type %T for key %s", reply[i+1], key)
		}

		doc := &schema.Document{ID: strings.TrimPrefix(key, r.config.KeyPrefix)}
		for j := 0; j+1 < len(fieldList); j += 2 {
			name, _ := fieldList[j].(string)
			value, _ := fieldList[j+1].(string)
			switch name {
			case fieldContent:
				doc.Content = value
			case fieldMetadata:
				var metadata map[string]any
				if value != "" {
					_ = sonic.Unmarshal([]byte(value), &metadata)
				}
				doc.MetaData = metadata
			case fieldScore:
				// RediSearch 返回的是余弦距离，换算为相似度。
				if dist, pErr := strconv.ParseFloat(value, 64); pErr == nil {
					doc.WithScore(1 - dist)
				}
			}
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
