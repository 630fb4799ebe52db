// Package redisvec 实现基于 Redis Stack（RediSearch 向量检索）的索引组件。
// 文档以 Hash 存储，向量编码为 float32 小端字节序，检索端依赖同构的
// 向量索引定义。
package redisvec

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/embedding"
	"github.com/favbox/lfx/components/indexer"
	"github.com/favbox/lfx/schema"
)

const (
	vendorName = "redis"

	// DefaultIndexName 默认向量索引名。
	DefaultIndexName = "lfx_index"
	// DefaultKeyPrefix 默认文档键前缀。
	DefaultKeyPrefix = "lfx:doc:"
	// DefaultDim 默认向量维度，与 text-embedding-3-small 对齐。
	DefaultDim = 1536

	fieldContent  = "content"
	fieldVector   = "vector"
	fieldMetadata = "metadata"
)

// IndexerConfig Redis 向量索引器的配置。
type IndexerConfig struct {
	// Client 已连接的 Redis 客户端，须指向 Redis Stack 实例。必填。
	Client *redis.Client

	// IndexName 向量索引名，默认 DefaultIndexName。
	IndexName string

	// KeyPrefix 文档键前缀，默认 DefaultKeyPrefix。
	KeyPrefix string

	// Dim 向量维度，默认 DefaultDim。须与嵌入器输出一致。
	Dim int

	// Embedding 把文档内容向量化的嵌入器。必填。
	Embedding embedding.Embedder
}

// Indexer 基于 Redis 的向量索引实现。
type Indexer struct {
	config IndexerConfig
}

// NewIndexer 创建 Redis 向量索引器。
// 索引不存在时按默认结构执行 FT.CREATE。
func NewIndexer(ctx context.Context, conf *IndexerConfig) (*Indexer, error) {
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
	if conf.Dim <= 0 {
		conf.Dim = DefaultDim
	}

	if err := conf.ensureIndex(ctx); err != nil {
		return nil, err
	}

	return &Indexer{config: *conf}, nil
}

// Store 实现 indexer.Indexer 接口。
// 每个文档写为一个 Hash，键为 KeyPrefix+ID。
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

	ids := make([]string, len(docs))
	pipe := i.config.Client.Pipeline()
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

		pipe.HSet(ctx, i.config.KeyPrefix+id, map[string]any{
			fieldContent:  doc.Content,
			fieldVector:   VectorToBytes(vectors[idx]),
			fieldMetadata: string(metadata),
		})
	}

	if _, err = pipe.Exec(ctx); err != nil {
		return nil, components.WrapVendor(vendorName, "hset pipeline", err)
	}

	return ids, nil
}

// ensureIndex 索引不存在时创建 HNSW 余弦向量索引。
func (c *IndexerConfig) ensureIndex(ctx context.Context) error {
	err := c.Client.Do(ctx, "FT.INFO", c.IndexName).Err()
	if err == nil {
		return nil
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unknown index") &&
		!strings.Contains(strings.ToLower(err.Error()), "no such index") {
		return components.WrapVendor(vendorName, "ft.info", err)
	}

	err = c.Client.Do(ctx,
		"FT.CREATE", c.IndexName,
		"ON", "HASH",
		"PREFIX", "1", c.KeyPrefix,
		"SCHEMA",
		fieldContent, "TEXT",
		fieldMetadata, "TEXT", "NOINDEX",
		fieldVector, "VECTOR", "HNSW", "6",
		"TYPE", "FLOAT32",
		"DIM", fmt.Sprint(c.Dim),
		"DISTANCE_METRIC", "COSINE",
	).Err()
	if err != nil {
		return components.WrapVendor(vendorName, "ft.create", err)
	}
	return nil
}

// VectorToBytes 把向量编码为 float32 小端字节序，供 RediSearch 使用。
func VectorToBytes(vec []float64) []byte {
	out := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(float32(v)))
	}
	return out
}
