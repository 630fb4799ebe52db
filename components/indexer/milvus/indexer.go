// Package milvus 实现基于 Milvus 向量数据库的索引组件。
// 集合不存在时自动创建，未加载时自动建索引并加载。
package milvus

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/embedding"
	"github.com/favbox/lfx/components/indexer"
	"github.com/favbox/lfx/schema"
)

const (
	vendorName = "milvus"

	// DefaultCollection 默认集合名。
	DefaultCollection = "lfx_collection"
	// DefaultDim 默认向量维度，与 text-embedding-3-small 对齐。
	DefaultDim = 1536

	defaultDescription = "lfx document collection"
	defaultBatchSize   = 20

	fieldID       = "id"
	fieldContent  = "content"
	fieldVector   = "vector"
	fieldMetadata = "metadata"

	maxIDLen      = 64
	maxContentLen = 65535
)

// IndexerConfig Milvus 索引器的配置。
type IndexerConfig struct {
	// Client 已连接的 Milvus 客户端。必填。
	Client client.Client

	// Collection 集合名，默认 DefaultCollection。
	Collection string

	// Description 建集合时的描述。
	Description string

	// Dim 向量维度，默认 DefaultDim。须与嵌入器输出一致。
	Dim int

	// MetricType 向量度量方式，默认余弦。
	MetricType entity.MetricType

	// BatchSize 单批写入的文档数量，默认 20。
	BatchSize int

	// Embedding 把文档内容向量化的嵌入器。必填。
	Embedding embedding.Embedder
}

// Indexer 基于 Milvus 的索引实现。
type Indexer struct {
	config IndexerConfig
}

// milvusRow 行插入用的文档结构。
type milvusRow struct {
	ID       string    `json:"id" milvus:"name:id"`
	Content  string    `json:"content" milvus:"name:content"`
	Vector   []float32 `json:"vector" milvus:"name:vector"`
	Metadata []byte    `json:"metadata" milvus:"name:metadata"`
}

// NewIndexer 创建 Milvus 索引器。
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
	if conf.Collection == "" {
		conf.Collection = DefaultCollection
	}
	if conf.Description == "" {
		conf.Description = defaultDescription
	}
	if conf.Dim <= 0 {
		conf.Dim = DefaultDim
	}
	if conf.MetricType == "" {
		conf.MetricType = entity.COSINE
	}
	if conf.BatchSize <= 0 {
		conf.BatchSize = defaultBatchSize
	}

	ok, err := conf.Client.HasCollection(ctx, conf.Collection)
	if err != nil {
		return nil, components.WrapVendor(vendorName, "check collection", err)
	}
	if !ok {
		if err = conf.Client.CreateCollection(ctx, conf.collectionSchema(), 1); err != nil {
			return nil, components.WrapVendor(vendorName, "create collection", err)
		}
	}

	if err = conf.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	return &Indexer{config: *conf}, nil
}

// Store 实现 indexer.Indexer 接口。
// 文档分批向量化并写入，全部批次完成后统一 Flush。
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

	ids := make([]string, 0, len(docs))
	for start := 0; start < len(docs); start += i.config.BatchSize {
		end := min(start+i.config.BatchSize, len(docs))
		batch := docs[start:end]

		texts := make([]string, len(batch))
		for idx, doc := range batch {
			texts[idx] = doc.Content
		}

		vectors, err := emb.EmbedStrings(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(batch) {
			return nil, components.WrapVendor(vendorName, "embed batch",
				fmt.Errorf("expected %d embeddings, got %d", len(batch), len(vectors)))
		}

		rows := make([]any, 0, len(batch))
		batchIDs := make([]string, 0, len(batch))
		for idx, doc := range batch {
			id := doc.ID
			if id == "" {
				id = uuid.NewString()
			}
			metadata, mErr := sonic.Marshal(doc.MetaData)
			if mErr != nil {
				return nil, components.WrapVendor(vendorName, "marshal metadata", mErr)
			}
			rows = append(rows, &milvusRow{
				ID:       id,
				Content:  doc.Content,
				Vector:   toFloat32(vectors[idx]),
				Metadata: metadata,
			})
			batchIDs = append(batchIDs, id)
		}

		if _, err = i.config.Client.InsertRows(ctx, i.config.Collection, "", rows); err != nil {
			return nil, components.WrapVendor(vendorName, "insert rows", err)
		}
		ids = append(ids, batchIDs...)
	}

	if err := i.config.Client.Flush(ctx, i.config.Collection, false); err != nil {
		return nil, components.WrapVendor(vendorName, "flush collection", err)
	}

	return ids, nil
}

// Delete 按主键删除文档并刷新集合。
func (i *Indexer) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	expr := fieldID + " in [" + joinQuoted(ids) + "]"
	if err := i.config.Client.Delete(ctx, i.config.Collection, "", expr); err != nil {
		return components.WrapVendor(vendorName, "delete", err)
	}
	if err := i.config.Client.Flush(ctx, i.config.Collection, false); err != nil {
		return components.WrapVendor(vendorName, "flush collection", err)
	}
	return nil
}

// collectionSchema 默认的四字段集合结构。
func (c *IndexerConfig) collectionSchema() *entity.Schema {
	return entity.NewSchema().
		WithName(c.Collection).
		WithDescription(c.Description).
		WithField(entity.NewField().
			WithName(fieldID).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(maxIDLen).
			WithIsPrimaryKey(true)).
		WithField(entity.NewField().
			WithName(fieldContent).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(maxContentLen)).
		WithField(entity.NewField().
			WithName(fieldVector).
			WithDataType(entity.FieldTypeFloatVector).
			WithDim(int64(c.Dim))).
		WithField(entity.NewField().
			WithName(fieldMetadata).
			WithDataType(entity.FieldTypeJSON))
}

// ensureLoaded 保证集合有索引且已加载到内存。
func (c *IndexerConfig) ensureLoaded(ctx context.Context) error {
	state, err := c.Client.GetLoadState(ctx, c.Collection, nil)
	if err != nil {
		return components.WrapVendor(vendorName, "get load state", err)
	}
	if state == entity.LoadStateLoaded {
		return nil
	}

	index, err := c.Client.DescribeIndex(ctx, c.Collection, fieldVector)
	if err != nil || len(index) == 0 {
		autoIndex, iErr := entity.NewIndexAUTOINDEX(c.MetricType)
		if iErr != nil {
			return components.WrapVendor(vendorName, "build index", iErr)
		}
		if iErr = c.Client.CreateIndex(ctx, c.Collection, fieldVector, autoIndex, false); iErr != nil {
			return components.WrapVendor(vendorName, "create index", iErr)
		}
	}

	if err = c.Client.LoadCollection(ctx, c.Collection, false); err != nil {
		return components.WrapVendor(vendorName, "load collection", err)
	}
	return nil
}

func toFloat32(vec []float64) []float32 {
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(v)
	}
	return out
}

func joinQuoted(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += `"` + id + `"`
	}
	return out
}
