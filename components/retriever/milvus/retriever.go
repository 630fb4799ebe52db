// Package milvus 实现基于 Milvus 向量数据库的检索组件。
package milvus

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/embedding"
	"github.com/favbox/lfx/components/retriever"
	"github.com/favbox/lfx/internal/generic"
	"github.com/favbox/lfx/schema"
)

const (
	vendorName = "milvus"

	// DefaultCollection 默认集合名，与索引器一致。
	DefaultCollection = "lfx_collection"
	// DefaultTopK 默认返回的文档数量。
	DefaultTopK = 4

	fieldID       = "id"
	fieldContent  = "content"
	fieldVector   = "vector"
	fieldMetadata = "metadata"
)

// RetrieverConfig Milvus 检索器的配置。
type RetrieverConfig struct {
	// Client 已连接的 Milvus 客户端。必填。
	Client client.Client

	// Collection 集合名，默认 DefaultCollection。集合必须已存在。
	Collection string

	// MetricType 向量度量方式，须与建索引时一致，默认余弦。
	MetricType entity.MetricType

	// Embedding 把查询向量化的嵌入器。必填。
	Embedding embedding.Embedder

	// TopK 返回的文档数量上限，默认 DefaultTopK。
	TopK int

	// ScoreThreshold 相似度阈值，大于零时过滤低分文档。
	ScoreThreshold float64
}

// Retriever 基于 Milvus 的检索实现。
type Retriever struct {
	config RetrieverConfig
}

// NewRetriever 创建 Milvus 检索器。
// 集合不存在时返回错误，由索引器负责建集合。
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
	if conf.Collection == "" {
		conf.Collection = DefaultCollection
	}
	if conf.MetricType == "" {
		conf.MetricType = entity.COSINE
	}
	if conf.TopK <= 0 {
		conf.TopK = DefaultTopK
	}

	ok, err := conf.Client.HasCollection(ctx, conf.Collection)
	if err != nil {
		return nil, components.WrapVendor(vendorName, "check collection", err)
	}
	if !ok {
		return nil, components.NewConfigError("collection",
			fmt.Sprintf("collection %q does not exist", conf.Collection))
	}

	if err = conf.Client.LoadCollection(ctx, conf.Collection, false); err != nil {
		return nil, components.WrapVendor(vendorName, "load collection", err)
	}

	return &Retriever{config: *conf}, nil
}

// Retrieve 实现 retriever.Retriever 接口。
func (r *Retriever) Retrieve(ctx context.Context, query string, opts ...retriever.Option) ([]*schema.Document, error) {
	if query == "" {
		return nil, components.ErrRequiredField("query")
	}

	options := retriever.GetCommonOptions(&retriever.Options{
		Index:          generic.PtrOf(r.config.Collection),
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

	sp, err := entity.NewIndexAUTOINDEXSearchParam(1)
	if err != nil {
		return nil, components.WrapVendor(vendorName, "build search param", err)
	}

	collection := generic.ValueOf(options.Index, r.config.Collection)
	results, err := r.config.Client.Search(
		ctx,
		collection,
		nil,
		"",
		[]string{fieldContent, fieldMetadata},
		[]entity.Vector{entity.FloatVector(toFloat32(vectors[0]))},
		fieldVector,
		r.config.MetricType,
		generic.ValueOf(options.TopK, DefaultTopK),
		sp,
	)
	if err != nil {
		return nil, components.WrapVendor(vendorName, "search", err)
	}

	threshold := generic.ValueOf(options.ScoreThreshold, 0)
	var docs []*schema.Document
	for _, result := range results {
		contentCol := result.Fields.GetColumn(fieldContent)
		metadataCol := result.Fields.GetColumn(fieldMetadata)
		if contentCol == nil {
			return nil, components.WrapVendor(vendorName, "search",
				fmt.Errorf("result misses column %q", fieldContent))
		}

		for i := 0; i < result.ResultCount; i++ {
			score := float64(result.Scores[i])
			if threshold > 0 && score < threshold {
				continue
			}

			idVal, idErr := result.IDs.Get(i)
			if idErr != nil {
				return nil, components.WrapVendor(vendorName, "search", idErr)
			}
			id, _ := idVal.(string)

			contentVal, _ := contentCol.Get(i)
			content, _ := contentVal.(string)

			var metadata map[string]any
			if metadataCol != nil {
				if raw, _ := metadataCol.Get(i); raw != nil {
					if bs, ok := raw.([]byte); ok {
						_ = sonic.Unmarshal(bs, &metadata)
					}
				}
			}

			doc := &schema.Document{ID: id, Content: content, MetaData: metadata}
			docs = append(docs, doc.WithScore(score))
		}
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
