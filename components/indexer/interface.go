package indexer

import (
	"context"

	"github.com/favbox/lfx/schema"
)

// Indexer 接口定义了向量索引器的核心能力。
//
// 把文档写入向量存储，供检索器后续检索。存储本身（本地索引、
// Milvus、Redis、pgvector 等）是不透明的外部依赖。
type Indexer interface {
	// Store 将文档写入向量存储。
	//
	// 参数：
	//   - ctx: 上下文信息，用于取消、超时和传递请求相关数据
	//   - docs: 要写入的文档列表
	//   - opts: 可选的配置参数
	//
	// 返回：
	//   - []string: 写入文档的标识列表，与输入顺序一致
	//   - error: 写入过程中的错误（如果有）
	Store(ctx context.Context, docs []*schema.Document, opts ...Option) ([]string, error)
}
