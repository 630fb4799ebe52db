package retriever

import (
	"context"

	"github.com/favbox/lfx/schema"
)

// Retriever 接口定义了检索器的核心能力。
//
// 根据查询文本在向量存储中检索相关文档，返回按相关性降序
// 排列的文档列表，评分写入文档元数据。
type Retriever interface {
	// Retrieve 根据查询条件从向量存储检索相关文档。
	//
	// 参数：
	//   - ctx: 上下文信息，用于取消、超时和传递请求相关数据
	//   - query: 查询字符串
	//   - opts: 可选的配置参数（返回数量、相似度阈值等）
	//
	// 返回：
	//   - []*schema.Document: 检索到的相关文档列表，按相关性排序
	//   - error: 检索过程中的错误（如果有）
	Retrieve(ctx context.Context, query string, opts ...Option) ([]*schema.Document, error)
}
