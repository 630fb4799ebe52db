// Package loader 定义文档加载组件的接口。
// 加载器把外部数据源（文件、目录、URL、抓取服务）转换为统一的记录列表。
package loader

import (
	"context"

	"github.com/favbox/lfx/schema"
)

// Loader 接口定义了文档加载能力。
type Loader interface {
	// Load 从数据源加载记录列表。
	Load(ctx context.Context) ([]*schema.Data, error)
}
