package tool

import (
	"context"

	"github.com/favbox/lfx/schema"
)

// ParameterInfo 描述工具的一个参数。
type ParameterInfo struct {
	// Type 参数类型（string、number、integer、boolean）。
	Type string `json:"type"`
	// Desc 参数说明。
	Desc string `json:"desc,omitempty"`
	// Required 必填标记。
	Required bool `json:"required,omitempty"`
}

// Info 工具的元信息，供聊天模型做意图识别与参数构造。
type Info struct {
	// Name 工具名称。
	Name string `json:"name"`
	// Desc 工具用途说明。
	Desc string `json:"desc"`
	// Params 参数名到参数描述的映射。
	Params map[string]*ParameterInfo `json:"params,omitempty"`
}

// BaseTool 接口定义了工具的基本信息获取能力。
type BaseTool interface {
	// Info 返回工具的元信息。
	Info(ctx context.Context) (*Info, error)
}

// InvokableTool 接口定义了可调用的工具。
//
// 工具类组件刻意吞掉执行错误：失败被转换为带 "error" 键的记录返回
// 而不是抛出，使构建在其上的智能体循环能以文本形式观察失败并作出
// 反应，而不是让整个流程崩溃。只有工具自身无法构造（依赖缺失等）
// 才返回 error。
type InvokableTool interface {
	BaseTool

	// InvokableRun 使用 JSON 格式的参数调用工具。
	//
	// 参数：
	//   - ctx: 上下文信息，用于取消、超时和传递请求相关数据
	//   - argumentsInJSON: JSON 格式的工具参数，结构由工具定义决定
	//   - opts: 可选的配置参数
	//
	// 返回：
	//   - *schema.Data: 工具执行结果；失败时为带 "error" 键的记录
	//   - error: 仅在工具无法执行（而非执行失败）时返回
	InvokableRun(ctx context.Context, argumentsInJSON string, opts ...Option) (*schema.Data, error)
}
