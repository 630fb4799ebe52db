package model

import (
	"context"

	"github.com/favbox/lfx/schema"
)

// ChatModel 接口定义了聊天模型的核心能力。
//
// 接收一组对话消息，返回模型生成的单条消息。流式供应商在实现内部
// 聚合流式分块，对外仍只返回一条完整消息。
type ChatModel interface {
	// Generate 根据输入消息生成一条回复消息。
	//
	// 参数：
	//   - ctx: 上下文信息，用于取消、超时和传递请求相关数据
	//   - messages: 输入的对话消息列表，按时间顺序排列
	//   - opts: 可选的配置参数，用于定制本次生成（模型名、温度等）
	//
	// 返回：
	//   - *schema.Message: 模型生成的回复消息
	//   - error: 生成过程中的错误（如果有）
	Generate(ctx context.Context, messages []*schema.Message, opts ...Option) (*schema.Message, error)
}
