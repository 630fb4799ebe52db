// Package callbacks 提供组件执行的状态/日志旁路通道。
//
// 每次组件调用都会在开始、结束（成功或失败）时通知处理器；
// 结束时附带一条人类可读的状态文本，供宿主 UI 展示。该通道只做
// 呈现与诊断，不承载功能语义。
package callbacks

import (
	"context"

	"github.com/favbox/lfx/components"
)

// RunInfo 一次组件调用的运行时信息。
type RunInfo struct {
	// Name 组件的注册名。
	Name string
	// Kind 组件类型。
	Kind components.Component
}

// Handler 回调处理器接口，定义组件执行生命周期中的三个关键时机。
type Handler interface {
	// OnStart 组件开始执行时触发。
	OnStart(ctx context.Context, info *RunInfo, inputs components.Inputs) context.Context

	// OnEnd 组件成功结束时触发，status 为状态摘要文本。
	OnEnd(ctx context.Context, info *RunInfo, status string) context.Context

	// OnError 组件执行失败时触发。
	// 失败同样会产生状态文本，由处理器自行从 err 提取。
	OnError(ctx context.Context, info *RunInfo, err error) context.Context
}

type ctxHandlerKey struct{}

// WithHandler 把处理器挂到上下文上，供组件实现在执行途中发出进度通知。
func WithHandler(ctx context.Context, h Handler) context.Context {
	return context.WithValue(ctx, ctxHandlerKey{}, h)
}

// HandlerFromCtx 取出上下文携带的处理器，未挂载时返回 nil。
func HandlerFromCtx(ctx context.Context) Handler {
	h, _ := ctx.Value(ctxHandlerKey{}).(Handler)
	return h
}

// OnStart 触发上下文携带处理器的 OnStart，未挂载时为空操作。
func OnStart(ctx context.Context, info *RunInfo, inputs components.Inputs) context.Context {
	h := HandlerFromCtx(ctx)
	if h == nil {
		return ctx
	}

	return h.OnStart(ctx, info, inputs)
}

// OnEnd 触发上下文携带处理器的 OnEnd，未挂载时为空操作。
func OnEnd(ctx context.Context, info *RunInfo, status string) context.Context {
	h := HandlerFromCtx(ctx)
	if h == nil {
		return ctx
	}

	return h.OnEnd(ctx, info, status)
}

// OnError 触发上下文携带处理器的 OnError，未挂载时为空操作。
func OnError(ctx context.Context, info *RunInfo, err error) context.Context {
	h := HandlerFromCtx(ctx)
	if h == nil {
		return ctx
	}

	return h.OnError(ctx, info, err)
}
