package callbacks

import (
	"context"

	"github.com/favbox/lfx/components"
)

// HandlerBuilder 按需组装回调处理器。
// 未设置的时机为空操作，避免实现方填充整个接口。
type HandlerBuilder struct {
	onStartFn func(ctx context.Context, info *RunInfo, inputs components.Inputs) context.Context
	onEndFn   func(ctx context.Context, info *RunInfo, status string) context.Context
	onErrorFn func(ctx context.Context, info *RunInfo, err error) context.Context
}

// NewHandlerBuilder 创建处理器构建器。
func NewHandlerBuilder() *HandlerBuilder {
	return &HandlerBuilder{}
}

// OnStartFn 设置开始时机的回调函数。
func (b *HandlerBuilder) OnStartFn(fn func(ctx context.Context, info *RunInfo, inputs components.Inputs) context.Context) *HandlerBuilder {
	b.onStartFn = fn
	return b
}

// OnEndFn 设置结束时机的回调函数。
func (b *HandlerBuilder) OnEndFn(fn func(ctx context.Context, info *RunInfo, status string) context.Context) *HandlerBuilder {
	b.onEndFn = fn
	return b
}

// OnErrorFn 设置错误时机的回调函数。
func (b *HandlerBuilder) OnErrorFn(fn func(ctx context.Context, info *RunInfo, err error) context.Context) *HandlerBuilder {
	b.onErrorFn = fn
	return b
}

// Build 产出处理器。
func (b *HandlerBuilder) Build() Handler {
	return &handler{
		onStartFn: b.onStartFn,
		onEndFn:   b.onEndFn,
		onErrorFn: b.onErrorFn,
	}
}

type handler struct {
	onStartFn func(ctx context.Context, info *RunInfo, inputs components.Inputs) context.Context
	onEndFn   func(ctx context.Context, info *RunInfo, status string) context.Context
	onErrorFn func(ctx context.Context, info *RunInfo, err error) context.Context
}

func (h *handler) OnStart(ctx context.Context, info *RunInfo, inputs components.Inputs) context.Context {
	if h.onStartFn == nil {
		return ctx
	}

	return h.onStartFn(ctx, info, inputs)
}

func (h *handler) OnEnd(ctx context.Context, info *RunInfo, status string) context.Context {
	if h.onEndFn == nil {
		return ctx
	}

	return h.onEndFn(ctx, info, status)
}

func (h *handler) OnError(ctx context.Context, info *RunInfo, err error) context.Context {
	if h.onErrorFn == nil {
		return ctx
	}

	return h.onErrorFn(ctx, info, err)
}
