package callbacks

import (
	"context"
	"log/slog"

	"github.com/favbox/lfx/components"
)

// SlogHandler 把回调事件输出为结构化日志。
// logger 为 nil 时使用 slog 默认日志器。
type SlogHandler struct {
	logger *slog.Logger
}

// NewSlogHandler 创建日志回调处理器。
func NewSlogHandler(logger *slog.Logger) *SlogHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogHandler{logger: logger}
}

// OnStart 实现 Handler 接口，输出调用开始日志。
// 输入取值不落日志，避免泄露密文字段。
func (h *SlogHandler) OnStart(ctx context.Context, info *RunInfo, inputs components.Inputs) context.Context {
	h.logger.DebugContext(ctx, "component start",
		slog.String("component", info.Name),
		slog.String("kind", string(info.Kind)),
		slog.Int("input_count", len(inputs)),
	)

	return ctx
}

// OnEnd 实现 Handler 接口，输出调用结束日志。
func (h *SlogHandler) OnEnd(ctx context.Context, info *RunInfo, status string) context.Context {
	h.logger.InfoContext(ctx, "component end",
		slog.String("component", info.Name),
		slog.String("kind", string(info.Kind)),
		slog.String("status", status),
	)

	return ctx
}

// OnError 实现 Handler 接口，输出调用失败日志。
func (h *SlogHandler) OnError(ctx context.Context, info *RunInfo, err error) context.Context {
	h.logger.ErrorContext(ctx, "component error",
		slog.String("component", info.Name),
		slog.String("kind", string(info.Kind)),
		slog.String("error", err.Error()),
	)

	return ctx
}
