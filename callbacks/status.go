package callbacks

import (
	"context"
	"sync"

	"github.com/favbox/lfx/components"
)

// StatusRecorder 记录每个组件最近一次调用的状态文本。
//
// 宿主 UI 在节点上展示的 status 字段即来源于此：成功与失败都会
// 覆盖上一次的取值。并发安全。
type StatusRecorder struct {
	mu       sync.RWMutex
	statuses map[string]string
}

// NewStatusRecorder 创建状态记录器。
func NewStatusRecorder() *StatusRecorder {
	return &StatusRecorder{statuses: make(map[string]string)}
}

// Status 返回组件最近一次调用的状态文本。
func (r *StatusRecorder) Status(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.statuses[name]

	return s, ok
}

func (r *StatusRecorder) set(name, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.statuses[name] = status
}

// OnStart 实现 Handler 接口，开始时机为空操作。
func (r *StatusRecorder) OnStart(ctx context.Context, _ *RunInfo, _ components.Inputs) context.Context {
	return ctx
}

// OnEnd 实现 Handler 接口，记录成功状态。
func (r *StatusRecorder) OnEnd(ctx context.Context, info *RunInfo, status string) context.Context {
	r.set(info.Name, status)
	return ctx
}

// OnError 实现 Handler 接口，记录失败状态。
func (r *StatusRecorder) OnError(ctx context.Context, info *RunInfo, err error) context.Context {
	r.set(info.Name, err.Error())
	return ctx
}

// Multi 把多个处理器合并为一个，按注册顺序依次触发。
func Multi(handlers ...Handler) Handler {
	return multiHandler(handlers)
}

type multiHandler []Handler

func (m multiHandler) OnStart(ctx context.Context, info *RunInfo, inputs components.Inputs) context.Context {
	for _, h := range m {
		ctx = h.OnStart(ctx, info, inputs)
	}

	return ctx
}

func (m multiHandler) OnEnd(ctx context.Context, info *RunInfo, status string) context.Context {
	for _, h := range m {
		ctx = h.OnEnd(ctx, info, status)
	}

	return ctx
}

func (m multiHandler) OnError(ctx context.Context, info *RunInfo, err error) context.Context {
	for _, h := range m {
		ctx = h.OnError(ctx, info, err)
	}

	return ctx
}
