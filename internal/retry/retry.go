// Package retry 提供次数有限、固定间隔的重试。
//
// 组件对供应商错误默认不重试；仅个别幂等的单次网络调用
// （推理 API 嵌入）用本包包裹。
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Func 定义被重试的函数类型。
type Func func() error

// Option 定义重试选项类型。
type Option func(*options)

type options struct {
	times    int
	interval time.Duration
	label    string
}

// WithTimes 设置最大尝试次数。
func WithTimes(times int) Option {
	return func(o *options) {
		o.times = times
	}
}

// WithInterval 设置两次尝试之间的固定间隔。
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		o.interval = d
	}
}

// WithLabel 设置日志标签。
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

func defaultOptions() *options {
	return &options{
		times:    3,
		interval: 2 * time.Second,
		label:    "retry",
	}
}

// Do 执行重试。
// 全部尝试失败后返回带尝试次数的错误，最后一次错误保留在错误链中；
// 等待间隔期间 ctx 取消会立即中止。
func Do(ctx context.Context, fn Func, opts ...Option) error {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(cfg)
	}

	var err error
	for i := 0; i < cfg.times; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		slog.Warn("attempt failed",
			slog.String("label", cfg.label),
			slog.Int("attempt", i+1),
			slog.Int("max", cfg.times),
			slog.String("error", err.Error()),
		)

		if i < cfg.times-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.interval):
			}
		}
	}

	return fmt.Errorf("%s: all %d attempts failed, last error: %w", cfg.label, cfg.times, err)
}
