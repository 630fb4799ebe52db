package safe

import (
	"fmt"
	"runtime/debug"
)

// panicErr 包装 panic 信息和堆栈跟踪的错误类型。
type panicErr struct {
	info  any    // panic 信息
	stack []byte // 堆栈跟踪信息
}

func (p *panicErr) Error() string {
	return fmt.Sprintf("panic error: %v, \nstack: %s", p.info, string(p.stack))
}

// NewPanicErr 创建新的 panic 错误。
// 包装 panic 信息和堆栈跟踪，实现 error 接口，可打印完整错误信息。
func NewPanicErr(info any, stack []byte) error {
	return &panicErr{
		info,
		stack,
	}
}

// Recover 捕获当前 goroutine 的 panic 并写入 *err。
// 在组件公开方法顶部 defer 调用，把意外错误转换为普通错误返回。
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = NewPanicErr(r, debug.Stack())
	}
}
