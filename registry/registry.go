package registry

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/favbox/lfx/callbacks"
	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/internal/safe"
)

// EnvDisabledComponents 环境变量名：逗号分隔的禁用组件名列表。
const EnvDisabledComponents = "LFX_DISABLED_COMPONENTS"

// BuildFunc 组件的构建执行函数：从输入字段取值构造组件并完成一次调用。
type BuildFunc func(ctx context.Context, in components.Inputs) (*Envelope, error)

// Builder 一个可注册的组件：声明加构建函数。
type Builder struct {
	Descriptor components.Descriptor
	Build      BuildFunc
}

// Config 注册表的装配配置。
// 禁用哪些组件在构造时一次性显式给出，注册表自身不读环境变量。
type Config struct {
	// Disabled 跳过注册的组件名列表。
	Disabled []string

	// Handler 调用旁路通道的处理器，为空时不发回调。
	Handler callbacks.Handler
}

// ConfigFromEnv 从进程环境构造配置。
// 先尝试加载 .env（不存在时忽略），再读 EnvDisabledComponents。
// 这是仓库中唯一触碰环境变量的构造入口。
func ConfigFromEnv() Config {
	_ = godotenv.Load()

	var disabled []string
	for _, name := range strings.Split(os.Getenv(EnvDisabledComponents), ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			disabled = append(disabled, name)
		}
	}

	return Config{Disabled: disabled}
}

// Registry 组件注册表。注册阶段完成后只读，可并发查询与调用。
type Registry struct {
	handler  callbacks.Handler
	builders map[string]Builder
}

// New 创建注册表并装配内置组件清单，跳过禁用项。
func New(conf Config) (*Registry, error) {
	r := &Registry{
		handler:  conf.Handler,
		builders: make(map[string]Builder),
	}

	disabled := make(map[string]struct{}, len(conf.Disabled))
	for _, name := range conf.Disabled {
		disabled[name] = struct{}{}
	}

	for _, b := range builtinBuilders() {
		if _, skip := disabled[b.Descriptor.Name]; skip {
			continue
		}
		if err := r.Register(b); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register 注册一个组件，重名时返回错误。
func (r *Registry) Register(b Builder) error {
	name := b.Descriptor.Name
	if name == "" {
		return components.NewConfigError("name", "must not be empty")
	}
	if b.Build == nil {
		return components.NewConfigError("build", "must not be nil")
	}
	if _, exists := r.builders[name]; exists {
		return fmt.Errorf("component %q already registered", name)
	}

	r.builders[name] = b
	return nil
}

// Lookup 按注册名查找组件。
func (r *Registry) Lookup(name string) (Builder, bool) {
	b, ok := r.builders[name]
	return b, ok
}

// List 返回所有已注册组件的声明，按注册名排序。
func (r *Registry) List() []components.Descriptor {
	descriptors := make([]components.Descriptor, 0, len(r.builders))
	for _, b := range r.builders {
		descriptors = append(descriptors, b.Descriptor)
	}
	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Name < descriptors[j].Name
	})

	return descriptors
}

// Invoke 执行一次组件调用并在旁路通道上发出开始/结束/失败通知。
// 成功的状态文本从结果封装派生。
func (r *Registry) Invoke(ctx context.Context, name string, in components.Inputs) (*Envelope, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("component %q not registered", name)
	}

	if r.handler != nil {
		ctx = callbacks.WithHandler(ctx, r.handler)
	}

	info := &callbacks.RunInfo{Name: name, Kind: b.Descriptor.Kind}
	ctx = callbacks.OnStart(ctx, info, in)

	out, err := runBuild(ctx, b, in)
	if err != nil {
		callbacks.OnError(ctx, info, err)
		return nil, err
	}

	callbacks.OnEnd(ctx, info, out.StatusText())
	return out, nil
}

// runBuild 执行构建函数，panic 转换为普通错误走失败通知。
func runBuild(ctx context.Context, b Builder, in components.Inputs) (out *Envelope, err error) {
	defer safe.Recover(&err)
	return b.Build(ctx, in)
}
