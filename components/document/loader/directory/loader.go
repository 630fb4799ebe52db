// Package directory 实现目录扫描加载组件。
// 匹配到的文件并发读取，每个文件映射为一条记录。
package directory

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/internal/parallel"
	"github.com/favbox/lfx/schema"
)

// DefaultExtensions 默认加载的文件后缀。
var DefaultExtensions = []string{".txt", ".md", ".json", ".csv", ".yaml", ".yml"}

// Config 目录加载器的配置。
type Config struct {
	// Path 扫描的目录。必填。
	Path string

	// Extensions 参与加载的文件后缀（带点），默认 DefaultExtensions。
	Extensions []string

	// Recursive 是否递归子目录。
	Recursive bool

	// LoadHidden 是否加载以点开头的隐藏文件。
	LoadHidden bool

	// MaxConcurrency 并发读取的上限，小于等于 1 时串行。
	MaxConcurrency int

	// SilentErrors 单个文件读取失败时跳过而不是中止。
	SilentErrors bool
}

// Loader 目录加载器。
type Loader struct {
	config Config
	exts   map[string]struct{}
}

// NewLoader 创建目录加载器。
func NewLoader(conf *Config) (*Loader, error) {
	if conf == nil {
		return nil, components.NewConfigError("", "config is nil")
	}
	if conf.Path == "" {
		return nil, components.ErrRequiredField("path")
	}
	if len(conf.Extensions) == 0 {
		conf.Extensions = DefaultExtensions
	}

	exts := make(map[string]struct{}, len(conf.Extensions))
	for _, ext := range conf.Extensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}

	return &Loader{config: *conf, exts: exts}, nil
}

// Load 实现 loader.Loader 接口。
// 记录包含文件文本、相对路径与文件名。
func (l *Loader) Load(ctx context.Context) ([]*schema.Data, error) {
	info, err := os.Stat(l.config.Path)
	if err != nil {
		return nil, components.WrapVendor("directory", "stat path", err)
	}
	if !info.IsDir() {
		return nil, components.NewConfigError("path", "must be a directory")
	}

	paths, err := l.collect()
	if err != nil {
		return nil, components.WrapVendor("directory", "walk", err)
	}

	results, err := parallel.Map(ctx, paths, l.config.MaxConcurrency,
		func(ctx context.Context, path string) (*schema.Data, error) {
			content, rErr := os.ReadFile(path)
			if rErr != nil {
				if l.config.SilentErrors {
					return nil, nil
				}
				return nil, components.WrapVendor("directory", "read file", rErr)
			}

			rel, rErr := filepath.Rel(l.config.Path, path)
			if rErr != nil {
				rel = path
			}
			return schema.NewData(map[string]any{
				schema.DefaultTextKey: string(content),
				"file_path":           rel,
				"file_name":           filepath.Base(path),
			}), nil
		})
	if err != nil {
		return nil, err
	}

	records := make([]*schema.Data, 0, len(results))
	for _, record := range results {
		if record != nil {
			records = append(records, record)
		}
	}
	return records, nil
}

// collect 按配置筛选出待加载的文件路径，顺序稳定。
func (l *Loader) collect() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(l.config.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if l.config.SilentErrors {
				return nil
			}
			return err
		}

		name := d.Name()
		hidden := strings.HasPrefix(name, ".") && path != l.config.Path

		if d.IsDir() {
			if path == l.config.Path {
				return nil
			}
			if !l.config.Recursive {
				return fs.SkipDir
			}
			if hidden && !l.config.LoadHidden {
				return fs.SkipDir
			}
			return nil
		}

		if hidden && !l.config.LoadHidden {
			return nil
		}
		if _, ok := l.exts[strings.ToLower(filepath.Ext(name))]; !ok {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}
