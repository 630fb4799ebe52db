// Package csv 实现把 CSV 内容转换为记录列表的加载组件。
// 三个数据源（文件路径、内容字符串、读取器）必须且只能提供一个。
package csv

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/schema"
)

// Config CSV 加载器的配置。
type Config struct {
	// FilePath CSV 文件路径，后缀必须是 .csv。
	FilePath string

	// Text CSV 内容字符串。
	Text string

	// Reader CSV 内容读取器。
	Reader io.Reader

	// TextKey 每条记录的文本键，默认 schema.DefaultTextKey。
	TextKey string
}

// Loader CSV 加载器。
type Loader struct {
	config Config
}

// NewLoader 创建 CSV 加载器。
// 数据源数量不为一时返回配置错误，此时不访问文件系统。
func NewLoader(conf *Config) (*Loader, error) {
	if conf == nil {
		return nil, components.NewConfigError("", "config is nil")
	}

	sources := 0
	if conf.FilePath != "" {
		sources++
	}
	if conf.Text != "" {
		sources++
	}
	if conf.Reader != nil {
		sources++
	}
	if sources != 1 {
		return nil, components.NewConfigError("source",
			"exactly one of file_path, text and reader must be set")
	}

	if conf.FilePath != "" && strings.ToLower(filepath.Ext(conf.FilePath)) != ".csv" {
		return nil, components.NewConfigError("file_path", "must point to a .csv file")
	}
	if conf.TextKey == "" {
		conf.TextKey = schema.DefaultTextKey
	}

	return &Loader{config: *conf}, nil
}

// Load 实现 loader.Loader 接口。
// 首行作为列名，每个数据行映射为一条记录。
func (l *Loader) Load(_ context.Context) ([]*schema.Data, error) {
	reader := l.config.Reader
	switch {
	case l.config.FilePath != "":
		f, err := os.Open(l.config.FilePath)
		if err != nil {
			return nil, components.WrapVendor("csv", "open file", err)
		}
		defer f.Close()
		reader = f
	case l.config.Text != "":
		reader = strings.NewReader(l.config.Text)
	}

	cr := csv.NewReader(reader)
	header, err := cr.Read()
	if err == io.EOF {
		return []*schema.Data{}, nil
	}
	if err != nil {
		return nil, components.WrapVendor("csv", "read header", err)
	}

	var records []*schema.Data
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, components.WrapVendor("csv", "read row", err)
		}

		payload := make(map[string]any, len(header))
		for i, name := range header {
			if i < len(row) {
				payload[name] = row[i]
			}
		}
		records = append(records, schema.NewData(payload).WithTextKey(l.config.TextKey))
	}

	if records == nil {
		records = []*schema.Data{}
	}
	return records, nil
}
