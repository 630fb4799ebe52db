package prompt

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/nikolalohinski/gonja"
	"github.com/nikolalohinski/gonja/config"
	"github.com/nikolalohinski/gonja/nodes"
	"github.com/nikolalohinski/gonja/parser"
	"github.com/slongfield/pyfmt"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/schema"
)

// FormatType 模板的格式化类型。
type FormatType uint8

const (
	// FString Python 风格的字符串格式化 (PEP-3101)。
	// 由 pyfmt 库实现。
	FString FormatType = 0
	// GoTemplate Go 标准库的 text/template 格式化。
	GoTemplate FormatType = 1
	// Jinja2 Jinja2 模板格式化。
	// 由 gonja 库实现。
	Jinja2 FormatType = 2
)

// Config 提示词模板组件的配置。
type Config struct {
	// Template 模板文本。必填。
	Template string

	// Format 模板的格式化类型，默认 FString。
	Format FormatType

	// Sender 渲染产物的发送方类别，默认 SenderAI。
	Sender string

	// SessionID 渲染产物归属的会话，默认 DefaultSessionID。
	SessionID string
}

// PromptTemplate 提示词模板组件。
type PromptTemplate struct {
	config Config
}

// NewPromptTemplate 创建提示词模板组件。
func NewPromptTemplate(conf *Config) (*PromptTemplate, error) {
	if conf == nil || strings.TrimSpace(conf.Template) == "" {
		return nil, components.ErrRequiredField("template")
	}

	return &PromptTemplate{config: *conf}, nil
}

// Format 实现 Template 接口，用变量渲染模板。
// 变量缺失视为渲染错误，不产出半成品消息。
func (p *PromptTemplate) Format(_ context.Context, variables map[string]any, _ ...Option) (*schema.Message, error) {
	text, err := formatContent(p.config.Template, variables, p.config.Format)
	if err != nil {
		return nil, fmt.Errorf("format prompt template: %w", err)
	}

	var msg *schema.Message
	switch p.config.Sender {
	case schema.SenderUser:
		msg = schema.NewUserMessage(text)
	case schema.SenderSystem:
		msg = schema.NewSystemMessage(text)
	default:
		msg = schema.NewAIMessage(text)
	}

	return msg.WithSessionID(p.config.SessionID), nil
}

// formatContent 根据格式化类型格式化内容字符串。
func formatContent(content string, vs map[string]any, formatType FormatType) (string, error) {
	switch formatType {
	case FString:
		return pyfmt.Fmt(content, vs)
	case GoTemplate:
		parsedTmpl, err := template.New("template").
			Option("missingkey=error").
			Parse(content)
		if err != nil {
			return "", err
		}
		sb := new(strings.Builder)
		err = parsedTmpl.Execute(sb, vs)
		if err != nil {
			return "", err
		}
		return sb.String(), nil
	case Jinja2:
		env, err := getJinjaEnv()
		if err != nil {
			return "", err
		}
		tpl, err := env.FromString(content)
		if err != nil {
			return "", err
		}
		out, err := tpl.Execute(vs)
		if err != nil {
			return "", err
		}
		return out, nil
	default:
		return "", fmt.Errorf("unknown format type: %v", formatType)
	}
}

// jinjaEnvOnce 确保 jinja 环境只初始化一次。
var jinjaEnvOnce sync.Once

// jinjaEnv 自定义的 jinja 环境实例。
var jinjaEnv *gonja.Environment

// envInitErr jinja 环境初始化错误。
var envInitErr error

// 禁用的不安全关键字。
var jinjaDisabledKeywords = []string{"include", "extends", "import", "from"}

// getJinjaEnv 获取自定义的 jinja 环境。
// 禁用了 include、extends、import、from 等不安全的关键字。
func getJinjaEnv() (*gonja.Environment, error) {
	jinjaEnvOnce.Do(func() {
		jinjaEnv = gonja.NewEnvironment(config.DefaultConfig, gonja.DefaultLoader)
		for _, keyword := range jinjaDisabledKeywords {
			if !jinjaEnv.Statements.Exists(keyword) {
				continue
			}
			kw := keyword
			err := jinjaEnv.Statements.Replace(kw, func(parser *parser.Parser, args *parser.Parser) (nodes.Statement, error) {
				return nil, fmt.Errorf("keyword[%s] has been disabled", kw)
			})
			if err != nil {
				envInitErr = fmt.Errorf("init jinja env fail: %w", err)
				return
			}
		}
	})

	return jinjaEnv, envInitErr
}
