// Package calculator 实现四则运算表达式工具。
// 表达式由 go/parser 解析为 AST 后递归求值，不执行任何代码。
package calculator

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/favbox/lfx/components/tool"
	"github.com/favbox/lfx/schema"
)

// ToolName 注册用的工具名。
const ToolName = "calculator"

// Calculator 四则运算表达式求值工具。
//
// 执行失败（语法错误、除零、不支持的运算）不返回 error，
// 而是返回带 "error" 键的记录，调用方据此决定后续动作。
type Calculator struct{}

// NewCalculator 创建计算器工具。
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Info 实现 tool.BaseTool 接口。
func (c *Calculator) Info(_ context.Context) (*tool.Info, error) {
	return &tool.Info{
		Name: ToolName,
		Desc: "Evaluate a basic arithmetic expression (+, -, *, /, parentheses).",
		Params: map[string]*tool.ParameterInfo{
			"expression": {
				Type:     "string",
				Desc:     "The arithmetic expression to evaluate, e.g. \"4*4*(33/22)+12-20\".",
				Required: true,
			},
		},
	}, nil
}

type calcArgs struct {
	Expression string `json:"expression"`
}

// InvokableRun 实现 tool.InvokableTool 接口。
// 成功返回 {"result", "expression"}，失败返回 {"error", "input"}。
func (c *Calculator) InvokableRun(_ context.Context, argumentsInJSON string, _ ...tool.Option) (*schema.Data, error) {
	var args calcArgs
	if err := sonic.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
		return schema.ErrorData(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	if strings.TrimSpace(args.Expression) == "" {
		return schema.ErrorData("empty expression"), nil
	}

	expr, err := parser.ParseExpr(args.Expression)
	if err != nil {
		return errorInput(fmt.Sprintf("syntax error: %v", err), args.Expression), nil
	}

	result, err := evalExpr(expr)
	if err != nil {
		return errorInput(err.Error(), args.Expression), nil
	}

	return schema.NewData(map[string]any{
		"result":     formatResult(result),
		"expression": args.Expression,
	}), nil
}

func errorInput(msg, input string) *schema.Data {
	return schema.NewData(map[string]any{
		"error": msg,
		"input": input,
	})
}

// evalExpr 递归求值 AST 节点。只接受数字字面量与基本算术运算。
func evalExpr(node ast.Expr) (float64, error) {
	switch n := node.(type) {
	case *ast.BasicLit:
		if n.Kind != token.INT && n.Kind != token.FLOAT {
			return 0, fmt.Errorf("unsupported literal %s", n.Value)
		}
		return strconv.ParseFloat(n.Value, 64)

	case *ast.ParenExpr:
		return evalExpr(n.X)

	case *ast.UnaryExpr:
		v, err := evalExpr(n.X)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.SUB:
			return -v, nil
		case token.ADD:
			return v, nil
		default:
			return 0, fmt.Errorf("unsupported unary operator %s", n.Op)
		}

	case *ast.BinaryExpr:
		left, err := evalExpr(n.X)
		if err != nil {
			return 0, err
		}
		right, err := evalExpr(n.Y)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.ADD:
			return left + right, nil
		case token.SUB:
			return left - right, nil
		case token.MUL:
			return left * right, nil
		case token.QUO:
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return left / right, nil
		case token.REM:
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return float64(int64(left) % int64(right)), nil
		default:
			return 0, fmt.Errorf("unsupported operator %s", n.Op)
		}

	default:
		return 0, fmt.Errorf("unsupported expression %T", node)
	}
}

// formatResult 保留六位小数后去掉尾零，整数结果不带小数点。
func formatResult(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
