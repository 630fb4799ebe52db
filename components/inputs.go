package components

import (
	"strconv"
	"strings"

	"github.com/favbox/lfx/schema"
)

// Inputs 是宿主注入的输入字段取值集合。
//
// 取值来自上游节点的输出或用户在 UI 中的配置。读取方法不触发 panic：
// 缺失或类型不符时返回零值，Require* 系列在访问供应商之前返回配置错误。
type Inputs map[string]any

// String 读取字符串字段，缺失或类型不符时返回空字符串。
// 数值取值会被格式化为字符串，以容忍宿主侧的宽松类型。
func (in Inputs) String(key string) string {
	v, ok := in[key]
	if !ok || v == nil {
		return ""
	}

	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// Int 读取整数字段，缺失或类型不符时返回 def。
// JSON 解码产生的 float64 会被截断为整数。
func (in Inputs) Int(key string, def int) int {
	v, ok := in[key]
	if !ok || v == nil {
		return def
	}

	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return def
		}
		return parsed
	default:
		return def
	}
}

// Float 读取浮点数字段，缺失或类型不符时返回 def。
func (in Inputs) Float(key string, def float64) float64 {
	v, ok := in[key]
	if !ok || v == nil {
		return def
	}

	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return def
		}
		return parsed
	default:
		return def
	}
}

// Bool 读取布尔字段，缺失或类型不符时返回 def。
func (in Inputs) Bool(key string, def bool) bool {
	v, ok := in[key]
	if !ok || v == nil {
		return def
	}

	b, isBool := v.(bool)
	if !isBool {
		return def
	}

	return b
}

// StringSlice 读取字符串列表字段。
// 接受 []string 与 []any，其余类型返回 nil。
func (in Inputs) StringSlice(key string) []string {
	v, ok := in[key]
	if !ok || v == nil {
		return nil
	}

	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, isStr := item.(string)
			if !isStr {
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}

// Data 读取上游传入的单条记录句柄。
func (in Inputs) Data(key string) (*schema.Data, bool) {
	v, ok := in[key]
	if !ok {
		return nil, false
	}

	d, isData := v.(*schema.Data)
	if !isData || d == nil {
		return nil, false
	}

	return d, true
}

// DataList 读取上游传入的记录列表句柄。
// 单条记录会被提升为单元素列表。
func (in Inputs) DataList(key string) []*schema.Data {
	v, ok := in[key]
	if !ok || v == nil {
		return nil
	}

	switch list := v.(type) {
	case []*schema.Data:
		return list
	case *schema.Data:
		return []*schema.Data{list}
	default:
		return nil
	}
}

// RequireString 读取必填的字符串字段。
// 取值为空白时返回配置错误，组件以此实现访问供应商前的快速失败。
func (in Inputs) RequireString(key string) (string, error) {
	s := strings.TrimSpace(in.String(key))
	if s == "" {
		return "", ErrRequiredField(key)
	}

	return s, nil
}
