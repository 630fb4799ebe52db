package components

// FieldType 表示声明式字段的类型，供宿主 UI 选择对应的输入控件。
type FieldType string

const (
	// FieldTypeStr 单行字符串字段
	FieldTypeStr FieldType = "str"
	// FieldTypeMultiline 多行字符串字段
	FieldTypeMultiline FieldType = "multiline"
	// FieldTypeSecret 密文字段（API 密钥、令牌）
	FieldTypeSecret FieldType = "secret"
	// FieldTypeInt 整数字段
	FieldTypeInt FieldType = "int"
	// FieldTypeFloat 浮点数字段
	FieldTypeFloat FieldType = "float"
	// FieldTypeBool 布尔开关字段
	FieldTypeBool FieldType = "bool"
	// FieldTypeDropdown 下拉选择字段，候选项见 Field.Options
	FieldTypeDropdown FieldType = "dropdown"
	// FieldTypeFile 文件路径字段，由宿主负责解析上传文件
	FieldTypeFile FieldType = "file"
	// FieldTypeHandle 句柄字段，接收上游节点产出的对象
	// （嵌入器、聊天模型等），候选类型见 Field.Options
	FieldTypeHandle FieldType = "handle"
)

// RangeSpec 声明数值字段的取值范围。
type RangeSpec struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Clamp 把取值收拢到声明范围内。
func (r RangeSpec) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}

	return v
}

// Contains 判断取值是否落在声明范围内。
func (r RangeSpec) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Field 声明组件的一个输入字段。
// 宿主 UI 根据该声明渲染配置表单并注入取值。
type Field struct {
	// Name 字段名，组件通过该名字从 Inputs 中读取取值。
	Name string `json:"name"`

	// DisplayName UI 展示名。
	DisplayName string `json:"display_name"`

	// Info 字段说明。
	Info string `json:"info,omitempty"`

	// Type 字段类型。
	Type FieldType `json:"type"`

	// Required 必填标记。必填字段为空时组件在访问供应商前快速失败。
	Required bool `json:"required,omitempty"`

	// Secret 密文标记，宿主以凭据注入机制解析。
	Secret bool `json:"secret,omitempty"`

	// Advanced 高级标记，UI 默认折叠。
	Advanced bool `json:"advanced,omitempty"`

	// Default 默认值。
	Default any `json:"default,omitempty"`

	// Options 下拉候选项或句柄接受的上游类型。
	Options []string `json:"options,omitempty"`

	// Range 数值字段的取值范围声明。
	Range *RangeSpec `json:"range,omitempty"`
}

// Output 声明组件的一个输出端口。
type Output struct {
	// Name 输出名。
	Name string `json:"name"`

	// DisplayName UI 展示名。
	DisplayName string `json:"display_name"`

	// Types 输出的封装类型名（Data、Message、DataFrame）。
	Types []string `json:"types"`
}

// Descriptor 组件的完整声明：标识、类型与字段模式。
// 替代原型系统里的运行时反射，宿主只消费该显式结构。
type Descriptor struct {
	// Name 组件的注册名，注册表内唯一。
	Name string `json:"name"`

	// DisplayName UI 展示名。
	DisplayName string `json:"display_name"`

	// Description 组件说明。
	Description string `json:"description,omitempty"`

	// Kind 组件类型。
	Kind Component `json:"kind"`

	// Inputs 输入字段声明。
	Inputs []Field `json:"inputs"`

	// Outputs 输出端口声明。
	Outputs []Output `json:"outputs"`
}

// FieldByName 按字段名查找输入声明。
func (d Descriptor) FieldByName(name string) (Field, bool) {
	for _, f := range d.Inputs {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}
