package schema

import (
	"sort"

	"github.com/bytedance/sonic"
)

// DefaultTextKey 默认的文本字段键名。
// Data 渲染为纯文本时读取该键。
const DefaultTextKey = "text"

// Data - 通用记录容器，组件的默认输出形态。
//
// 承载任意键值负载，外加一个指定的文本键：当记录需要以纯文本形式
// 呈现时（例如拼接提示词、展示状态），读取文本键对应的字符串值。
// 文本键存在时其值必须为字符串，其余字段不做类型约束。
//
// Data 由组件的一次调用新建，生命周期仅覆盖一个流程图步骤，
// 不做任何持久化。
type Data struct {
	// Payload 记录的键值负载。
	Payload map[string]any `json:"data"`

	// TextKey 指定文本字段的键名。
	// 为空时使用 DefaultTextKey。
	TextKey string `json:"text_key,omitempty"`
}

// NewData 基于给定负载创建一条记录。
// payload 为 nil 时创建空负载，保证返回的记录立即可写。
func NewData(payload map[string]any) *Data {
	if payload == nil {
		payload = make(map[string]any)
	}

	return &Data{Payload: payload}
}

// NewTextData 创建一条仅包含文本的记录。
func NewTextData(text string) *Data {
	return NewData(map[string]any{DefaultTextKey: text})
}

// ErrorData 创建一条错误记录。
//
// 工具类组件不抛出错误，而是把失败转换为带 "error" 键的记录返回，
// 供上层的智能体循环以文本形式观察并处理。
func ErrorData(msg string) *Data {
	return NewData(map[string]any{"error": msg})
}

// textKey 返回生效的文本键名。
func (d *Data) textKey() string {
	if d.TextKey == "" {
		return DefaultTextKey
	}

	return d.TextKey
}

// Get 读取负载中的字段值。
// 缺失时第二个返回值为 false，不会触发 panic。
func (d *Data) Get(key string) (any, bool) {
	if d == nil || d.Payload == nil {
		return nil, false
	}

	v, ok := d.Payload[key]

	return v, ok
}

// GetString 读取负载中的字符串字段。
// 缺失或类型不符时返回空字符串。
func (d *Data) GetString(key string) string {
	v, ok := d.Get(key)
	if !ok {
		return ""
	}

	s, ok := v.(string)
	if !ok {
		return ""
	}

	return s
}

// Set 写入负载字段并返回记录本身，支持链式调用。
func (d *Data) Set(key string, value any) *Data {
	if d.Payload == nil {
		d.Payload = make(map[string]any)
	}

	d.Payload[key] = value

	return d
}

// Has 判断负载中是否存在指定字段。
func (d *Data) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// HasError 判断记录是否为错误记录（负载中存在 "error" 键）。
func (d *Data) HasError() bool {
	return d.Has("error")
}

// Keys 返回负载的全部键名，按字典序排列，保证遍历顺序稳定。
func (d *Data) Keys() []string {
	if d == nil || d.Payload == nil {
		return nil
	}

	keys := make([]string, 0, len(d.Payload))
	for k := range d.Payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Text 返回文本键对应的字符串值。
// 文本键缺失或值不是字符串时返回空字符串。
func (d *Data) Text() string {
	return d.GetString(d.textKey())
}

// WithText 设置文本键对应的值并返回记录本身。
func (d *Data) WithText(text string) *Data {
	return d.Set(d.textKey(), text)
}

// WithTextKey 指定文本字段的键名并返回记录本身。
func (d *Data) WithTextKey(key string) *Data {
	d.TextKey = key
	return d
}

// String 实现 Stringer 接口，渲染为记录的文本内容。
// 文本键缺失时回退为负载的 JSON 形式。
func (d *Data) String() string {
	if d == nil {
		return ""
	}

	if text := d.Text(); text != "" {
		return text
	}

	raw, err := sonic.MarshalString(d.Payload)
	if err != nil {
		return ""
	}

	return raw
}

// ToDocument 将记录转换为向量存储使用的文档。
// 文本键的值作为文档内容，其余字段进入文档元数据。
func (d *Data) ToDocument() *Document {
	doc := &Document{
		Content:  d.Text(),
		MetaData: make(map[string]any, len(d.Payload)),
	}

	textKey := d.textKey()
	for k, v := range d.Payload {
		if k == textKey {
			continue
		}
		if k == "id" {
			if id, ok := v.(string); ok {
				doc.ID = id
				continue
			}
		}
		doc.MetaData[k] = v
	}

	return doc
}

// DataFromDocument 将向量存储文档转换回记录。
// 文档内容写入文本键，元数据展开为负载字段。
func DataFromDocument(doc *Document) *Data {
	d := NewData(nil).WithText(doc.Content)

	if doc.ID != "" {
		d.Set("id", doc.ID)
	}
	for k, v := range doc.MetaData {
		d.Set(k, v)
	}

	return d
}
