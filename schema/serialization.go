package schema

import "github.com/bytedance/sonic"

// ToJSON 将任意封装类型序列化为 JSON 字符串。
func ToJSON(v any) (string, error) {
	return sonic.MarshalString(v)
}

// FromJSON 从 JSON 字符串反序列化为指定的封装类型。
func FromJSON[T any](raw string) (T, error) {
	var v T
	err := sonic.UnmarshalString(raw, &v)

	return v, err
}
