package generic

// PtrOf 返回传入值 v 的指针。
// 用于需要获取值指针的场景，如配置结构体字段初始化。
func PtrOf[T any](v T) *T {
	return &v
}

// ValueOf 解引用指针，nil 时返回 def。
func ValueOf[T any](p *T, def T) T {
	if p == nil {
		return def
	}

	return *p
}

// CopyMap 创建 map 的完整副本。
// 新 map 与原 map 完全独立，修改不会相互影响。
func CopyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}

	return dst
}
