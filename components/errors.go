package components

import (
	"errors"
	"fmt"
)

// ConfigError 配置错误：必填字段缺失或输入格式非法。
// 在任何外部调用之前抛出，用户可自行修正，永不重试。
type ConfigError struct {
	// Field 出错的字段名，可为空。
	Field string
	// Reason 错误原因。
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}

	return fmt.Sprintf("invalid configuration: field %q %s", e.Field, e.Reason)
}

// NewConfigError 创建一个配置错误。
func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}

// ErrRequiredField 创建必填字段缺失的配置错误。
func ErrRequiredField(field string) *ConfigError {
	return &ConfigError{Field: field, Reason: "is required"}
}

// DependencyError 依赖错误：组件依赖的外部设施不可用。
// 携带可执行的修复提示。
type DependencyError struct {
	// Dependency 缺失的依赖名。
	Dependency string
	// Hint 修复提示。
	Hint string
}

func (e *DependencyError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("missing dependency: %s", e.Dependency)
	}

	return fmt.Sprintf("missing dependency: %s (%s)", e.Dependency, e.Hint)
}

// VendorError 供应商错误：HTTP 失败、认证拒绝、限流或响应形状异常。
// 在调用点捕获后附加供应商上下文重新包装，原始错误链完整保留。
type VendorError struct {
	// Vendor 供应商名。
	Vendor string
	// Op 出错的操作（端点或方法名）。
	Op string
	// Err 原始错误。
	Err error
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Vendor, e.Op, e.Err)
}

func (e *VendorError) Unwrap() error {
	return e.Err
}

// WrapVendor 把供应商调用产生的错误包装为 VendorError。
// err 为 nil 时返回 nil。
func WrapVendor(vendor, op string, err error) error {
	if err == nil {
		return nil
	}

	return &VendorError{Vendor: vendor, Op: op, Err: err}
}

// IsConfigError 判断错误链中是否存在配置错误。
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsVendorError 判断错误链中是否存在供应商错误。
func IsVendorError(err error) bool {
	var ve *VendorError
	return errors.As(err, &ve)
}
