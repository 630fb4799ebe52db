// Package components 定义组件契约：组件类型枚举、声明式字段模式、
// 统一的输入读取与错误分类。
//
// 组件是包装单一供应商能力的适配器，向宿主流程执行器暴露：
//   - 声明式的输入/输出字段模式（Descriptor），供流程编辑器渲染
//   - 一个或多个构建方法，产出统一的封装类型（Data、Message、DataFrame）
//
// 各供应商实现位于本包的子包中，按组件类型分组。
package components
