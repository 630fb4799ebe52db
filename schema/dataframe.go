package schema

import (
	"strings"

	"github.com/bytedance/sonic"
)

// DataFrame - 表格容器，列表形输出（搜索结果、文件清单、转写记录）
// 的统一形态。
//
// 行是一组有序的 *Data；列集合为所有行键名的并集，按首次出现顺序
// 排列（行内按字典序），缺失单元格为 nil。
type DataFrame struct {
	columns []string
	colSet  map[string]struct{}
	rows    []*Data
}

// NewDataFrame 基于一组记录构建表格。
func NewDataFrame(rows []*Data) *DataFrame {
	f := &DataFrame{colSet: make(map[string]struct{})}
	for _, row := range rows {
		f.AddRow(row)
	}

	return f
}

// DataFrameFromMaps 基于一组原始映射构建表格。
func DataFrameFromMaps(rows []map[string]any) *DataFrame {
	f := &DataFrame{colSet: make(map[string]struct{})}
	for _, row := range rows {
		f.AddRow(NewData(row))
	}

	return f
}

// AddRow 追加一行并把未见过的键并入列集合。
// nil 行被忽略。
func (f *DataFrame) AddRow(row *Data) *DataFrame {
	if row == nil {
		return f
	}
	if f.colSet == nil {
		f.colSet = make(map[string]struct{})
	}

	f.rows = append(f.rows, row)
	for _, k := range row.Keys() {
		if _, ok := f.colSet[k]; ok {
			continue
		}
		f.colSet[k] = struct{}{}
		f.columns = append(f.columns, k)
	}

	return f
}

// Columns 返回列名集合，顺序稳定。
func (f *DataFrame) Columns() []string {
	cols := make([]string, len(f.columns))
	copy(cols, f.columns)

	return cols
}

// Rows 返回全部行。
func (f *DataFrame) Rows() []*Data {
	return f.rows
}

// NumRows 返回行数。
func (f *DataFrame) NumRows() int {
	return len(f.rows)
}

// At 返回第 i 行指定列的单元格值，缺失为 nil。
// 行号越界时同样返回 nil。
func (f *DataFrame) At(i int, column string) any {
	if i < 0 || i >= len(f.rows) {
		return nil
	}

	v, _ := f.rows[i].Get(column)

	return v
}

// Text 以制表符分隔的形式渲染表格，供 UI 与日志展示。
func (f *DataFrame) Text() string {
	var sb strings.Builder

	sb.WriteString(strings.Join(f.columns, "\t"))
	for _, row := range f.rows {
		sb.WriteString("\n")
		cells := make([]string, len(f.columns))
		for i, col := range f.columns {
			v, ok := row.Get(col)
			if !ok || v == nil {
				continue
			}
			if s, isStr := v.(string); isStr {
				cells[i] = s
				continue
			}
			raw, err := sonic.MarshalString(v)
			if err == nil {
				cells[i] = raw
			}
		}
		sb.WriteString(strings.Join(cells, "\t"))
	}

	return sb.String()
}

// MarshalJSON 序列化为行记录数组。
func (f *DataFrame) MarshalJSON() ([]byte, error) {
	records := make([]map[string]any, 0, len(f.rows))
	for _, row := range f.rows {
		rec := make(map[string]any, len(f.columns))
		for _, col := range f.columns {
			v, ok := row.Get(col)
			if !ok {
				rec[col] = nil
				continue
			}
			rec[col] = v
		}
		records = append(records, rec)
	}

	return sonic.Marshal(records)
}

// UnmarshalJSON 从行记录数组还原表格。
// 列顺序按还原过程重建，与序列化前的首次出现顺序可能不同。
func (f *DataFrame) UnmarshalJSON(raw []byte) error {
	var records []map[string]any
	if err := sonic.Unmarshal(raw, &records); err != nil {
		return err
	}

	*f = *DataFrameFromMaps(records)

	return nil
}
