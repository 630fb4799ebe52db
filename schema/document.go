package schema

const (
	// 文档评分键名，用于存储检索返回的相关性评分
	docMetaDataKeyScore = "_score"

	// 文档密集向量键名，用于在索引构建过程中携带嵌入向量
	docMetaDataKeyDenseVector = "_dense_vector"
)

// Document - 向量存储使用的文档单元，包含文本内容和元数据。
// 仅由索引器与检索器组件产出和消费。
type Document struct {
	// ID 文档的唯一标识符。
	ID string `json:"id"`

	// Content 文档的文本内容。
	Content string `json:"content"`

	// MetaData 文档元数据映射，存储评分、向量等补充信息。
	MetaData map[string]any `json:"meta_data"`
}

// String 返回文档的文本内容，实现 Stringer 接口。
func (d *Document) String() string {
	return d.Content
}

// WithScore 设置文档的相关性评分，用于检索结果排序。
func (d *Document) WithScore(score float64) *Document {
	if d.MetaData == nil {
		d.MetaData = make(map[string]any)
	}

	d.MetaData[docMetaDataKeyScore] = score

	return d
}

// Score 获取文档的相关性评分，缺失时返回 0。
func (d *Document) Score() float64 {
	if d.MetaData == nil {
		return 0
	}

	score, ok := d.MetaData[docMetaDataKeyScore].(float64)
	if ok {
		return score
	}

	return 0
}

// WithDenseVector 设置文档的密集向量数据。
func (d *Document) WithDenseVector(vector []float64) *Document {
	if d.MetaData == nil {
		d.MetaData = make(map[string]any)
	}

	d.MetaData[docMetaDataKeyDenseVector] = vector

	return d
}

// DenseVector 获取文档的密集向量数据，缺失时返回 nil。
func (d *Document) DenseVector() []float64 {
	if d.MetaData == nil {
		return nil
	}

	vector, ok := d.MetaData[docMetaDataKeyDenseVector].([]float64)
	if ok {
		return vector
	}

	return nil
}
