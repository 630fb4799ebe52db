// Package flatstore 是本地向量索引的存储引擎：全量暴力余弦检索，
// sonic 序列化落盘。作为无外部服务依赖的向量存储后端，
// 供 flat 索引器/检索器组件使用。
package flatstore

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bytedance/sonic"
)

// Entry 索引中的一条文档。
type Entry struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Vector   []float64      `json:"vector"`
	MetaData map[string]any `json:"meta_data,omitempty"`
}

// Scored 检索命中的文档及其余弦相似度评分。
type Scored struct {
	Entry Entry
	Score float64
}

// Store 落盘的本地向量索引。
// 并发安全；每次写入后整体持久化到 <dir>/<name>.json。
type Store struct {
	path string

	mu      sync.RWMutex
	entries []Entry
}

// Open 打开（或新建）目录下的命名索引。
// 索引文件存在时全量加载进内存。
func Open(dir, name string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	s := &Store{path: filepath.Join(dir, name+".json")}

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index file: %w", err)
	}
	if err = sonic.Unmarshal(raw, &s.entries); err != nil {
		return nil, fmt.Errorf("decode index file %s: %w", s.path, err)
	}

	return s, nil
}

// Add 追加文档并持久化。
func (s *Store) Add(entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entries...)

	return s.persist()
}

// persist 调用方必须持有写锁。
func (s *Store) persist() error {
	raw, err := sonic.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write index file: %w", err)
	}

	return os.Rename(tmp, s.path)
}

// Len 返回索引中的文档数。
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Search 按余弦相似度返回前 topK 个文档。
// threshold 大于零时过滤低于阈值的命中；结果按评分降序排列。
func (s *Store) Search(vector []float64, topK int, threshold float64) []Scored {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if topK <= 0 {
		return nil
	}

	scored := make([]Scored, 0, len(s.entries))
	for _, e := range s.entries {
		score := cosine(vector, e.Vector)
		if threshold > 0 && score < threshold {
			continue
		}
		scored = append(scored, Scored{Entry: e, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	return scored
}

// cosine 计算两个向量的余弦相似度。
// 维度不一致或零向量时返回 0。
func cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
