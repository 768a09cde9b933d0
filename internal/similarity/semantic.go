package similarity

import (
	"fmt"
	"math"
)

// SemanticSource supplies pre-computed semantic similarity for a pair of
// record ids. ok is false when no value is known for the pair; the engine
// then scores the semantic dimension as 0 rather than inventing one.
type SemanticSource interface {
	SemanticSimilarity(idA, idB string) (float64, bool)
}

// Semantic is a convenience for passing a literal semantic value to Score.
func Semantic(v float64) *float64 {
	return &v
}

// Lookup resolves the semantic value for a pair from an optional source.
func Lookup(src SemanticSource, idA, idB string) *float64 {
	if src == nil {
		return nil
	}
	v, ok := src.SemanticSimilarity(idA, idB)
	if !ok {
		return nil
	}
	return &v
}

// StaticSource is a fixed map of unordered pairs to similarity values.
type StaticSource struct {
	values map[[2]string]float64
}

// NewStaticSource returns an empty StaticSource.
func NewStaticSource() *StaticSource {
	return &StaticSource{values: make(map[[2]string]float64)}
}

// Set records the similarity for the unordered pair (a, b).
func (s *StaticSource) Set(a, b string, v float64) *StaticSource {
	s.values[pairKey(a, b)] = v
	return s
}

// SemanticSimilarity implements SemanticSource.
func (s *StaticSource) SemanticSimilarity(idA, idB string) (float64, bool) {
	v, ok := s.values[pairKey(idA, idB)]
	return v, ok
}

func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// MatrixSource is a symmetric pairwise matrix whose row and column order
// matches the record order it was built for.
type MatrixSource struct {
	index  map[string]int
	matrix [][]float64
}

// NewMatrixSource binds a square matrix to the ids of the records it was
// computed from. ids[i] labels row and column i.
func NewMatrixSource(ids []string, matrix [][]float64) (*MatrixSource, error) {
	if len(matrix) != len(ids) {
		return nil, fmt.Errorf("similarity matrix has %d rows, expected %d", len(matrix), len(ids))
	}
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		if len(matrix[i]) != len(ids) {
			return nil, fmt.Errorf("similarity matrix row %d has %d columns, expected %d", i, len(matrix[i]), len(ids))
		}
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("duplicate record id %q in similarity matrix labels", id)
		}
		index[id] = i
	}
	return &MatrixSource{index: index, matrix: matrix}, nil
}

// SemanticSimilarity implements SemanticSource. NaN cells are reported as unknown.
func (m *MatrixSource) SemanticSimilarity(idA, idB string) (float64, bool) {
	i, okA := m.index[idA]
	j, okB := m.index[idB]
	if !okA || !okB {
		return 0, false
	}
	v := m.matrix[i][j]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Size returns the number of records covered by the matrix.
func (m *MatrixSource) Size() int {
	return len(m.matrix)
}
