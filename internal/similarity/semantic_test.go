package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource_OrderIndependent(t *testing.T) {
	src := NewStaticSource().Set("b", "a", 0.8)

	v, ok := src.SemanticSimilarity("a", "b")
	assert.True(t, ok)
	assert.Equal(t, 0.8, v)

	v, ok = src.SemanticSimilarity("b", "a")
	assert.True(t, ok)
	assert.Equal(t, 0.8, v)

	_, ok = src.SemanticSimilarity("a", "c")
	assert.False(t, ok)
}

func TestMatrixSource_Lookup(t *testing.T) {
	m, err := NewMatrixSource([]string{"a", "b", "c"}, [][]float64{
		{1.0, 0.4, 0.1},
		{0.4, 1.0, math.NaN()},
		{0.1, math.NaN(), 1.0},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Size())

	v, ok := m.SemanticSimilarity("a", "b")
	assert.True(t, ok)
	assert.Equal(t, 0.4, v)

	_, ok = m.SemanticSimilarity("b", "c")
	assert.False(t, ok, "NaN cells are unknown")

	_, ok = m.SemanticSimilarity("a", "zzz")
	assert.False(t, ok)
}

func TestNewMatrixSource_ShapeMismatch(t *testing.T) {
	_, err := NewMatrixSource([]string{"a", "b"}, [][]float64{{1.0, 0.2}})
	require.Error(t, err)

	_, err = NewMatrixSource([]string{"a", "b"}, [][]float64{{1.0, 0.2}, {0.2}})
	require.Error(t, err)

	_, err = NewMatrixSource([]string{"a", "a"}, [][]float64{{1, 1}, {1, 1}})
	require.Error(t, err)
}

func TestLookup(t *testing.T) {
	assert.Nil(t, Lookup(nil, "a", "b"))

	src := NewStaticSource().Set("a", "b", 0.3)
	v := Lookup(src, "a", "b")
	require.NotNil(t, v)
	assert.Equal(t, 0.3, *v)
	assert.Nil(t, Lookup(src, "a", "c"))
}
