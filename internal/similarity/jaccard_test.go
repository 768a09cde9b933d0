package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

func TestJaccard_Identity(t *testing.T) {
	s := types.NewStringSet("determine", "identify")
	assert.Equal(t, 1.0, Jaccard(s, s))
}

func TestJaccard_Disjoint(t *testing.T) {
	a := types.NewStringSet("determine")
	b := types.NewStringSet("write")
	assert.Equal(t, 0.0, Jaccard(a, b))
}

func TestJaccard_EmptyIsZero(t *testing.T) {
	empty := types.NewStringSet()
	s := types.NewStringSet("identify")

	assert.Equal(t, 0.0, Jaccard(empty, s))
	assert.Equal(t, 0.0, Jaccard(s, empty))
	// Two empty sets are not a perfect match.
	assert.Equal(t, 0.0, Jaccard(empty, empty))
}

func TestJaccard_PartialOverlapIsSymmetric(t *testing.T) {
	a := types.NewStringSet("main idea", "details")
	b := types.NewStringSet("main idea", "key details", "theme")

	ab := Jaccard(a, b)
	ba := Jaccard(b, a)

	assert.InDelta(t, 0.25, ab, 1e-9)
	assert.Equal(t, ab, ba)
	assert.GreaterOrEqual(t, ab, 0.0)
	assert.LessOrEqual(t, ab, 1.0)
}

func TestJaccard_CaseInsensitive(t *testing.T) {
	a := types.ParseSet("Determine|IDENTIFY")
	b := types.ParseSet("determine, identify")
	assert.Equal(t, 1.0, Jaccard(a, b))
}

func TestWeightedAverage_ZeroWeights(t *testing.T) {
	assert.Equal(t, 0.0, weightedAverage([]float64{1, 1}, []float64{0, 0}))
}

func TestWeightedAverage_Normalizes(t *testing.T) {
	got := weightedAverage([]float64{1, 0}, []float64{2, 2})
	assert.InDelta(t, 0.5, got, 1e-9)
}
