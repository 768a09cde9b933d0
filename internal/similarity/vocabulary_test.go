package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/config"
)

func newTestVocabulary() *Vocabulary {
	return NewVocabulary(config.Default().Vocabulary)
}

func TestGradeIndex_Forms(t *testing.T) {
	v := newTestVocabulary()

	tests := []struct {
		label string
		want  int
	}{
		{"3", 4},
		{"Grade 3", 4},
		{"grade_3", 4},
		{"3rd", 4},
		{"3rd grade", 4},
		{"03", 4},
		{"K", 1},
		{"Kindergarten", 1},
		{"pre-k", 0},
		{"12th", 13},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := v.GradeIndex(tt.label)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGradeIndex_Unmapped(t *testing.T) {
	v := newTestVocabulary()

	for _, label := range []string{"", "college", "grade", "13"} {
		_, ok := v.GradeIndex(label)
		assert.False(t, ok, label)
	}
}

func TestGradeCompatibility(t *testing.T) {
	v := newTestVocabulary()

	assert.Equal(t, 1.0, v.GradeCompatibility("3", "grade 3"))
	assert.Equal(t, 0.5, v.GradeCompatibility("3", "4"))
	assert.InDelta(t, 0.4, v.GradeCompatibility("3", "5"), 1e-9)
	assert.InDelta(t, 0.1, v.GradeCompatibility("1", "6"), 1e-9)
	assert.Equal(t, 0.0, v.GradeCompatibility("1", "12"))
	// Unmapped grade degrades to 0.
	assert.Equal(t, 0.0, v.GradeCompatibility("3", "college"))
	assert.Equal(t, 0.0, v.GradeCompatibility("", "3"))
}

func TestGradeDifference_Signed(t *testing.T) {
	v := newTestVocabulary()

	d, ok := v.GradeDifference("3", "4")
	assert.True(t, ok)
	assert.Equal(t, 1, d)

	d, ok = v.GradeDifference("4", "3")
	assert.True(t, ok)
	assert.Equal(t, -1, d)

	_, ok = v.GradeDifference("4", "")
	assert.False(t, ok)
}

func TestCognitiveDifference(t *testing.T) {
	v := newTestVocabulary()

	d, ok := v.CognitiveDifference("understand", "analyze")
	assert.True(t, ok)
	assert.Equal(t, 2, d)

	_, ok = v.CognitiveDifference("understand", "memorize")
	assert.False(t, ok)
}

func TestComplexitySimilarity(t *testing.T) {
	v := newTestVocabulary()

	assert.Equal(t, 1.0, v.ComplexitySimilarity("moderate", "moderate"))
	assert.InDelta(t, 0.5, v.ComplexitySimilarity("simple", "moderate"), 1e-9)
	assert.Equal(t, 0.0, v.ComplexitySimilarity("simple", "complex"))
	assert.Equal(t, 0.0, v.ComplexitySimilarity("simple", "unknown"))
	assert.Equal(t, 0.0, v.ComplexitySimilarity("", "simple"))
}

func TestComplexitySimilarity_SingleEntryVocabulary(t *testing.T) {
	cfg := config.Default().Vocabulary
	cfg.ComplexityOrder = []string{"only"}
	v := NewVocabulary(cfg)

	assert.Equal(t, 0.0, v.ComplexitySimilarity("only", "only"))
}

func TestSupportCompatibility(t *testing.T) {
	v := newTestVocabulary()

	assert.Equal(t, 1.0, v.SupportCompatibility("with_support", "with_support"))
	assert.Equal(t, 0.7, v.SupportCompatibility("with_support", "with_prompting"))
	assert.Equal(t, 0.7, v.SupportCompatibility("independent", "Without Support"))
	assert.Equal(t, 0.0, v.SupportCompatibility("with_support", "independent"))
	assert.Equal(t, 0.5, v.SupportCompatibility("", "independent"))
	assert.Equal(t, 0.5, v.SupportCompatibility("", ""))
	assert.Equal(t, 0.5, v.SupportCompatibility("with_support", "peer_assisted"))
}
