package embedding

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = s.vectors[t]
	}
	return out, nil
}

func record(id, name string) types.SkillRecord {
	return types.NewSkillRecord(types.RecordFields{ID: id, Name: name})
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.True(t, math.IsNaN(Cosine([]float32{0, 0}, []float32{1, 0})))
	assert.True(t, math.IsNaN(Cosine([]float32{1}, []float32{1, 0})))
}

func TestRecordText(t *testing.T) {
	r := types.NewSkillRecord(types.RecordFields{
		ID:          "a",
		Name:        "Main idea",
		ActionVerbs: types.NewStringSet("identify", "determine"),
		TargetNouns: types.NewStringSet("main idea"),
	})
	assert.Equal(t, "Main idea. determine, identify. main idea", RecordText(r))
	assert.Equal(t, "b", RecordText(record("b", "")))
}

func TestBuildMatrix(t *testing.T) {
	records := []types.SkillRecord{record("a", "A"), record("b", "B"), record("c", "C"), record("z", "Z")}
	e := stubEmbedder{vectors: map[string][]float32{
		"A": {1, 0},
		"B": {1, 1},
		"C": {-1, 0},
		"Z": {0, 0},
	}}

	m, err := BuildMatrix(context.Background(), e, records)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "z"}, m.IDs)
	assert.InDelta(t, 1.0, m.Values[0][0], 1e-9)
	assert.InDelta(t, math.Sqrt(0.5), m.Values[0][1], 1e-6)
	assert.Equal(t, m.Values[0][1], m.Values[1][0])
	assert.Equal(t, 0.0, m.Values[0][2], "negative cosine clamps to zero")
	assert.True(t, math.IsNaN(m.Values[0][3]))

	src, err := m.Source()
	require.NoError(t, err)
	_, ok := src.SemanticSimilarity("a", "z")
	assert.False(t, ok)
	v, ok := src.SemanticSimilarity("b", "a")
	assert.True(t, ok)
	assert.InDelta(t, math.Sqrt(0.5), v, 1e-6)
}

func TestBuildMatrix_EmbedderError(t *testing.T) {
	_, err := BuildMatrix(context.Background(), stubEmbedder{err: errors.New("quota")}, []types.SkillRecord{record("a", "A")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestBatches(t *testing.T) {
	assert.Equal(t, []span{{0, 100}, {100, 200}, {200, 250}}, batches(250, 100))
	assert.Empty(t, batches(0, 100))
	assert.Equal(t, []span{{0, 3}}, batches(3, 0))
}

func TestNewGeminiEmbedder_RequiresKey(t *testing.T) {
	_, err := NewGeminiEmbedder(context.Background(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}
