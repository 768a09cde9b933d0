// Package embedding builds semantic similarity matrices from text embeddings.
// It runs before analysis; the analysis pipeline only sees the finished matrix.
package embedding

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/similarity"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

// Embedder turns texts into vectors, one per text and in the same order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// RecordText is the text embedded for a record: its name, description and
// structured terms.
func RecordText(r types.SkillRecord) string {
	parts := []string{r.DisplayName()}
	if r.Description != "" {
		parts = append(parts, r.Description)
	}
	for _, set := range []types.StringSet{r.ActionVerbs, r.TargetNouns, r.KeyConcepts} {
		if !set.IsEmpty() {
			parts = append(parts, strings.Join(set.Values(), ", "))
		}
	}
	return strings.Join(parts, ". ")
}

// Matrix is a pairwise semantic similarity matrix and the record ids
// labelling its rows and columns.
type Matrix struct {
	IDs    []string
	Values [][]float64
}

// Source binds the matrix to its ids for lookups.
func (m Matrix) Source() (*similarity.MatrixSource, error) {
	return similarity.NewMatrixSource(m.IDs, m.Values)
}

// BuildMatrix embeds every record and returns the pairwise cosine
// similarities, clamped to [0,1]. Pairs involving a zero vector are NaN.
func BuildMatrix(ctx context.Context, e Embedder, records []types.SkillRecord) (Matrix, error) {
	texts := make([]string, len(records))
	ids := make([]string, len(records))
	for i, r := range records {
		texts[i] = RecordText(r)
		ids[i] = r.ID
	}

	vectors, err := e.Embed(ctx, texts)
	if err != nil {
		return Matrix{}, fmt.Errorf("failed to embed records: %w", err)
	}
	if len(vectors) != len(records) {
		return Matrix{}, fmt.Errorf("embedder returned %d vectors for %d records", len(vectors), len(records))
	}

	values := make([][]float64, len(records))
	for i := range values {
		values[i] = make([]float64, len(records))
	}
	for i := range vectors {
		for j := i; j < len(vectors); j++ {
			v := Cosine(vectors[i], vectors[j])
			if !math.IsNaN(v) {
				v = math.Max(0, math.Min(1, v))
			}
			values[i][j] = v
			values[j][i] = v
		}
	}
	return Matrix{IDs: ids, Values: values}, nil
}

// Cosine returns the cosine similarity of a and b, or NaN when the vectors
// differ in length or either has zero magnitude.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.NaN()
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return math.NaN()
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
