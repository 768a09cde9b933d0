// Package similarity computes the four-dimensional similarity of two skill records.
package similarity

import "github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"

// Jaccard returns |A∩B| / |A∪B|. It is 0 when either set is empty, so missing
// metadata is never rewarded as a perfect match.
func Jaccard(a, b types.StringSet) float64 {
	if a.IsEmpty() || b.IsEmpty() {
		return 0.0
	}
	inter := a.Intersect(b).Len()
	if inter == 0 {
		return 0.0
	}
	union := a.Len() + b.Len() - inter
	return float64(inter) / float64(union)
}

// weightedAverage returns Σ(w·x)/Σw, or 0 when every weight is zero.
func weightedAverage(values, weights []float64) float64 {
	total := 0.0
	sum := 0.0
	for i := range values {
		total += weights[i]
		sum += weights[i] * values[i]
	}
	if total <= 0 {
		return 0.0
	}
	return clamp01(sum / total)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func binaryMatch(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}
	return 0.0
}
