package classify

import (
	"math"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

// Confidence adjusts a rule's base confidence by how consistent the four
// similarity dimensions are, how far the composite clears the rule's band,
// and how complete both records' metadata is. The result is in [0,1].
func Confidence(base float64, score types.SimilarityScore, margin float64, a, b types.SkillRecord) float64 {
	c := base

	agreement := DimensionAgreement(score)
	switch {
	case agreement > 0.8:
		c *= 1.1
	case agreement < 0.5:
		c *= 0.8
	}

	switch {
	case margin > 0.15:
		c *= 1.05
	case margin < 0.05:
		c *= 0.9
	}

	c *= (Completeness(a) + Completeness(b)) / 2
	return math.Max(0, math.Min(1, c))
}

// DimensionAgreement is max(0, 1 - 2*stdev) over the four dimension scores,
// using the population standard deviation.
func DimensionAgreement(score types.SimilarityScore) float64 {
	dims := score.Dimensions()

	var mean float64
	for _, d := range dims {
		mean += d
	}
	mean /= float64(len(dims))

	var variance float64
	for _, d := range dims {
		variance += (d - mean) * (d - mean)
	}
	variance /= float64(len(dims))

	return math.Max(0, 1-2*math.Sqrt(variance))
}

// Completeness is the fraction of the eight core metadata fields that are
// populated on r.
func Completeness(r types.SkillRecord) float64 {
	present := []bool{
		!r.ActionVerbs.IsEmpty(),
		!r.TargetNouns.IsEmpty(),
		!r.KeyConcepts.IsEmpty(),
		r.CognitiveDemand != "",
		r.TaskComplexity != "",
		r.SkillDomain != "",
		r.SupportLevel != "",
		r.GradeLevel != "",
	}

	n := 0
	for _, ok := range present {
		if ok {
			n++
		}
	}
	return float64(n) / float64(len(present))
}
