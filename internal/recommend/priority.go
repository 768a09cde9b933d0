package recommend

import (
	"fmt"
	"math"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

// Corpus is optional corpus-wide context used for impact estimation.
type Corpus struct {
	// Usage maps skill id to how often the skill is used (e.g. tagged items).
	Usage map[string]int
}

func (c *Corpus) maxUsage() int {
	if c == nil {
		return 0
	}
	m := 0
	for _, n := range c.Usage {
		if n > m {
			m = n
		}
	}
	return m
}

// Impact estimates the effect of acting on a pair. Without usage data for
// either record it returns the configured neutral score.
func (e *Engine) Impact(a, b types.SkillRecord, corpus *Corpus) types.Impact {
	if corpus == nil || len(corpus.Usage) == 0 {
		return e.neutralImpact("no usage data available")
	}
	ua, okA := corpus.Usage[a.ID]
	ub, okB := corpus.Usage[b.ID]
	if !okA && !okB {
		return e.neutralImpact("no usage data for either skill")
	}

	affected := ua + ub
	maxUsage := corpus.maxUsage()
	score := 0.0
	if maxUsage > 0 {
		score = math.Min(1, float64(affected)/float64(2*maxUsage))
	}
	return types.Impact{
		Score:         score,
		Basis:         "usage",
		AffectedUsage: affected,
		Description:   fmt.Sprintf("%d uses across both skills", affected),
	}
}

func (e *Engine) neutralImpact(reason string) types.Impact {
	return types.Impact{
		Score:       e.priority.NeutralImpact,
		Basis:       "neutral",
		Description: reason,
	}
}

// PriorityScore combines classifier confidence, impact, taxonomy importance
// and data-quality concern using the configured priority weights.
func (e *Engine) PriorityScore(t types.RelationshipType, confidence, impact float64) float64 {
	w := e.priority.Weights
	s := w.Confidence*confidence +
		w.Impact*impact +
		w.Importance*e.priority.Importance[t] +
		w.QualityConcern*e.priority.QualityConcern[t]
	return math.Max(0, math.Min(1, s))
}

// Bucket maps a priority score to the first bucket whose threshold it meets.
func (e *Engine) Bucket(score float64) types.PriorityBucket {
	b := e.priority.Buckets
	switch {
	case score >= b.P0:
		return types.PriorityP0
	case score >= b.P1:
		return types.PriorityP1
	case score >= b.P2:
		return types.PriorityP2
	}
	return types.PriorityP3
}
