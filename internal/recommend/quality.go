package recommend

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

// MergedNamePlaceholder is suggested when two records share no usable verb.
const MergedNamePlaceholder = "Unified Skill"

var confidenceLabelScores = map[string]float64{
	"high":   1.0,
	"medium": 0.7,
	"low":    0.3,
}

const defaultLabelScore = 0.7

// Quality scores a record's metadata on [0,1]: 40% field completeness over
// nine fields, 30% mapped confidence label and 30% name clarity.
func Quality(r types.SkillRecord) float64 {
	return 0.4*fieldCompleteness(r) + 0.3*labelScore(r.ConfidenceLabel) + 0.3*nameClarity(r.Name)
}

func fieldCompleteness(r types.SkillRecord) float64 {
	present := []bool{
		!r.ActionVerbs.IsEmpty(),
		!r.TargetNouns.IsEmpty(),
		!r.KeyConcepts.IsEmpty(),
		r.CognitiveDemand != "",
		r.TaskComplexity != "",
		r.SkillDomain != "",
		r.SupportLevel != "",
		r.GradeLevel != "",
		!r.TextTypes.IsEmpty(),
	}
	n := 0
	for _, ok := range present {
		if ok {
			n++
		}
	}
	return float64(n) / float64(len(present))
}

func labelScore(label string) float64 {
	if v, ok := confidenceLabelScores[strings.ToLower(strings.TrimSpace(label))]; ok {
		return v
	}
	return defaultLabelScore
}

// nameClarity rewards descriptive names, saturating at ten words.
func nameClarity(name string) float64 {
	return math.Min(1, float64(len(strings.Fields(name)))/10)
}

// CompareQuality scores both records and names the preferred one. Ties prefer A.
func CompareQuality(a, b types.SkillRecord) types.QualityComparison {
	qa, qb := Quality(a), Quality(b)
	preferred := a.ID
	if qb > qa {
		preferred = b.ID
	}
	return types.QualityComparison{
		ScoreA:      qa,
		ScoreB:      qb,
		Gap:         math.Abs(qa - qb),
		PreferredID: preferred,
	}
}

// MergedName suggests a name for a unified skill: a shared verb and shared
// target when both exist, otherwise the capitalized root verb, otherwise
// MergedNamePlaceholder.
func MergedName(a, b types.SkillRecord) string {
	verbs := a.ActionVerbs.Intersect(b.ActionVerbs).Values()
	nouns := a.TargetNouns.Intersect(b.TargetNouns).Values()

	if len(verbs) > 0 && len(nouns) > 0 {
		return capitalize(verbs[0]) + " " + nouns[0]
	}
	if len(verbs) > 0 {
		return capitalize(verbs[0])
	}
	if all := a.ActionVerbs.Union(b.ActionVerbs).Values(); len(all) > 0 {
		return capitalize(all[0])
	}
	return MergedNamePlaceholder
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
