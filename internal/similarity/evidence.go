package similarity

import (
	"fmt"
	"strings"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

// evidence describes what the two records share. It reads the finished score
// and never feeds back into it.
func (e *Engine) evidence(a, b types.SkillRecord, s types.SimilarityScore) []string {
	var parts []string

	if shared := a.ActionVerbs.Intersect(b.ActionVerbs); !shared.IsEmpty() {
		parts = append(parts, fmt.Sprintf("matching actions: %s", strings.Join(shared.Values(), ", ")))
	}
	if shared := a.TargetNouns.Intersect(b.TargetNouns); !shared.IsEmpty() {
		parts = append(parts, fmt.Sprintf("matching targets: %s", strings.Join(shared.Values(), ", ")))
	}
	if shared := a.KeyConcepts.Intersect(b.KeyConcepts); !shared.IsEmpty() {
		parts = append(parts, fmt.Sprintf("shared concepts: %s", strings.Join(shared.Values(), ", ")))
	}

	if s.EducationalComponents.CognitiveMatch == 1 {
		parts = append(parts, fmt.Sprintf("same cognitive demand: %s", a.CognitiveDemand))
	} else if a.CognitiveDemand != "" && b.CognitiveDemand != "" {
		parts = append(parts, fmt.Sprintf("cognitive demand: %s vs %s", a.CognitiveDemand, b.CognitiveDemand))
	}
	if s.EducationalComponents.DomainMatch == 1 {
		parts = append(parts, fmt.Sprintf("same domain: %s", a.SkillDomain))
	}

	switch {
	case a.GradeLevel == "" || b.GradeLevel == "":
		parts = append(parts, "grade level missing on at least one skill")
	case s.ContextualComponents.GradeCompatibility == 1:
		parts = append(parts, fmt.Sprintf("same grade: %s", a.GradeLevel))
	default:
		parts = append(parts, fmt.Sprintf("grades: %s vs %s", a.GradeLevel, b.GradeLevel))
	}

	if a.SupportLevel != b.SupportLevel && a.SupportLevel != "" && b.SupportLevel != "" {
		parts = append(parts, fmt.Sprintf("support levels: %s vs %s", a.SupportLevel, b.SupportLevel))
	}

	if s.SemanticProvided {
		parts = append(parts, fmt.Sprintf("semantic similarity: %.2f", s.Semantic))
	} else {
		parts = append(parts, "no semantic similarity supplied")
	}

	if s.BoostFactor > 1 {
		parts = append(parts, fmt.Sprintf("composite boosted by %.0f%%", (s.BoostFactor-1)*100))
	}

	return parts
}
