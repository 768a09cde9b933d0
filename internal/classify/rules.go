// Package classify assigns a relationship type, with confidence and
// evidence, to a scored pair of skill records.
package classify

import (
	"fmt"
	"strings"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/config"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

// Input is everything a rule may look at for one pair.
type Input struct {
	Score types.SimilarityScore
	A     types.SkillRecord
	B     types.SkillRecord

	// GradeDiff is grade(B) - grade(A); GradeOK is false when either grade is unmapped.
	GradeDiff int
	GradeOK   bool
	// CognitiveDiff is demand(B) - demand(A); CognitiveOK is false when either label is unmapped.
	CognitiveDiff int
	CognitiveOK   bool
}

// Outcome is what a matching rule contributes to the relationship.
type Outcome struct {
	// Margin is how far the composite sits inside the rule's band.
	Margin                   float64
	Evidence                 []string
	SpecificationDifferences map[string]types.FieldDifference
}

// Rule is one (predicate, builder) step of the ordered classification chain.
type Rule struct {
	Name           string
	Type           types.RelationshipType
	BaseConfidence float64
	Matches        func(in Input) bool
	Build          func(in Input) Outcome
}

// DefaultRuleName is reported when no rule matched and the composite-based
// fallback decided the type.
const DefaultRuleName = "default"

// Rules returns the classification chain in priority order. The first rule
// whose predicate holds decides the relationship.
func Rules(cfg config.Thresholds) []Rule {
	td := cfg.TrueDuplicate
	sv := cfg.SpecificationVariant
	pr := cfg.Prerequisite
	pg := cfg.Progression
	cm := cfg.Complementary

	return []Rule{
		{
			Name:           "true_duplicate",
			Type:           types.TrueDuplicate,
			BaseConfidence: td.Confidence,
			Matches: func(in Input) bool {
				s := in.Score
				return s.Composite >= td.Composite &&
					s.Structural >= td.Structural &&
					s.Educational >= td.Educational &&
					s.ContextualComponents.GradeCompatibility >= 0.5
			},
			Build: func(in Input) Outcome {
				return Outcome{
					Margin: in.Score.Composite - td.Composite,
					Evidence: []string{
						fmt.Sprintf("composite %.2f, structural %.2f and educational %.2f meet duplicate thresholds",
							in.Score.Composite, in.Score.Structural, in.Score.Educational),
					},
				}
			},
		},
		{
			Name:           "specification_variant",
			Type:           types.SpecificationVariant,
			BaseConfidence: sv.Confidence,
			Matches: func(in Input) bool {
				s := in.Score
				return s.Composite >= sv.Composite &&
					s.Structural >= sv.Structural &&
					s.Educational >= sv.Educational &&
					s.Contextual < sv.ContextualMax &&
					len(SpecificationDifferences(in.A, in.B)) > 0
			},
			Build: func(in Input) Outcome {
				diffs := SpecificationDifferences(in.A, in.B)
				return Outcome{
					Margin: in.Score.Composite - sv.Composite,
					Evidence: []string{
						fmt.Sprintf("same core skill with different specifications: %s", strings.Join(sortedFields(diffs), ", ")),
					},
					SpecificationDifferences: diffs,
				}
			},
		},
		{
			Name:           "prerequisite",
			Type:           types.Prerequisite,
			BaseConfidence: pr.Confidence,
			Matches: func(in Input) bool {
				s := in.Score
				return inBand(s.Composite, pr.Min, pr.Max) &&
					s.Educational >= pr.Educational &&
					in.GradeOK && abs(in.GradeDiff) == 1 &&
					in.CognitiveOK && abs(in.CognitiveDiff) <= 1
			},
			Build: func(in Input) Outcome {
				return Outcome{
					Margin: bandMargin(in.Score.Composite, pr.Min, pr.Max),
					Evidence: []string{
						fmt.Sprintf("adjacent grades (%s → %s) with cognitive demand step %+d",
							in.A.GradeLevel, in.B.GradeLevel, in.CognitiveDiff),
					},
				}
			},
		},
		{
			Name:           "progression",
			Type:           types.Progression,
			BaseConfidence: pg.Confidence,
			Matches: func(in Input) bool {
				s := in.Score
				return inBand(s.Composite, pg.Min, pg.Max) &&
					s.Structural >= pg.Structural &&
					sameDomain(in.A, in.B) &&
					in.GradeOK && abs(in.GradeDiff) >= pg.MinGradeDifference &&
					in.CognitiveOK && increasesWithGrade(in.GradeDiff, in.CognitiveDiff)
			},
			Build: func(in Input) Outcome {
				return Outcome{
					Margin: bandMargin(in.Score.Composite, pg.Min, pg.Max),
					Evidence: []string{
						fmt.Sprintf("%s skill spanning %d grades with rising cognitive demand",
							in.A.SkillDomain, abs(in.GradeDiff)),
					},
				}
			},
		},
		{
			Name:           "complementary",
			Type:           types.Complementary,
			BaseConfidence: cm.Confidence,
			Matches: func(in Input) bool {
				return inBand(in.Score.Composite, cm.Min, cm.Max) && sameDomain(in.A, in.B)
			},
			Build: func(in Input) Outcome {
				return Outcome{
					Margin:   bandMargin(in.Score.Composite, cm.Min, cm.Max),
					Evidence: []string{fmt.Sprintf("related skills in the %s domain", in.A.SkillDomain)},
				}
			},
		},
	}
}

// SpecificationDifferences lists the specification fields whose values
// differ. A field missing on either side is not counted: absence is not
// evidence of a different specification.
func SpecificationDifferences(a, b types.SkillRecord) map[string]types.FieldDifference {
	fa := a.SpecificationFields()
	fb := b.SpecificationFields()

	diffs := make(map[string]types.FieldDifference)
	for _, field := range types.SpecificationFieldOrder {
		va, vb := fa[field], fb[field]
		if va == "" || vb == "" || va == vb {
			continue
		}
		diffs[field] = types.FieldDifference{A: va, B: vb}
	}
	return diffs
}

func sortedFields(diffs map[string]types.FieldDifference) []string {
	fields := make([]string, 0, len(diffs))
	for _, field := range types.SpecificationFieldOrder {
		if _, ok := diffs[field]; ok {
			fields = append(fields, field)
		}
	}
	return fields
}

func sameDomain(a, b types.SkillRecord) bool {
	return a.SkillDomain != "" && a.SkillDomain == b.SkillDomain
}

// increasesWithGrade reports whether cognitive demand rises in the same
// direction as grade, whichever record is the higher grade.
func increasesWithGrade(gradeDiff, cognitiveDiff int) bool {
	switch {
	case gradeDiff > 0:
		return cognitiveDiff > 0
	case gradeDiff < 0:
		return cognitiveDiff < 0
	}
	return false
}

func inBand(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func bandMargin(v, lo, hi float64) float64 {
	return min(v-lo, hi-v)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
