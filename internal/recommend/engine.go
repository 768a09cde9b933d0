// Package recommend turns classified skill relationships into prioritized,
// actionable recommendations.
package recommend

import (
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/classify"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/config"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

var recommendationNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("skill-redundancy/recommendation"))

// Engine produces recommendations. It holds only immutable configuration
// and is safe for concurrent use.
type Engine struct {
	priority config.Priority
}

// NewEngine builds a recommendation engine from cfg. cfg is copied.
func NewEngine(cfg config.Config) *Engine {
	cfg = cfg.Clone()
	return &Engine{priority: cfg.Priority}
}

// Recommend selects an action for rel, scores its priority and writes the
// rationale and steps. a and b must be the records rel was classified from.
// corpus may be nil.
func (e *Engine) Recommend(rel types.SkillRelationship, a, b types.SkillRecord, corpus *Corpus) types.Recommendation {
	rec := types.Recommendation{
		ID:               recommendationNamespaceID(rel.ID),
		RelationshipID:   rel.ID,
		SkillAID:         rel.SkillAID,
		SkillBID:         rel.SkillBID,
		SkillAName:       rel.SkillAName,
		SkillBName:       rel.SkillBName,
		RelationshipType: rel.Type,
		Confidence:       rel.Confidence,
	}

	switch rel.Type {
	case types.Distinct:
		rec.Action = types.ActionNoAction
		rec.Priority = types.PriorityP3
		rec.Rationale = "Skills are distinct; no action needed."
		rec.Steps = []string{}
		rec.Impact = types.Impact{Negligible: true}
		return rec
	case types.TrueDuplicate:
		e.trueDuplicate(&rec, a, b)
	case types.SpecificationVariant:
		e.specificationVariant(&rec, rel, a, b)
	case types.Prerequisite:
		e.prerequisite(&rec, rel, a, b)
	case types.Progression:
		e.progression(&rec, rel, a, b)
	case types.Complementary:
		rec.Action = types.ActionCaptureRelationship
		rec.Rationale = fmt.Sprintf("%q and %q are related skills that are taught together.", a.DisplayName(), b.DisplayName())
		rec.Steps = []string{
			fmt.Sprintf("Link %s and %s as related skills", a.ID, b.ID),
			"Review whether instructional materials should reference both",
		}
	case types.Ambiguous:
		rec.Action = types.ActionHumanReview
		rec.Confidence = e.priority.AmbiguousConfidence
		rec.Rationale = "Skills are similar but match no specific relationship pattern; a reviewer should decide."
		rec.Steps = []string{
			fmt.Sprintf("Compare %s and %s side by side", a.ID, b.ID),
			"Record the relationship type decided by the reviewer",
		}
	default:
		rec.Action = types.ActionKeepBoth
		rec.Rationale = fmt.Sprintf("Unrecognized relationship type %q; both skills are kept.", rel.Type)
		rec.Steps = []string{}
	}

	rec.Impact = e.Impact(a, b, corpus)
	rec.PriorityScore = e.PriorityScore(rel.Type, rec.Confidence, rec.Impact.Score)
	rec.Priority = e.Bucket(rec.PriorityScore)
	return rec
}

func (e *Engine) trueDuplicate(rec *types.Recommendation, a, b types.SkillRecord) {
	q := CompareQuality(a, b)
	rec.QualityComparison = &q

	if q.Gap > e.priority.MergeQualityGap {
		keep, retire := a, b
		if q.PreferredID == b.ID {
			keep, retire = b, a
		}
		rec.Action = types.ActionMerge
		rec.KeepID = keep.ID
		rec.RetireID = retire.ID
		rec.Rationale = fmt.Sprintf("Skills are duplicates; %q has clearly better metadata (quality %.2f vs %.2f).",
			keep.DisplayName(), max(q.ScoreA, q.ScoreB), min(q.ScoreA, q.ScoreB))
		rec.Steps = []string{
			fmt.Sprintf("Keep %s as the canonical skill", keep.ID),
			fmt.Sprintf("Re-tag content aligned to %s with %s", retire.ID, keep.ID),
			fmt.Sprintf("Retire %s", retire.ID),
		}
		return
	}

	name := MergedName(a, b)
	rec.Action = types.ActionCreateBaseSkill
	rec.SuggestedName = name
	rec.Rationale = fmt.Sprintf("Skills are duplicates of similar quality (gap %.2f); combine them into one base skill.", q.Gap)
	rec.Steps = []string{
		fmt.Sprintf("Create base skill %q", name),
		fmt.Sprintf("Map %s and %s to the new base skill", a.ID, b.ID),
		"Retire the original skills once content is re-tagged",
	}
}

func (e *Engine) specificationVariant(rec *types.Recommendation, rel types.SkillRelationship, a, b types.SkillRecord) {
	diffs := rel.SpecificationDifferences
	if len(diffs) == 0 {
		diffs = classify.SpecificationDifferences(a, b)
	}
	rec.SpecificationDifferences = maps.Clone(diffs)

	fields := make([]string, 0, len(diffs))
	details := make([]string, 0, len(diffs))
	for _, field := range types.SpecificationFieldOrder {
		d, ok := diffs[field]
		if !ok {
			continue
		}
		fields = append(fields, field)
		details = append(details, fmt.Sprintf("%s (%s vs %s)", field, d.A, d.B))
	}

	name := MergedName(a, b)
	rec.Action = types.ActionCreateBaseSkill
	rec.SuggestedName = name
	rec.Rationale = fmt.Sprintf("Same underlying skill with different specifications: %s.", strings.Join(details, ", "))
	rec.Steps = []string{
		fmt.Sprintf("Create base skill %q", name),
		fmt.Sprintf("Model %s as specifications of the base skill", strings.Join(fields, ", ")),
		fmt.Sprintf("Attach %s and %s as variants", a.ID, b.ID),
	}
}

func (e *Engine) prerequisite(rec *types.Recommendation, rel types.SkillRelationship, a, b types.SkillRecord) {
	pre, dep := a, b
	if rel.GradeDifference != nil && *rel.GradeDifference < 0 {
		pre, dep = b, a
	}
	rec.Action = types.ActionCaptureDependency
	rec.PrerequisiteID = pre.ID
	rec.DependentID = dep.ID
	rec.Rationale = fmt.Sprintf("%q (grade %s) builds toward %q (grade %s).",
		pre.DisplayName(), pre.GradeLevel, dep.DisplayName(), dep.GradeLevel)
	rec.Steps = []string{
		fmt.Sprintf("Record %s as a prerequisite of %s", pre.ID, dep.ID),
		"Check that sequencing in curriculum maps follows the dependency",
	}
}

func (e *Engine) progression(rec *types.Recommendation, rel types.SkillRelationship, a, b types.SkillRecord) {
	low, high := a, b
	if rel.GradeDifference != nil && *rel.GradeDifference < 0 {
		low, high = b, a
	}
	rec.Action = types.ActionCreateProgression
	rec.GradeSpan = fmt.Sprintf("%s-%s", low.GradeLevel, high.GradeLevel)
	rec.Rationale = fmt.Sprintf("%q develops into %q across grades %s.", low.DisplayName(), high.DisplayName(), rec.GradeSpan)
	rec.Steps = []string{
		fmt.Sprintf("Create a progression spanning grades %s", rec.GradeSpan),
		fmt.Sprintf("Place %s at grade %s and %s at grade %s", low.ID, low.GradeLevel, high.ID, high.GradeLevel),
		"Identify intermediate skills for the grades in between",
	}
}

// recommendationNamespaceID derives a stable recommendation id from its relationship id.
func recommendationNamespaceID(relationshipID string) string {
	return uuid.NewSHA1(recommendationNamespace, []byte(relationshipID)).String()
}
