// Package types provides type definitions for structured data used throughout the skill redundancy system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ActionType is the closed set of actions a recommendation can carry.
type ActionType string

// Recommended actions.
const (
	ActionMerge               ActionType = "MERGE"
	ActionCreateBaseSkill     ActionType = "CREATE_BASE_SKILL"
	ActionCaptureDependency   ActionType = "CAPTURE_DEPENDENCY"
	ActionCreateProgression   ActionType = "CREATE_PROGRESSION"
	ActionCaptureRelationship ActionType = "CAPTURE_RELATIONSHIP"
	ActionHumanReview         ActionType = "HUMAN_REVIEW"
	ActionNoAction            ActionType = "NO_ACTION"
	ActionKeepBoth            ActionType = "KEEP_BOTH"
)

// AllActionTypes lists every action type.
func AllActionTypes() []ActionType {
	return []ActionType{
		ActionMerge,
		ActionCreateBaseSkill,
		ActionCaptureDependency,
		ActionCreateProgression,
		ActionCaptureRelationship,
		ActionHumanReview,
		ActionNoAction,
		ActionKeepBoth,
	}
}

// Valid reports whether a is one of the known action types.
func (a ActionType) Valid() bool {
	switch a {
	case ActionMerge, ActionCreateBaseSkill, ActionCaptureDependency, ActionCreateProgression,
		ActionCaptureRelationship, ActionHumanReview, ActionNoAction, ActionKeepBoth:
		return true
	}
	return false
}

// UnmarshalJSON rejects action types outside the closed set.
func (a *ActionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := ActionType(s)
	if !v.Valid() {
		return fmt.Errorf("unknown action type %q", s)
	}
	*a = v
	return nil
}

// PriorityBucket is a coarse P0-P3 ranking used to order review work.
type PriorityBucket string

// Priority buckets, highest first.
const (
	PriorityP0 PriorityBucket = "P0"
	PriorityP1 PriorityBucket = "P1"
	PriorityP2 PriorityBucket = "P2"
	PriorityP3 PriorityBucket = "P3"
)

// AllPriorityBuckets lists the buckets from highest to lowest.
func AllPriorityBuckets() []PriorityBucket {
	return []PriorityBucket{PriorityP0, PriorityP1, PriorityP2, PriorityP3}
}

// Valid reports whether p is one of the known buckets.
func (p PriorityBucket) Valid() bool {
	switch p {
	case PriorityP0, PriorityP1, PriorityP2, PriorityP3:
		return true
	}
	return false
}

// UnmarshalJSON rejects buckets outside the closed set.
func (p *PriorityBucket) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := PriorityBucket(s)
	if !v.Valid() {
		return fmt.Errorf("unknown priority bucket %q", s)
	}
	*p = v
	return nil
}

// Impact describes the estimated effect of acting on a recommendation.
type Impact struct {
	Score         float64 `json:"score"`
	Basis         string  `json:"basis"`
	AffectedUsage int     `json:"affected_usage"`
	Negligible    bool    `json:"negligible"`
	Description   string  `json:"description,omitempty"`
}

// QualityComparison compares the metadata quality of the two records.
type QualityComparison struct {
	ScoreA      float64 `json:"score_a"`
	ScoreB      float64 `json:"score_b"`
	Gap         float64 `json:"gap"`
	PreferredID string  `json:"preferred_id"`
}

// Recommendation is the actionable outcome of one classified relationship.
type Recommendation struct {
	ID                       string                     `json:"recommendation_id"`
	RelationshipID           string                     `json:"relationship_id"`
	SkillAID                 string                     `json:"skill_a_id"`
	SkillBID                 string                     `json:"skill_b_id"`
	SkillAName               string                     `json:"skill_a_name"`
	SkillBName               string                     `json:"skill_b_name"`
	RelationshipType         RelationshipType           `json:"relationship_type"`
	Action                   ActionType                 `json:"action"`
	Priority                 PriorityBucket             `json:"priority"`
	PriorityScore            float64                    `json:"priority_score"`
	Confidence               float64                    `json:"confidence"`
	Rationale                string                     `json:"rationale"`
	Steps                    []string                   `json:"steps"`
	Impact                   Impact                     `json:"impact"`
	QualityComparison        *QualityComparison         `json:"quality_comparison,omitempty"`
	SuggestedName            string                     `json:"suggested_name,omitempty"`
	KeepID                   string                     `json:"keep_id,omitempty"`
	RetireID                 string                     `json:"retire_id,omitempty"`
	PrerequisiteID           string                     `json:"prerequisite_id,omitempty"`
	DependentID              string                     `json:"dependent_id,omitempty"`
	GradeSpan                string                     `json:"grade_span,omitempty"`
	SpecificationDifferences map[string]FieldDifference `json:"specification_differences,omitempty"`
}

// Flatten returns a flat field-for-field map suitable for tabular export.
func (r Recommendation) Flatten() map[string]any {
	row := map[string]any{
		"recommendation_id":    r.ID,
		"relationship_id":      r.RelationshipID,
		"skill_a_id":           r.SkillAID,
		"skill_b_id":           r.SkillBID,
		"skill_a_name":         r.SkillAName,
		"skill_b_name":         r.SkillBName,
		"relationship_type":    string(r.RelationshipType),
		"action":               string(r.Action),
		"priority":             string(r.Priority),
		"priority_score":       r.PriorityScore,
		"confidence":           r.Confidence,
		"rationale":            r.Rationale,
		"steps":                strings.Join(r.Steps, " | "),
		"impact_score":         r.Impact.Score,
		"impact_basis":         r.Impact.Basis,
		"suggested_name":       r.SuggestedName,
		"keep_id":              r.KeepID,
		"retire_id":            r.RetireID,
		"prerequisite_id":      r.PrerequisiteID,
		"dependent_id":         r.DependentID,
		"grade_span":           r.GradeSpan,
		"specification_fields": joinKeys(r.SpecificationDifferences),
		"quality_gap":          "",
	}
	if r.QualityComparison != nil {
		row["quality_gap"] = r.QualityComparison.Gap
	}
	return row
}

// RecommendationColumns is the stable column order for tabular recommendation export.
var RecommendationColumns = []string{
	"recommendation_id", "relationship_id", "skill_a_id", "skill_b_id", "skill_a_name", "skill_b_name",
	"relationship_type", "action", "priority", "priority_score", "confidence", "rationale", "steps",
	"impact_score", "impact_basis", "suggested_name", "keep_id", "retire_id",
	"prerequisite_id", "dependent_id", "grade_span", "specification_fields", "quality_gap",
}
