// Package types provides type definitions for structured data used throughout the skill redundancy system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// RelationshipType is the closed set of relationships two skills can have.
type RelationshipType string

// Relationship types, in classification priority order.
const (
	TrueDuplicate        RelationshipType = "TRUE_DUPLICATE"
	SpecificationVariant RelationshipType = "SPECIFICATION_VARIANT"
	Prerequisite         RelationshipType = "PREREQUISITE"
	Progression          RelationshipType = "PROGRESSION"
	Complementary        RelationshipType = "COMPLEMENTARY"
	Ambiguous            RelationshipType = "AMBIGUOUS"
	Distinct             RelationshipType = "DISTINCT"
)

// AllRelationshipTypes lists every relationship type in priority order.
func AllRelationshipTypes() []RelationshipType {
	return []RelationshipType{
		TrueDuplicate,
		SpecificationVariant,
		Prerequisite,
		Progression,
		Complementary,
		Ambiguous,
		Distinct,
	}
}

// Valid reports whether t is one of the known relationship types.
func (t RelationshipType) Valid() bool {
	switch t {
	case TrueDuplicate, SpecificationVariant, Prerequisite, Progression, Complementary, Ambiguous, Distinct:
		return true
	}
	return false
}

// UnmarshalJSON rejects relationship types outside the closed set.
func (t *RelationshipType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := RelationshipType(s)
	if !v.Valid() {
		return fmt.Errorf("unknown relationship type %q", s)
	}
	*t = v
	return nil
}

// FieldDifference holds the two values of one specification field.
type FieldDifference struct {
	A string `json:"a"`
	B string `json:"b"`
}

// SkillRelationship is the classified relationship between two skills.
// It is derived from exactly one SimilarityScore and never mutated.
type SkillRelationship struct {
	ID                       string                     `json:"relationship_id"`
	SkillAID                 string                     `json:"skill_a_id"`
	SkillBID                 string                     `json:"skill_b_id"`
	SkillAName               string                     `json:"skill_a_name"`
	SkillBName               string                     `json:"skill_b_name"`
	Type                     RelationshipType           `json:"relationship_type"`
	Confidence               float64                    `json:"confidence"`
	Rule                     string                     `json:"rule"`
	Scores                   SimilarityScore            `json:"scores"`
	Evidence                 []string                   `json:"evidence"`
	SpecificationDifferences map[string]FieldDifference `json:"specification_differences,omitempty"`
	// GradeDifference is grade(B) - grade(A); nil when either grade is unmapped.
	GradeDifference *int `json:"grade_difference,omitempty"`
	// CognitiveDifference is demand(B) - demand(A); nil when either label is unmapped.
	CognitiveDifference *int `json:"cognitive_difference,omitempty"`
}

// Flatten returns a flat field-for-field map suitable for tabular export.
func (r SkillRelationship) Flatten() map[string]any {
	row := map[string]any{
		"relationship_id":      r.ID,
		"skill_a_id":           r.SkillAID,
		"skill_b_id":           r.SkillBID,
		"skill_a_name":         r.SkillAName,
		"skill_b_name":         r.SkillBName,
		"relationship_type":    string(r.Type),
		"confidence":           r.Confidence,
		"rule":                 r.Rule,
		"structural_score":     r.Scores.Structural,
		"educational_score":    r.Scores.Educational,
		"semantic_score":       r.Scores.Semantic,
		"contextual_score":     r.Scores.Contextual,
		"composite_score":      r.Scores.Composite,
		"weight_profile":       r.Scores.WeightProfile,
		"evidence":             joinLines(r.Evidence),
		"specification_fields": joinKeys(r.SpecificationDifferences),
		"grade_difference":     intOrEmpty(r.GradeDifference),
		"cognitive_difference": intOrEmpty(r.CognitiveDifference),
	}
	return row
}

// RelationshipColumns is the stable column order for tabular relationship export.
var RelationshipColumns = []string{
	"relationship_id", "skill_a_id", "skill_b_id", "skill_a_name", "skill_b_name",
	"relationship_type", "confidence", "rule",
	"structural_score", "educational_score", "semantic_score", "contextual_score", "composite_score",
	"weight_profile", "evidence", "specification_fields", "grade_difference", "cognitive_difference",
}
