// Package types provides type definitions for structured data used throughout the skill redundancy system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// StringSet is an immutable, case-insensitive set of trimmed strings.
// Values are stored lower-cased and sorted so two sets built from the same
// members in any order compare equal.
type StringSet struct {
	values []string
}

// NewStringSet builds a set from raw values, dropping empties and duplicates.
func NewStringSet(values ...string) StringSet {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		n := normalizeValue(v)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return StringSet{values: out}
}

// ParseSet parses a pipe- or comma-delimited field into a set.
// "a|b, c" yields {a, b, c}.
func ParseSet(raw string) StringSet {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '|' || r == ',' || r == ';'
	})
	return NewStringSet(parts...)
}

// Len returns the number of members.
func (s StringSet) Len() int { return len(s.values) }

// IsEmpty reports whether the set has no members.
func (s StringSet) IsEmpty() bool { return len(s.values) == 0 }

// Contains reports membership using the same normalization as construction.
func (s StringSet) Contains(v string) bool {
	n := normalizeValue(v)
	i := sort.SearchStrings(s.values, n)
	return i < len(s.values) && s.values[i] == n
}

// Values returns a copy of the members in sorted order.
func (s StringSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Intersect returns the members present in both sets.
func (s StringSet) Intersect(other StringSet) StringSet {
	out := make([]string, 0)
	for _, v := range s.values {
		if other.Contains(v) {
			out = append(out, v)
		}
	}
	return StringSet{values: out}
}

// Union returns the members present in either set.
func (s StringSet) Union(other StringSet) StringSet {
	return NewStringSet(append(s.Values(), other.values...)...)
}

// Equal reports whether both sets have exactly the same members.
func (s StringSet) Equal(other StringSet) bool {
	if len(s.values) != len(other.values) {
		return false
	}
	for i := range s.values {
		if s.values[i] != other.values[i] {
			return false
		}
	}
	return true
}

// String renders the set pipe-delimited, matching the tabular input format.
func (s StringSet) String() string {
	return strings.Join(s.values, "|")
}

// MarshalJSON encodes the set as a sorted JSON array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	if s.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.values)
}

// UnmarshalJSON accepts either a JSON array of strings or a single delimited string.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = NewStringSet(list...)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("string set must be an array or a delimited string: %w", err)
	}
	*s = ParseSet(raw)
	return nil
}

func normalizeValue(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// RecordFields is the loosely structured input used to build a SkillRecord.
// Every field is optional except ID; absent set fields become empty sets and
// absent scalars become empty strings.
type RecordFields struct {
	ID              string    `json:"skill_id"`
	Name            string    `json:"skill_name"`
	Description     string    `json:"description,omitempty"`
	ActionVerbs     StringSet `json:"action_verbs"`
	TargetNouns     StringSet `json:"target_nouns"`
	KeyConcepts     StringSet `json:"key_concepts"`
	TextTypes       StringSet `json:"text_types"`
	CognitiveDemand string    `json:"cognitive_demand,omitempty"`
	TaskComplexity  string    `json:"task_complexity,omitempty"`
	SkillDomain     string    `json:"skill_domain,omitempty"`
	Scope           string    `json:"scope,omitempty"`
	SupportLevel    string    `json:"support_level,omitempty"`
	TextMode        string    `json:"text_mode,omitempty"`
	ComplexityBand  string    `json:"complexity_band,omitempty"`
	GradeLevel      string    `json:"grade_level,omitempty"`
	ConfidenceLabel string    `json:"confidence,omitempty"`
}

// SkillRecord is one educational competency with its structured metadata.
// Records are created once by NewSkillRecord and never modified afterwards.
type SkillRecord struct {
	ID              string    `json:"skill_id"`
	Name            string    `json:"skill_name"`
	Description     string    `json:"description,omitempty"`
	ActionVerbs     StringSet `json:"action_verbs"`
	TargetNouns     StringSet `json:"target_nouns"`
	KeyConcepts     StringSet `json:"key_concepts"`
	TextTypes       StringSet `json:"text_types"`
	CognitiveDemand string    `json:"cognitive_demand,omitempty"`
	TaskComplexity  string    `json:"task_complexity,omitempty"`
	SkillDomain     string    `json:"skill_domain,omitempty"`
	Scope           string    `json:"scope,omitempty"`
	SupportLevel    string    `json:"support_level,omitempty"`
	TextMode        string    `json:"text_mode,omitempty"`
	ComplexityBand  string    `json:"complexity_band,omitempty"`
	GradeLevel      string    `json:"grade_level,omitempty"`
	ConfidenceLabel string    `json:"confidence,omitempty"`
}

// NewSkillRecord normalizes the given fields into a SkillRecord.
// Identifier and display name keep their original casing; categorical
// attributes are lower-cased so comparisons are case-insensitive.
func NewSkillRecord(f RecordFields) SkillRecord {
	return SkillRecord{
		ID:              strings.TrimSpace(f.ID),
		Name:            strings.TrimSpace(f.Name),
		Description:     strings.TrimSpace(f.Description),
		ActionVerbs:     NewStringSet(f.ActionVerbs.values...),
		TargetNouns:     NewStringSet(f.TargetNouns.values...),
		KeyConcepts:     NewStringSet(f.KeyConcepts.values...),
		TextTypes:       NewStringSet(f.TextTypes.values...),
		CognitiveDemand: normalizeCategory(f.CognitiveDemand),
		TaskComplexity:  normalizeCategory(f.TaskComplexity),
		SkillDomain:     normalizeCategory(f.SkillDomain),
		Scope:           normalizeCategory(f.Scope),
		SupportLevel:    normalizeCategory(f.SupportLevel),
		TextMode:        normalizeCategory(f.TextMode),
		ComplexityBand:  normalizeCategory(f.ComplexityBand),
		GradeLevel:      normalizeCategory(f.GradeLevel),
		ConfidenceLabel: normalizeCategory(f.ConfidenceLabel),
	}
}

// normalizeCategory lower-cases and collapses inner whitespace to underscores,
// so "With Support" and "with_support" are the same category.
func normalizeCategory(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return ""
	}
	return strings.Join(strings.Fields(v), "_")
}

// DisplayName returns the record name, falling back to its id.
func (r SkillRecord) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// SpecificationFields returns the specification attributes that distinguish
// variants of the same underlying skill, keyed by field name.
func (r SkillRecord) SpecificationFields() map[string]string {
	return map[string]string{
		"support_level":   r.SupportLevel,
		"text_type":       r.TextTypes.String(),
		"complexity_band": r.ComplexityBand,
		"scope":           r.Scope,
		"text_mode":       r.TextMode,
	}
}

// SpecificationFieldOrder is the fixed order specification fields are compared in.
var SpecificationFieldOrder = []string{"support_level", "text_type", "complexity_band", "scope", "text_mode"}
