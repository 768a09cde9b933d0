package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationshipType_ClosedSet(t *testing.T) {
	for _, rt := range AllRelationshipTypes() {
		assert.True(t, rt.Valid(), rt)
	}
	assert.False(t, RelationshipType("SIBLING").Valid())

	var rt RelationshipType
	require.NoError(t, json.Unmarshal([]byte(`"PROGRESSION"`), &rt))
	assert.Equal(t, Progression, rt)
	assert.ErrorContains(t, json.Unmarshal([]byte(`"SIBLING"`), &rt), "unknown relationship type")
}

func TestActionType_ClosedSet(t *testing.T) {
	assert.Len(t, AllActionTypes(), 8)
	for _, a := range AllActionTypes() {
		assert.True(t, a.Valid(), a)
	}

	var a ActionType
	require.NoError(t, json.Unmarshal([]byte(`"KEEP_BOTH"`), &a))
	assert.Equal(t, ActionKeepBoth, a)
	assert.Error(t, json.Unmarshal([]byte(`"DELETE"`), &a))
	assert.Error(t, json.Unmarshal([]byte(`3`), &a))
}

func TestPriorityBucket_ClosedSet(t *testing.T) {
	assert.Equal(t, []PriorityBucket{PriorityP0, PriorityP1, PriorityP2, PriorityP3}, AllPriorityBuckets())

	var p PriorityBucket
	require.NoError(t, json.Unmarshal([]byte(`"P3"`), &p))
	assert.Equal(t, PriorityP3, p)
	assert.ErrorContains(t, json.Unmarshal([]byte(`"P4"`), &p), "unknown priority bucket")
}

func TestNewStats_ListsEveryKey(t *testing.T) {
	s := NewStats()
	assert.Len(t, s.ByRelationship, len(AllRelationshipTypes()))
	assert.Len(t, s.ByAction, len(AllActionTypes()))
	assert.Len(t, s.ByPriority, len(AllPriorityBuckets()))
	assert.Zero(t, s.ByRelationship[Distinct])
}

func TestSkillRelationship_Flatten(t *testing.T) {
	diff := -2
	r := SkillRelationship{
		ID:                  "rel",
		Type:                SpecificationVariant,
		Evidence:            []string{"one", "two"},
		Scores:              SimilarityScore{Composite: 0.8},
		CognitiveDifference: &diff,
		SpecificationDifferences: map[string]FieldDifference{
			"scope":         {A: "word", B: "sentence"},
			"support_level": {A: "independent", B: "with_support"},
		},
	}
	row := r.Flatten()

	for _, col := range RelationshipColumns {
		assert.Contains(t, row, col)
	}
	assert.Equal(t, "SPECIFICATION_VARIANT", row["relationship_type"])
	assert.Equal(t, "one; two", row["evidence"])
	assert.Equal(t, "scope|support_level", row["specification_fields"])
	assert.Equal(t, "", row["grade_difference"])
	assert.Equal(t, -2, row["cognitive_difference"])
	assert.Equal(t, 0.8, row["composite_score"])
}

func TestRecommendation_Flatten(t *testing.T) {
	r := Recommendation{
		Action:            ActionMerge,
		Steps:             []string{"a", "b"},
		QualityComparison: &QualityComparison{Gap: 0.3},
	}
	row := r.Flatten()

	for _, col := range RecommendationColumns {
		assert.Contains(t, row, col)
	}
	assert.Equal(t, "a | b", row["steps"])
	assert.Equal(t, 0.3, row["quality_gap"])

	assert.Equal(t, "", Recommendation{}.Flatten()["quality_gap"])
}
