package db

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

func TestSchemaSQL_DefinesTables(t *testing.T) {
	for _, table := range []string{"analysis_runs", "skill_relationships", "skill_recommendations"} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
}

func TestRelationshipRows(t *testing.T) {
	runID := uuid.New()
	rels := []types.SkillRelationship{{
		ID:         "rel-1",
		SkillAID:   "a",
		SkillBID:   "b",
		Type:       types.TrueDuplicate,
		Confidence: 0.9,
		Rule:       "true_duplicate",
		Scores:     types.SimilarityScore{Composite: 0.95},
	}}

	rows, err := relationshipRows(runID, rels)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(relationshipColumns))

	assert.Equal(t, runID, rows[0][0])
	assert.Equal(t, "TRUE_DUPLICATE", rows[0][4])
	assert.Equal(t, 0.95, rows[0][6])

	var decoded types.SkillRelationship
	require.NoError(t, json.Unmarshal(rows[0][8].([]byte), &decoded))
	assert.Equal(t, "rel-1", decoded.ID)
}

func TestRecommendationRows(t *testing.T) {
	runID := uuid.New()
	recs := []types.Recommendation{{
		ID:             "rec-1",
		RelationshipID: "rel-1",
		Action:         types.ActionMerge,
		Priority:       types.PriorityP0,
		PriorityScore:  0.85,
		Confidence:     0.9,
	}}

	rows, err := recommendationRows(runID, recs)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(recommendationColumns))
	assert.Equal(t, "MERGE", rows[0][3])
	assert.Equal(t, "P0", rows[0][4])
}

func TestRecommendationQuery(t *testing.T) {
	runID := uuid.New()

	query, args := recommendationQuery(runID, RecommendationFilters{})
	assert.Equal(t, []any{runID}, args)
	assert.NotContains(t, query, "LIMIT")
	assert.True(t, strings.HasSuffix(query, "ORDER BY priority_score DESC, relationship_id ASC"))

	query, args = recommendationQuery(runID, RecommendationFilters{
		Priority: types.PriorityP1,
		Action:   types.ActionHumanReview,
		Limit:    5,
	})
	assert.Contains(t, query, "priority = $2")
	assert.Contains(t, query, "action = $3")
	assert.Contains(t, query, "LIMIT $4")
	assert.Equal(t, []any{runID, "P1", "HUMAN_REVIEW", 5}, args)
}
