package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/config"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/logging"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/recommend"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/similarity"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

func readingSkill(id string, mutate func(f *types.RecordFields)) types.SkillRecord {
	f := types.RecordFields{
		ID:              id,
		Name:            "Determine the main idea of a text",
		ActionVerbs:     types.NewStringSet("determine", "identify"),
		TargetNouns:     types.NewStringSet("main idea", "key details"),
		KeyConcepts:     types.NewStringSet("central idea", "summary"),
		TextTypes:       types.NewStringSet("informational"),
		CognitiveDemand: "understand",
		TaskComplexity:  "moderate",
		SkillDomain:     "reading",
		Scope:           "paragraph",
		SupportLevel:    "independent",
		GradeLevel:      "3",
		ConfidenceLabel: "high",
	}
	if mutate != nil {
		mutate(&f)
	}
	return types.NewSkillRecord(f)
}

func mathSkill(id string) types.SkillRecord {
	return types.NewSkillRecord(types.RecordFields{
		ID:              id,
		Name:            "Solve linear equations",
		ActionVerbs:     types.NewStringSet("solve"),
		TargetNouns:     types.NewStringSet("linear equations"),
		KeyConcepts:     types.NewStringSet("variables"),
		CognitiveDemand: "apply",
		TaskComplexity:  "moderate",
		SkillDomain:     "math",
		GradeLevel:      "8",
	})
}

func run(t *testing.T, cfg config.Config, records []types.SkillRecord, semantic similarity.SemanticSource, opts Options) *Result {
	t.Helper()
	result, err := NewAnalyzer(cfg, nil).Run(context.Background(), records, semantic, opts)
	require.NoError(t, err)
	return result
}

func TestRun_TrueDuplicate(t *testing.T) {
	records := []types.SkillRecord{readingSkill("a", nil), readingSkill("b", nil)}
	semantic := similarity.NewStaticSource().Set("a", "b", 0.95)

	result := run(t, config.Default(), records, semantic, Options{})

	require.Len(t, result.Relationships, 1)
	rel := result.Relationships[0]
	assert.GreaterOrEqual(t, rel.Scores.Composite, 0.90)
	assert.Equal(t, types.TrueDuplicate, rel.Type)

	rec := result.Recommendations[0]
	assert.Contains(t, []types.ActionType{types.ActionMerge, types.ActionCreateBaseSkill}, rec.Action)
	// identical metadata has no quality gap
	assert.Equal(t, types.ActionCreateBaseSkill, rec.Action)
}

func TestRun_SpecificationVariant(t *testing.T) {
	records := []types.SkillRecord{
		readingSkill("a", func(f *types.RecordFields) {
			f.TargetNouns = types.NewStringSet("main idea", "details")
		}),
		readingSkill("b", func(f *types.RecordFields) {
			f.SupportLevel = "with_support"
			f.Scope = "sentence"
		}),
	}
	semantic := similarity.NewStaticSource().Set("a", "b", 0.9)

	result := run(t, config.Default(), records, semantic, Options{})

	require.Len(t, result.Relationships, 1)
	rel := result.Relationships[0]
	require.Equal(t, types.SpecificationVariant, rel.Type)
	assert.Contains(t, rel.SpecificationDifferences, "support_level")
	assert.Contains(t, rel.SpecificationDifferences, "scope")
	assert.Equal(t, types.ActionCreateBaseSkill, result.Recommendations[0].Action)
}

func TestRun_Prerequisite(t *testing.T) {
	records := []types.SkillRecord{
		readingSkill("grade4", func(f *types.RecordFields) {
			f.GradeLevel = "4"
			f.CognitiveDemand = "apply"
		}),
		readingSkill("grade3", nil),
	}
	semantic := similarity.NewStaticSource().Set("grade3", "grade4", 0.6)

	result := run(t, config.Default(), records, semantic, Options{})

	require.Len(t, result.Relationships, 1)
	rel := result.Relationships[0]
	require.Equal(t, types.Prerequisite, rel.Type)
	assert.InDelta(t, 0.81375, rel.Scores.Composite, 1e-9)

	rec := result.Recommendations[0]
	assert.Equal(t, types.ActionCaptureDependency, rec.Action)
	assert.Equal(t, "grade3", rec.PrerequisiteID)
	assert.Equal(t, "grade4", rec.DependentID)
}

func TestRun_DistinctIsLowestPriority(t *testing.T) {
	cfg := config.Default()
	cfg.Prefilter.Threshold = 0
	records := []types.SkillRecord{readingSkill("a", nil), mathSkill("m")}
	semantic := similarity.NewStaticSource().Set("a", "m", 0.1)

	result := run(t, cfg, records, semantic, Options{IncludeDistinct: true})

	require.Len(t, result.Relationships, 1)
	assert.Equal(t, types.Distinct, result.Relationships[0].Type)
	rec := result.Recommendations[0]
	assert.Equal(t, types.PriorityP3, rec.Priority)
	assert.Equal(t, types.ActionNoAction, rec.Action)
	assert.True(t, rec.Impact.Negligible)
}

func TestRun_DropsDistinctByDefault(t *testing.T) {
	cfg := config.Default()
	cfg.Prefilter.Threshold = 0
	records := []types.SkillRecord{readingSkill("a", nil), mathSkill("m")}

	result := run(t, cfg, records, nil, Options{})

	assert.Empty(t, result.Relationships)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, 1, result.Stats.ScoredPairs)
	assert.Equal(t, 1, result.Stats.DroppedDistinct)
	assert.Equal(t, 1, result.Stats.ByRelationship[types.Distinct])
}

func TestRun_PrefilterRemovesUnrelatedPairs(t *testing.T) {
	records := []types.SkillRecord{readingSkill("a", nil), mathSkill("m")}

	result := run(t, config.Default(), records, nil, Options{})
	assert.Equal(t, 0, result.Stats.CandidatePairs)
	assert.Equal(t, 2, result.Stats.TotalRecords)
}

func TestRun_SortedByPriorityAndDeterministic(t *testing.T) {
	cfg := config.Default()
	cfg.Prefilter.Threshold = 0
	records := []types.SkillRecord{
		readingSkill("a", nil),
		readingSkill("b", nil),
		readingSkill("c", func(f *types.RecordFields) {
			f.GradeLevel = "4"
			f.CognitiveDemand = "apply"
		}),
		readingSkill("d", func(f *types.RecordFields) {
			f.SupportLevel = "with_support"
			f.Scope = "sentence"
		}),
		mathSkill("m"),
	}
	semantic := similarity.NewStaticSource().
		Set("a", "b", 0.95).
		Set("a", "c", 0.6).
		Set("a", "d", 0.9)

	serial := run(t, cfg, records, semantic, Options{Workers: 1, IncludeDistinct: true})
	parallel := run(t, cfg, records, semantic, Options{Workers: 8, IncludeDistinct: true})
	assert.Equal(t, serial, parallel)

	recs := serial.Recommendations
	require.NotEmpty(t, recs)
	for i := 1; i < len(recs); i++ {
		prev, cur := recs[i-1], recs[i]
		assert.True(t, prev.PriorityScore > cur.PriorityScore ||
			(prev.PriorityScore == cur.PriorityScore && prev.RelationshipID < cur.RelationshipID),
			"recommendations out of order at %d", i)
		assert.Equal(t, serial.Relationships[i].ID, cur.RelationshipID)
	}
	assert.Equal(t, len(recs), len(serial.Relationships))
}

func TestRun_StatsSummarizeEmittedRecommendations(t *testing.T) {
	records := []types.SkillRecord{readingSkill("a", nil), readingSkill("b", nil)}
	semantic := similarity.NewStaticSource().Set("a", "b", 0.95)

	result := run(t, config.Default(), records, semantic, Options{WeightProfile: "semantic_heavy"})
	stats := result.Stats

	assert.Equal(t, 1, stats.CandidatePairs)
	assert.Equal(t, 1, stats.ScoredPairs)
	assert.Equal(t, 0, stats.SkippedPairs)
	assert.Equal(t, "semantic_heavy", stats.WeightProfile)
	assert.Equal(t, 1.0, stats.SemanticCoverage)
	assert.Equal(t, 1, stats.ByRelationship[types.TrueDuplicate])
	assert.Equal(t, 1, stats.ByAction[result.Recommendations[0].Action])
	assert.Equal(t, 1, stats.ByPriority[result.Recommendations[0].Priority])
	assert.InDelta(t, result.Relationships[0].Confidence, stats.MeanConfidence, 1e-9)
	assert.InDelta(t, result.Relationships[0].Scores.Composite, stats.MeanComposite, 1e-9)
	assert.Len(t, stats.ByAction, len(types.AllActionTypes()))
}

func TestRun_BadPairIsSkippedAndLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	analyzer := NewAnalyzer(config.Default(), logging.FromCore(core))

	records := []types.SkillRecord{
		readingSkill("a", nil),
		readingSkill("b", nil),
		readingSkill("c", nil),
	}
	semantic := similarity.NewStaticSource().
		Set("a", "b", 1.5).
		Set("a", "c", 0.9).
		Set("b", "c", 0.9)

	result, err := analyzer.Run(context.Background(), records, semantic, Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.CandidatePairs)
	assert.Equal(t, 1, result.Stats.SkippedPairs)
	assert.Equal(t, 2, result.Stats.ScoredPairs)
	assert.Len(t, result.Recommendations, 2)

	skipped := logs.FilterMessage("pair skipped").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, "a", skipped[0].ContextMap()["skill_a"])
}

func TestRun_RejectsBadIDs(t *testing.T) {
	analyzer := NewAnalyzer(config.Default(), nil)

	tests := []struct {
		name    string
		records []types.SkillRecord
	}{
		{"empty id", []types.SkillRecord{readingSkill("a", nil), readingSkill("", nil)}},
		{"duplicate id", []types.SkillRecord{readingSkill("a", nil), readingSkill("a", nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzer.Run(context.Background(), tt.records, nil, Options{})
			require.Error(t, err)
			var cfgErr *config.ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []types.SkillRecord{readingSkill("a", nil), readingSkill("b", nil)}
	_, err := NewAnalyzer(config.Default(), nil).Run(ctx, records, nil, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRun_ReportsProgress(t *testing.T) {
	records := []types.SkillRecord{readingSkill("a", nil), readingSkill("b", nil)}

	var stages []string
	run(t, config.Default(), records, nil, Options{
		Workers:    1,
		OnProgress: func(e ProgressEvent) { stages = append(stages, e.Stage) },
	})
	assert.Equal(t, []string{StagePrefilter, StageEvaluate, StageRank}, stages)
}

func TestRun_UsesCorpusForImpact(t *testing.T) {
	records := []types.SkillRecord{readingSkill("a", nil), readingSkill("b", nil)}
	corpus := &recommend.Corpus{Usage: map[string]int{"a": 10, "b": 10}}

	result := run(t, config.Default(), records, nil, Options{Corpus: corpus})
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "usage", result.Recommendations[0].Impact.Basis)
	assert.Equal(t, 1.0, result.Recommendations[0].Impact.Score)
}

func TestCompare(t *testing.T) {
	analyzer := NewAnalyzer(config.Default(), nil)
	a, b := readingSkill("a", nil), readingSkill("b", nil)

	rel, rec, err := analyzer.Compare(a, b, similarity.Semantic(0.95), "", nil)
	require.NoError(t, err)
	assert.Equal(t, types.TrueDuplicate, rel.Type)
	assert.Equal(t, rel.ID, rec.RelationshipID)

	_, _, err = analyzer.Compare(a, b, similarity.Semantic(2), "", nil)
	require.Error(t, err)
}
