// Package pipeline wires prefiltering, scoring, classification and
// recommendation into a batch analysis over a set of skill records.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/classify"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/config"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/logging"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/prefilter"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/recommend"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/similarity"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

// Stage names reported through progress events.
const (
	StagePrefilter = "prefilter"
	StageEvaluate  = "evaluate"
	StageRank      = "rank"
)

// ProgressEvent represents a progress update during an analysis run
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Done    int    `json:"done,omitempty"`
	Total   int    `json:"total,omitempty"`
}

// ProgressCallback is called when analysis progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds per-run settings that are not part of the engine configuration.
type Options struct {
	// WeightProfile names an adaptive weight profile; empty or unknown uses the defaults.
	WeightProfile string
	// Workers bounds concurrent pair evaluation; <= 0 uses runtime.NumCPU().
	Workers int
	// IncludeDistinct keeps DISTINCT relationships in the output.
	IncludeDistinct bool
	// Corpus supplies optional usage data for impact estimation.
	Corpus     *recommend.Corpus
	OnProgress ProgressCallback
}

// Result is the output of one analysis run. Relationships and
// Recommendations are index-aligned and sorted by descending priority score.
type Result struct {
	Relationships   []types.SkillRelationship `json:"relationships"`
	Recommendations []types.Recommendation    `json:"recommendations"`
	Stats           types.Stats               `json:"stats"`
}

// Analyzer runs the full detection pipeline. It holds only immutable
// configuration and can serve concurrent runs.
type Analyzer struct {
	cfg         config.Config
	engine      *similarity.Engine
	classifier  *classify.Classifier
	recommender *recommend.Engine
	log         *logging.Logger
}

// NewAnalyzer builds an analyzer from cfg. cfg is copied. A nil logger discards logs.
func NewAnalyzer(cfg config.Config, log *logging.Logger) *Analyzer {
	if log == nil {
		log = logging.Nop()
	}
	cfg = cfg.Clone()
	return &Analyzer{
		cfg:         cfg,
		engine:      similarity.NewEngine(cfg),
		classifier:  classify.NewClassifier(cfg),
		recommender: recommend.NewEngine(cfg),
		log:         log,
	}
}

// Config returns a copy of the analyzer's configuration.
func (a *Analyzer) Config() config.Config {
	return a.cfg.Clone()
}

// pairOutcome is the result slot for one candidate pair. Each worker writes
// only to its own slot.
type pairOutcome struct {
	pair           types.CandidatePair
	relationship   types.SkillRelationship
	recommendation types.Recommendation
	err            error
}

// Run analyzes records: prefilter, then score, classify and recommend each
// candidate pair concurrently, then rank. semantic may be nil.
//
// Records must have unique, non-empty ids; violations return a
// *config.ConfigError before any pair is evaluated. A pair that fails is
// logged and counted as skipped, and never aborts the batch. Cancelling ctx
// cancels the whole run.
func (a *Analyzer) Run(ctx context.Context, records []types.SkillRecord, semantic similarity.SemanticSource, opts Options) (*Result, error) {
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	pairs := prefilter.Candidates(records, a.cfg.Prefilter.Threshold, a.cfg.Prefilter.TopK)
	emit(opts, ProgressEvent{
		Stage:   StagePrefilter,
		Message: fmt.Sprintf("%d candidate pairs from %d records", len(pairs), len(records)),
		Total:   len(pairs),
	})

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([]pairOutcome, len(pairs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, pair := range pairs {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = a.evaluate(records[pair.AIndex], records[pair.BIndex], pair, semantic, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}
	emit(opts, ProgressEvent{
		Stage:   StageEvaluate,
		Message: fmt.Sprintf("evaluated %d pairs", len(pairs)),
		Done:    len(pairs),
		Total:   len(pairs),
	})

	result := a.collect(records, outcomes, opts)
	emit(opts, ProgressEvent{
		Stage:   StageRank,
		Message: fmt.Sprintf("%d recommendations ranked", len(result.Recommendations)),
		Total:   len(result.Recommendations),
	})

	a.log.Info("analysis complete",
		"records", result.Stats.TotalRecords,
		"candidate_pairs", result.Stats.CandidatePairs,
		"scored", result.Stats.ScoredPairs,
		"skipped", result.Stats.SkippedPairs,
		"dropped_distinct", result.Stats.DroppedDistinct,
		"weight_profile", result.Stats.WeightProfile,
	)
	return result, nil
}

// evaluate runs the score, classify and recommend chain for one pair,
// converting errors and panics into a failed outcome.
func (a *Analyzer) evaluate(ra, rb types.SkillRecord, pair types.CandidatePair, semantic similarity.SemanticSource, opts Options) (out pairOutcome) {
	out.pair = pair
	defer func() {
		if r := recover(); r != nil {
			out.err = fmt.Errorf("panic evaluating pair: %v", r)
		}
	}()

	rel, rec, err := a.Compare(ra, rb, similarity.Lookup(semantic, ra.ID, rb.ID), opts.WeightProfile, opts.Corpus)
	if err != nil {
		out.err = err
		return out
	}
	out.relationship = rel
	out.recommendation = rec
	return out
}

// Compare scores, classifies and recommends a single pair.
func (a *Analyzer) Compare(ra, rb types.SkillRecord, semantic *float64, profile string, corpus *recommend.Corpus) (types.SkillRelationship, types.Recommendation, error) {
	score, err := a.engine.ScoreWithProfile(ra, rb, semantic, profile)
	if err != nil {
		return types.SkillRelationship{}, types.Recommendation{}, err
	}
	rel := a.classifier.Classify(score, ra, rb)
	rec := a.recommender.Recommend(rel, ra, rb, corpus)
	return rel, rec, nil
}

func (a *Analyzer) collect(records []types.SkillRecord, outcomes []pairOutcome, opts Options) *Result {
	stats := types.NewStats()
	stats.TotalRecords = len(records)
	stats.CandidatePairs = len(outcomes)
	_, stats.WeightProfile = a.cfg.WeightsFor(opts.WeightProfile)

	kept := make([]pairOutcome, 0, len(outcomes))
	semanticCount := 0
	for _, o := range outcomes {
		if o.err != nil {
			stats.SkippedPairs++
			a.log.Warn("pair skipped",
				"skill_a", o.pair.AID,
				"skill_b", o.pair.BID,
				"error", o.err.Error(),
			)
			continue
		}
		stats.ScoredPairs++
		stats.ByRelationship[o.relationship.Type]++
		if o.relationship.Scores.SemanticProvided {
			semanticCount++
		}
		if o.relationship.Type == types.Distinct && !opts.IncludeDistinct {
			stats.DroppedDistinct++
			continue
		}
		kept = append(kept, o)
	}
	if stats.ScoredPairs > 0 {
		stats.SemanticCoverage = float64(semanticCount) / float64(stats.ScoredPairs)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		ri, rj := kept[i].recommendation, kept[j].recommendation
		if ri.PriorityScore != rj.PriorityScore {
			return ri.PriorityScore > rj.PriorityScore
		}
		return ri.RelationshipID < rj.RelationshipID
	})

	result := &Result{
		Relationships:   make([]types.SkillRelationship, 0, len(kept)),
		Recommendations: make([]types.Recommendation, 0, len(kept)),
	}
	var confidenceSum, compositeSum float64
	for _, o := range kept {
		result.Relationships = append(result.Relationships, o.relationship)
		result.Recommendations = append(result.Recommendations, o.recommendation)
		stats.ByAction[o.recommendation.Action]++
		stats.ByPriority[o.recommendation.Priority]++
		confidenceSum += o.relationship.Confidence
		compositeSum += o.relationship.Scores.Composite
	}
	if n := len(kept); n > 0 {
		stats.MeanConfidence = confidenceSum / float64(n)
		stats.MeanComposite = compositeSum / float64(n)
	}

	result.Stats = stats
	return result
}

func validateRecords(records []types.SkillRecord) error {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if r.ID == "" {
			return &config.ConfigError{
				Field:   "skill_id",
				Message: fmt.Sprintf("record %d has an empty id", i),
			}
		}
		if first, dup := seen[r.ID]; dup {
			return &config.ConfigError{
				Field:   "skill_id",
				Message: fmt.Sprintf("duplicate id %q at records %d and %d", r.ID, first, i),
			}
		}
		seen[r.ID] = i
	}
	return nil
}

// emit calls the progress callback if configured
func emit(opts Options, event ProgressEvent) {
	if opts.OnProgress != nil {
		opts.OnProgress(event)
	}
}
