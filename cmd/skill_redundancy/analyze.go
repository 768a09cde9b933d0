package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/config"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/db"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/embedding"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/export"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/ingestion"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/logging"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/observability"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/pipeline"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/recommend"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/schemas"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/similarity"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full redundancy analysis over a skill file",
	Long: `Prefilters candidate pairs, scores, classifies and recommends each pair, then writes
relationships, recommendations and a summary to the output directory.

Semantic similarity comes from --similarity-matrix, from Gemini embeddings with --embed, or is
treated as 0 when neither is given. Configuration can be loaded with --config; flags override it.`,
	RunE: runAnalyze,
}

var (
	analyzeSkills          string
	analyzeConfigPath      string
	analyzeMatrix          string
	analyzeEmbed           bool
	analyzeModel           string
	analyzeAPIKey          string
	analyzeUsage           string
	analyzeProfile         string
	analyzeThreshold       float64
	analyzeTopK            int
	analyzeWorkers         int
	analyzeIncludeDistinct bool
	analyzeOut             string
	analyzeFormat          string
	analyzeDatabaseURL     string
	analyzeVerbose         bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeSkills, "skills", "s", "", "Path to skills CSV or JSON file (required)")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to YAML or JSON config file (defaults to built-in values)")
	analyzeCmd.Flags().StringVarP(&analyzeMatrix, "similarity-matrix", "m", "", "Path to precomputed semantic similarity matrix CSV")
	analyzeCmd.Flags().BoolVar(&analyzeEmbed, "embed", false, "Compute semantic similarity with Gemini embeddings")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", embedding.DefaultModel, "Embedding model used with --embed")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	analyzeCmd.Flags().StringVar(&analyzeUsage, "usage", "", "Path to skill usage CSV for impact estimation")
	analyzeCmd.Flags().StringVarP(&analyzeProfile, "weights-profile", "w", "", "Adaptive weight profile name (unknown names use the default weights)")
	analyzeCmd.Flags().Float64Var(&analyzeThreshold, "threshold", 0, "Prefilter proxy threshold (overrides config)")
	analyzeCmd.Flags().IntVar(&analyzeTopK, "top-k", 0, "Maximum candidates per record, 0 for unlimited (overrides config)")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Concurrent pair workers (defaults to CPU count)")
	analyzeCmd.Flags().BoolVar(&analyzeIncludeDistinct, "include-distinct", false, "Keep DISTINCT pairs in the output")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Output directory (required)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", string(export.FormatJSON), "Output format for relationships and recommendations (json or csv)")
	analyzeCmd.Flags().StringVar(&analyzeDatabaseURL, "database-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	markRequired(analyzeCmd, "skills", "out")
	analyzeCmd.MarkFlagsMutuallyExclusive("similarity-matrix", "embed")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	format, err := export.ParseFormat(analyzeFormat)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(analyzeConfigPath)
	if err != nil {
		return err
	}
	if err := applyPrefilterFlags(cmd, &cfg, analyzeThreshold, analyzeTopK); err != nil {
		return err
	}
	log, err := newLogger(analyzeVerbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	databaseURL := envFallback(analyzeDatabaseURL, "DATABASE_URL")
	totalSteps := 5
	if databaseURL != "" {
		totalSteps++
	}

	// Step 1: Load records and optional usage data
	step(out, 1, totalSteps, "Loading skills from %s", analyzeSkills)
	records, err := ingestion.LoadRecords(analyzeSkills)
	if err != nil {
		return fmt.Errorf("failed to load skills: %w", err)
	}
	var corpus *recommend.Corpus
	if analyzeUsage != "" {
		usage, err := ingestion.LoadUsage(analyzeUsage)
		if err != nil {
			return fmt.Errorf("failed to load usage: %w", err)
		}
		corpus = &recommend.Corpus{Usage: usage}
	}
	_, _ = fmt.Fprintf(out, "  Loaded %d skills\n", len(records))

	// Step 2: Resolve the semantic similarity source
	step(out, 2, totalSteps, "Preparing semantic similarity")
	semantic, err := semanticSource(ctx, out, records)
	if err != nil {
		return err
	}

	// Step 3: Run the analysis
	step(out, 3, totalSteps, "Analyzing candidate pairs")
	analyzer := pipeline.NewAnalyzer(cfg, log)
	result, err := analyzer.Run(ctx, records, semantic, pipeline.Options{
		WeightProfile:   analyzeProfile,
		Workers:         analyzeWorkers,
		IncludeDistinct: analyzeIncludeDistinct,
		Corpus:          corpus,
		OnProgress: func(event pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(out, "  [%s] %s\n", event.Stage, event.Message)
		},
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	// Step 4: Write outputs
	step(out, 4, totalSteps, "Writing %s outputs to %s", format, analyzeOut)
	paths, err := export.WriteResult(analyzeOut, format, result.Relationships, result.Recommendations, result.Stats)
	if err != nil {
		return fmt.Errorf("failed to write outputs: %w", err)
	}

	// Step 5: Validate written artifacts
	step(out, 5, totalSteps, "Validating outputs")
	if err := validateOutputs(cmd.ErrOrStderr(), format, paths); err != nil {
		return err
	}

	// Step 6: Persist the run
	if databaseURL != "" {
		step(out, 6, totalSteps, "Saving run to database")
		runID, err := persistRun(ctx, databaseURL, cfg, result, log)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "  Run ID: %s\n", runID)
	}

	if analyzeVerbose {
		printer := observability.NewPrinter(out)
		printer.PrintSummary(&result.Stats)
		printer.PrintRecommendations(result.Recommendations)
	}

	_, _ = fmt.Fprintf(out, "\nAnalysis complete: %d relationships, %d recommendations\n",
		len(result.Relationships), len(result.Recommendations))
	_, _ = fmt.Fprintf(out, "  Relationships:   %s\n", paths.Relationships)
	_, _ = fmt.Fprintf(out, "  Recommendations: %s\n", paths.Recommendations)
	_, _ = fmt.Fprintf(out, "  Summary:         %s\n", paths.Summary)
	return nil
}

// semanticSource returns the matrix-backed source selected by flags, or nil
// when semantic similarity is unavailable.
func semanticSource(ctx context.Context, out io.Writer, records []types.SkillRecord) (similarity.SemanticSource, error) {
	switch {
	case analyzeMatrix != "":
		m, err := ingestion.LoadMatrix(analyzeMatrix, recordIDs(records))
		if err != nil {
			return nil, fmt.Errorf("failed to load similarity matrix: %w", err)
		}
		_, _ = fmt.Fprintf(out, "  Loaded %dx%d similarity matrix\n", m.Size(), m.Size())
		return m, nil
	case analyzeEmbed:
		apiKey := envFallback(analyzeAPIKey, "GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("API key is required for --embed (set --api-key or GEMINI_API_KEY env var)")
		}
		embedder, err := embedding.NewGeminiEmbedder(ctx, apiKey, analyzeModel)
		if err != nil {
			return nil, err
		}
		defer func() { _ = embedder.Close() }()

		matrix, err := embedding.BuildMatrix(ctx, embedder, records)
		if err != nil {
			return nil, err
		}
		_, _ = fmt.Fprintf(out, "  Embedded %d skills with %s\n", len(records), embedder.Model())
		return matrix.Source()
	}
	_, _ = fmt.Fprintln(out, "  No semantic source; semantic similarity treated as 0")
	return nil, nil
}

// validateOutputs checks the JSON artifacts against their schemas. A schema
// that cannot be loaded is reported and skipped; an invalid artifact fails.
func validateOutputs(stderr io.Writer, format export.Format, paths export.Paths) error {
	files := []string{paths.Summary}
	if format == export.FormatJSON {
		files = append([]string{paths.Relationships, paths.Recommendations}, files...)
	}
	for _, path := range files {
		err := schemas.ValidateFile(path)
		if err == nil {
			continue
		}
		var loadErr *schemas.SchemaLoadError
		if errors.As(err, &loadErr) {
			_, _ = fmt.Fprintf(stderr, "Warning: skipping schema validation for %s: %v\n", path, err)
			continue
		}
		return fmt.Errorf("output %s failed schema validation: %w", path, err)
	}
	return nil
}

func persistRun(ctx context.Context, databaseURL string, cfg config.Config, result *pipeline.Result, log *logging.Logger) (string, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return "", err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return "", err
	}
	runID, err := database.CreateRun(ctx, db.RunInput{
		InputPath:     analyzeSkills,
		WeightProfile: result.Stats.WeightProfile,
		Config:        cfg,
	})
	if err != nil {
		return "", err
	}

	saveErr := func() error {
		if _, err := database.SaveRelationships(ctx, runID, result.Relationships); err != nil {
			return err
		}
		_, err := database.SaveRecommendations(ctx, runID, result.Recommendations)
		return err
	}()
	if saveErr != nil {
		if err := database.CompleteRun(ctx, runID, db.RunStatusFailed, nil); err != nil {
			log.Warn("failed to mark run failed", "run_id", runID.String(), "error", err.Error())
		}
		return "", saveErr
	}

	if err := database.CompleteRun(ctx, runID, db.RunStatusCompleted, &result.Stats); err != nil {
		return "", err
	}
	return runID.String(), nil
}
