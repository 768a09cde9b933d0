package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/ingestion"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/observability"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/pipeline"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/similarity"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Score, classify and recommend a single pair of skills",
	Long:  "Runs the full scoring, classification and recommendation chain on two skills from a skill file and prints the relationship and recommendation as JSON.",
	RunE:  runCompare,
}

var (
	compareSkills     string
	compareA          string
	compareB          string
	compareSemantic   float64
	compareConfigPath string
	compareProfile    string
	compareVerbose    bool
)

// comparison is the JSON document printed by compare.
type comparison struct {
	Relationship   types.SkillRelationship `json:"relationship"`
	Recommendation types.Recommendation    `json:"recommendation"`
}

func init() {
	compareCmd.Flags().StringVarP(&compareSkills, "skills", "s", "", "Path to skills CSV or JSON file (required)")
	compareCmd.Flags().StringVarP(&compareA, "a", "a", "", "ID of the first skill (required)")
	compareCmd.Flags().StringVarP(&compareB, "b", "b", "", "ID of the second skill (required)")
	compareCmd.Flags().Float64Var(&compareSemantic, "semantic", 0, "Semantic similarity of the pair in [0,1] (omit when unknown)")
	compareCmd.Flags().StringVar(&compareConfigPath, "config", "", "Path to YAML or JSON config file")
	compareCmd.Flags().StringVarP(&compareProfile, "weights-profile", "w", "", "Adaptive weight profile name")
	compareCmd.Flags().BoolVarP(&compareVerbose, "verbose", "v", false, "Print a human-readable comparison box")

	markRequired(compareCmd, "skills", "a", "b")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(compareConfigPath)
	if err != nil {
		return err
	}
	records, err := ingestion.LoadRecords(compareSkills)
	if err != nil {
		return fmt.Errorf("failed to load skills: %w", err)
	}
	ra, err := findRecord(records, compareA)
	if err != nil {
		return err
	}
	rb, err := findRecord(records, compareB)
	if err != nil {
		return err
	}

	var semantic *float64
	if cmd.Flags().Changed("semantic") {
		semantic = similarity.Semantic(compareSemantic)
	}

	analyzer := pipeline.NewAnalyzer(cfg, nil)
	rel, rec, err := analyzer.Compare(ra, rb, semantic, compareProfile, nil)
	if err != nil {
		return fmt.Errorf("failed to compare %s and %s: %w", compareA, compareB, err)
	}

	if compareVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintComparison(rel, rec)
		return nil
	}

	jsonOutput, err := json.MarshalIndent(comparison{Relationship: rel, Recommendation: rec}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal comparison to JSON: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
	return nil
}
