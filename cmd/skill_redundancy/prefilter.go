package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/export"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/ingestion"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/prefilter"
)

var prefilterCmd = &cobra.Command{
	Use:   "prefilter",
	Short: "List candidate pairs that pass the structural prefilter",
	Long:  "Computes the cheap structural proxy for every pair of skills and writes the surviving candidate pairs as CSV, without scoring or classifying them.",
	RunE:  runPrefilter,
}

var (
	prefilterSkills     string
	prefilterConfigPath string
	prefilterThreshold  float64
	prefilterTopK       int
	prefilterOut        string
)

func init() {
	prefilterCmd.Flags().StringVarP(&prefilterSkills, "skills", "s", "", "Path to skills CSV or JSON file (required)")
	prefilterCmd.Flags().StringVar(&prefilterConfigPath, "config", "", "Path to YAML or JSON config file")
	prefilterCmd.Flags().Float64Var(&prefilterThreshold, "threshold", 0, "Prefilter proxy threshold (overrides config)")
	prefilterCmd.Flags().IntVar(&prefilterTopK, "top-k", 0, "Maximum candidates per record, 0 for unlimited (overrides config)")
	prefilterCmd.Flags().StringVarP(&prefilterOut, "out", "o", "", "Path to output candidates CSV file (required)")

	markRequired(prefilterCmd, "skills", "out")

	rootCmd.AddCommand(prefilterCmd)
}

func runPrefilter(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(prefilterConfigPath)
	if err != nil {
		return err
	}
	if err := applyPrefilterFlags(cmd, &cfg, prefilterThreshold, prefilterTopK); err != nil {
		return err
	}

	records, err := ingestion.LoadRecords(prefilterSkills)
	if err != nil {
		return fmt.Errorf("failed to load skills: %w", err)
	}

	pairs := prefilter.Candidates(records, cfg.Prefilter.Threshold, cfg.Prefilter.TopK)
	if err := export.WriteCandidatesFile(prefilterOut, pairs); err != nil {
		return fmt.Errorf("failed to write candidates: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Kept %d candidate pairs from %d skills (threshold %.2f, top-k %d)\n",
		len(pairs), len(records), cfg.Prefilter.Threshold, cfg.Prefilter.TopK)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Output: %s\n", prefilterOut)
	return nil
}
