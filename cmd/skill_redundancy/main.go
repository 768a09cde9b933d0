// Package main provides the skill_redundancy CLI for detecting and
// classifying redundant skills in a taxonomy.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skill_redundancy",
	Short: "Skill redundancy detection and classification",
	Long: `Scores every plausible pair of skills on structural, educational, semantic and contextual similarity,
classifies each pair into a relationship type and emits prioritized, explainable consolidation recommendations.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
