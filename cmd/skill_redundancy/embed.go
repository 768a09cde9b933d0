package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/embedding"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/export"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/ingestion"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Build a semantic similarity matrix with Gemini embeddings",
	Long:  "Embeds every skill with the Gemini embedding API and writes the pairwise cosine similarity matrix as CSV for later use with analyze --similarity-matrix.",
	RunE:  runEmbed,
}

var (
	embedSkills string
	embedOut    string
	embedModel  string
	embedAPIKey string
)

func init() {
	embedCmd.Flags().StringVarP(&embedSkills, "skills", "s", "", "Path to skills CSV or JSON file (required)")
	embedCmd.Flags().StringVarP(&embedOut, "out", "o", "", "Path to output matrix CSV file (required)")
	embedCmd.Flags().StringVar(&embedModel, "model", embedding.DefaultModel, "Embedding model name")
	embedCmd.Flags().StringVar(&embedAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	markRequired(embedCmd, "skills", "out")

	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	apiKey := envFallback(embedAPIKey, "GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("API key is required (set --api-key or GEMINI_API_KEY env var)")
	}

	step(out, 1, 3, "Loading skills from %s", embedSkills)
	records, err := ingestion.LoadRecords(embedSkills)
	if err != nil {
		return fmt.Errorf("failed to load skills: %w", err)
	}

	step(out, 2, 3, "Embedding %d skills with %s", len(records), embedModel)
	embedder, err := embedding.NewGeminiEmbedder(ctx, apiKey, embedModel)
	if err != nil {
		return err
	}
	defer func() { _ = embedder.Close() }()

	matrix, err := embedding.BuildMatrix(ctx, embedder, records)
	if err != nil {
		return err
	}

	step(out, 3, 3, "Writing matrix to %s", embedOut)
	if err := export.WriteMatrixFile(embedOut, matrix.IDs, matrix.Values); err != nil {
		return fmt.Errorf("failed to write matrix: %w", err)
	}
	return nil
}
