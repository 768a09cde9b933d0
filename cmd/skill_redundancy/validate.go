package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an output artifact against its JSON Schema",
	Long: `Validates relationships.json, recommendations.json or summary.json against the embedded schema
matching its file name, or any JSON file against the schema given with --schema.`,
	RunE: runValidate,
}

var (
	validateJSON   string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVarP(&validateJSON, "json", "j", "", "Path to JSON file to validate (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to JSON Schema file (defaults to the embedded artifact schema)")

	markRequired(validateCmd, "json")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	if validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, validateJSON)
	} else {
		err = schemas.ValidateFile(validateJSON)
	}
	if err != nil {
		return fmt.Errorf("Validation failed: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", validateJSON)
	return nil
}
