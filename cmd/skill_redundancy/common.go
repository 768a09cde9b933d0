package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/config"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/logging"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}

// loadConfig returns the built-in defaults, or the file at path overlaid on them.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// applyPrefilterFlags overrides the prefilter settings with explicitly set flags.
func applyPrefilterFlags(cmd *cobra.Command, cfg *config.Config, threshold float64, topK int) error {
	if cmd.Flags().Changed("threshold") {
		cfg.Prefilter.Threshold = threshold
	}
	if cmd.Flags().Changed("top-k") {
		cfg.Prefilter.TopK = topK
	}
	return cfg.Validate()
}

func newLogger(verbose bool) (*logging.Logger, error) {
	mode := "prod"
	if verbose {
		mode = "dev"
	}
	log, err := logging.New(mode)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// envFallback returns value, or the named environment variable when value is empty.
func envFallback(value, env string) string {
	if value != "" {
		return value
	}
	return os.Getenv(env)
}

func findRecord(records []types.SkillRecord, id string) (types.SkillRecord, error) {
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return types.SkillRecord{}, fmt.Errorf("skill %q not found", id)
}

func recordIDs(records []types.SkillRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func step(out io.Writer, i, n int, format string, args ...any) {
	fmt.Fprintf(out, "Step %d/%d: %s\n", i, n, fmt.Sprintf(format, args...))
}
