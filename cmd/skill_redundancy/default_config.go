package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/config"
)

var defaultConfigCmd = &cobra.Command{
	Use:   "default-config",
	Short: "Print or write the built-in configuration as YAML",
	RunE:  runDefaultConfig,
}

var defaultConfigOut string

func init() {
	defaultConfigCmd.Flags().StringVarP(&defaultConfigOut, "out", "o", "", "Path to output YAML file (defaults to stdout)")

	rootCmd.AddCommand(defaultConfigCmd)
}

func runDefaultConfig(cmd *cobra.Command, _ []string) error {
	data, err := config.Default().ToYAML()
	if err != nil {
		return fmt.Errorf("failed to render default config: %w", err)
	}

	if defaultConfigOut == "" {
		_, _ = cmd.OutOrStdout().Write(data)
		return nil
	}

	if dir := filepath.Dir(defaultConfigOut); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(defaultConfigOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", defaultConfigOut, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", defaultConfigOut)
	return nil
}
