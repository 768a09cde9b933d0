package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/db"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/observability"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted analysis runs or one run's recommendations",
	RunE:  runRuns,
}

var (
	runsDatabaseURL string
	runsID          string
	runsPriority    string
	runsAction      string
	runsLimit       int
)

func init() {
	runsCmd.Flags().StringVar(&runsDatabaseURL, "database-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	runsCmd.Flags().StringVar(&runsID, "id", "", "Run ID whose recommendations to list")
	runsCmd.Flags().StringVar(&runsPriority, "priority", "", "Only list recommendations in this bucket (P0-P3)")
	runsCmd.Flags().StringVar(&runsAction, "action", "", "Only list recommendations with this action")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum rows to list")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	filters, err := recommendationFilters(runsPriority, runsAction, runsLimit)
	if err != nil {
		return err
	}
	databaseURL := envFallback(runsDatabaseURL, "DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (set --database-url or DATABASE_URL env var)")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if runsID == "" {
		runs, err := database.ListRuns(ctx, runsLimit)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tPROFILE\tINPUT\tCREATED")
		for _, r := range runs {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Status, r.WeightProfile, r.InputPath, r.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return tw.Flush()
	}

	runID, err := uuid.Parse(runsID)
	if err != nil {
		return fmt.Errorf("invalid run ID %q: %w", runsID, err)
	}
	run, err := database.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run not found: %s", runID)
	}
	recs, err := database.ListRecommendations(ctx, runID, filters)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(out)
	printer.PrintSummary(run.Stats)
	printer.PrintRecommendations(recs)
	return nil
}

func recommendationFilters(priority, action string, limit int) (db.RecommendationFilters, error) {
	filters := db.RecommendationFilters{
		Priority: types.PriorityBucket(priority),
		Action:   types.ActionType(action),
		Limit:    limit,
	}
	if priority != "" && !filters.Priority.Valid() {
		return db.RecommendationFilters{}, fmt.Errorf("unknown priority %q (want P0, P1, P2 or P3)", priority)
	}
	if action != "" && !filters.Action.Valid() {
		return db.RecommendationFilters{}, fmt.Errorf("unknown action %q", action)
	}
	return filters, nil
}
