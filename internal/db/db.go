// Package db provides optional PostgreSQL persistence for analysis runs.
package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

//go:embed schema.sql
var schemaSQL string

var relationshipColumns = []string{
	"run_id", "relationship_id", "skill_a_id", "skill_b_id", "relationship_type",
	"confidence", "composite", "rule", "payload",
}

var recommendationColumns = []string{
	"run_id", "recommendation_id", "relationship_id", "action", "priority",
	"priority_score", "confidence", "payload",
}

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the run tables if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// CreateRun creates a new analysis run record and returns its ID
func (db *DB) CreateRun(ctx context.Context, input RunInput) (uuid.UUID, error) {
	configJSON, err := json.Marshal(input.Config)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal run config: %w", err)
	}
	profile := input.WeightProfile
	if profile == "" {
		profile = "default"
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO analysis_runs (id, input_path, weight_profile, status, config)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, input.InputPath, profile, RunStatusRunning, configJSON,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a run finished with the given status and stores its stats
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, stats *types.Stats) error {
	var statsJSON []byte
	if stats != nil {
		var err error
		if statsJSON, err = json.Marshal(stats); err != nil {
			return fmt.Errorf("failed to marshal run stats: %w", err)
		}
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE analysis_runs SET status = $1, stats = $2, completed_at = NOW() WHERE id = $3`,
		status, statsJSON, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}
	return nil
}

// SaveRelationships bulk-copies a run's relationships
func (db *DB) SaveRelationships(ctx context.Context, runID uuid.UUID, rels []types.SkillRelationship) (int64, error) {
	rows, err := relationshipRows(runID, rels)
	if err != nil {
		return 0, err
	}
	n, err := db.pool.CopyFrom(ctx, pgx.Identifier{"skill_relationships"}, relationshipColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to save relationships: %w", err)
	}
	return n, nil
}

// SaveRecommendations bulk-copies a run's recommendations
func (db *DB) SaveRecommendations(ctx context.Context, runID uuid.UUID, recs []types.Recommendation) (int64, error) {
	rows, err := recommendationRows(runID, recs)
	if err != nil {
		return 0, err
	}
	n, err := db.pool.CopyFrom(ctx, pgx.Identifier{"skill_recommendations"}, recommendationColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to save recommendations: %w", err)
	}
	return n, nil
}

// GetRun retrieves a run by ID. It returns nil, nil when no run exists.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, input_path, weight_profile, status, stats, created_at, completed_at
		 FROM analysis_runs WHERE id = $1`,
		runID,
	)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns retrieves recent runs, newest first
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, input_path, weight_profile, status, stats, created_at, completed_at
		 FROM analysis_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// ListRecommendations retrieves a run's recommendations in priority order
func (db *DB) ListRecommendations(ctx context.Context, runID uuid.UUID, filters RecommendationFilters) ([]types.Recommendation, error) {
	query, args := recommendationQuery(runID, filters)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	var recs []types.Recommendation
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		var rec types.Recommendation
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeleteRun deletes a run and all its rows (via cascade)
func (db *DB) DeleteRun(ctx context.Context, runID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM analysis_runs WHERE id = $1`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}
	return nil
}

func scanRun(row pgx.Row) (*Run, error) {
	var run Run
	var statsJSON []byte
	if err := row.Scan(&run.ID, &run.InputPath, &run.WeightProfile, &run.Status, &statsJSON, &run.CreatedAt, &run.CompletedAt); err != nil {
		return nil, err
	}
	if len(statsJSON) > 0 {
		var stats types.Stats
		if err := json.Unmarshal(statsJSON, &stats); err != nil {
			return nil, fmt.Errorf("failed to decode run stats: %w", err)
		}
		run.Stats = &stats
	}
	return &run, nil
}

func relationshipRows(runID uuid.UUID, rels []types.SkillRelationship) ([][]any, error) {
	rows := make([][]any, 0, len(rels))
	for _, r := range rels {
		payload, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal relationship %s: %w", r.ID, err)
		}
		rows = append(rows, []any{
			runID, r.ID, r.SkillAID, r.SkillBID, string(r.Type),
			r.Confidence, r.Scores.Composite, r.Rule, payload,
		})
	}
	return rows, nil
}

func recommendationRows(runID uuid.UUID, recs []types.Recommendation) ([][]any, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		payload, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal recommendation %s: %w", r.ID, err)
		}
		rows = append(rows, []any{
			runID, r.ID, r.RelationshipID, string(r.Action), string(r.Priority),
			r.PriorityScore, r.Confidence, payload,
		})
	}
	return rows, nil
}

func recommendationQuery(runID uuid.UUID, filters RecommendationFilters) (string, []any) {
	query := `SELECT payload FROM skill_recommendations WHERE run_id = $1`
	args := []any{runID}
	argNum := 2

	if filters.Priority != "" {
		query += fmt.Sprintf(" AND priority = $%d", argNum)
		args = append(args, string(filters.Priority))
		argNum++
	}
	if filters.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", argNum)
		args = append(args, string(filters.Action))
		argNum++
	}

	query += " ORDER BY priority_score DESC, relationship_id ASC"
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filters.Limit)
	}
	return query, args
}
