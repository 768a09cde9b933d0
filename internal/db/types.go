package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

// Run status values
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run represents an analysis run record
type Run struct {
	ID            uuid.UUID    `json:"id"`
	InputPath     string       `json:"input_path"`
	WeightProfile string       `json:"weight_profile"`
	Status        string       `json:"status"`
	Stats         *types.Stats `json:"stats,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
}

// RunInput holds the fields needed to open a run
type RunInput struct {
	InputPath     string
	WeightProfile string
	Config        any
}

// RecommendationFilters holds optional filters for listing recommendations
type RecommendationFilters struct {
	Priority types.PriorityBucket
	Action   types.ActionType
	Limit    int
}
