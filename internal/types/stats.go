// Package types provides type definitions for structured data used throughout the skill redundancy system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Stats summarizes one analysis run for reporting.
type Stats struct {
	TotalRecords     int                      `json:"total_records"`
	CandidatePairs   int                      `json:"candidate_pairs"`
	ScoredPairs      int                      `json:"scored_pairs"`
	SkippedPairs     int                      `json:"skipped_pairs"`
	DroppedDistinct  int                      `json:"dropped_distinct"`
	ByRelationship   map[RelationshipType]int `json:"by_relationship"`
	ByAction         map[ActionType]int       `json:"by_action"`
	ByPriority       map[PriorityBucket]int   `json:"by_priority"`
	MeanConfidence   float64                  `json:"mean_confidence"`
	MeanComposite    float64                  `json:"mean_composite"`
	WeightProfile    string                   `json:"weight_profile"`
	SemanticCoverage float64                  `json:"semantic_coverage"`
}

// NewStats returns a Stats value with every known key present and zeroed,
// so summaries always list every relationship type, action and bucket.
func NewStats() Stats {
	s := Stats{
		ByRelationship: make(map[RelationshipType]int),
		ByAction:       make(map[ActionType]int),
		ByPriority:     make(map[PriorityBucket]int),
	}
	for _, t := range AllRelationshipTypes() {
		s.ByRelationship[t] = 0
	}
	for _, a := range AllActionTypes() {
		s.ByAction[a] = 0
	}
	for _, p := range AllPriorityBuckets() {
		s.ByPriority[p] = 0
	}
	return s
}
