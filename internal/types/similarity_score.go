// Package types provides type definitions for structured data used throughout the skill redundancy system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sort"
	"strings"
)

// DimensionWeights is a weight vector over the four similarity dimensions.
type DimensionWeights struct {
	Structural  float64 `json:"structural" yaml:"structural" validate:"gte=0,lte=1"`
	Educational float64 `json:"educational" yaml:"educational" validate:"gte=0,lte=1"`
	Semantic    float64 `json:"semantic" yaml:"semantic" validate:"gte=0,lte=1"`
	Contextual  float64 `json:"contextual" yaml:"contextual" validate:"gte=0,lte=1"`
}

// Sum returns the total of all four weights.
func (w DimensionWeights) Sum() float64 {
	return w.Structural + w.Educational + w.Semantic + w.Contextual
}

// StructuralComponents are the named sub-scores of the structural dimension.
type StructuralComponents struct {
	ActionOverlap  float64 `json:"action_overlap"`
	TargetOverlap  float64 `json:"target_overlap"`
	ConceptOverlap float64 `json:"concept_overlap"`
}

// EducationalComponents are the named sub-scores of the educational dimension.
type EducationalComponents struct {
	CognitiveMatch       float64 `json:"cognitive_match"`
	ComplexitySimilarity float64 `json:"complexity_similarity"`
	DomainMatch          float64 `json:"domain_match"`
	TextTypeOverlap      float64 `json:"text_type_overlap"`
}

// ContextualComponents are the named sub-scores of the contextual dimension.
type ContextualComponents struct {
	GradeCompatibility   float64 `json:"grade_compatibility"`
	ScopeMatch           float64 `json:"scope_match"`
	SupportCompatibility float64 `json:"support_compatibility"`
}

// SimilarityScore is the explainable four-dimensional similarity of one pair.
// Composite is only produced by the similarity engine.
type SimilarityScore struct {
	Structural            float64               `json:"structural"`
	Educational           float64               `json:"educational"`
	Semantic              float64               `json:"semantic"`
	Contextual            float64               `json:"contextual"`
	Composite             float64               `json:"composite"`
	StructuralComponents  StructuralComponents  `json:"structural_components"`
	EducationalComponents EducationalComponents `json:"educational_components"`
	ContextualComponents  ContextualComponents  `json:"contextual_components"`
	Weights               DimensionWeights      `json:"weights"`
	WeightProfile         string                `json:"weight_profile"`
	BoostFactor           float64               `json:"boost_factor"`
	SemanticProvided      bool                  `json:"semantic_provided"`
	Evidence              []string              `json:"evidence"`
}

// Dimensions returns the four dimension scores in a fixed order.
func (s SimilarityScore) Dimensions() [4]float64 {
	return [4]float64{s.Structural, s.Educational, s.Semantic, s.Contextual}
}

// CandidatePair is a record pair kept by the prefilter.
type CandidatePair struct {
	AIndex int     `json:"a_index"`
	BIndex int     `json:"b_index"`
	AID    string  `json:"skill_a_id"`
	BID    string  `json:"skill_b_id"`
	Proxy  float64 `json:"proxy_score"`
}

func joinLines(lines []string) string {
	return strings.Join(lines, "; ")
}

func joinKeys[V any](m map[string]V) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

func intOrEmpty(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
