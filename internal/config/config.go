// Package config provides the engine configuration: weights, thresholds and
// ordered vocabularies that parameterize every analysis component.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

// Config is the complete engine configuration. It is pure data; components
// receive it by value and clone it, so no component shares mutable state.
type Config struct {
	Weights         types.DimensionWeights            `json:"weights" yaml:"weights"`
	AdaptiveWeights map[string]types.DimensionWeights `json:"adaptive_weights" yaml:"adaptive_weights" validate:"dive"`
	Structural      StructuralWeights                 `json:"structural" yaml:"structural"`
	Educational     EducationalWeights                `json:"educational" yaml:"educational"`
	Contextual      ContextualWeights                 `json:"contextual" yaml:"contextual"`
	Boosts          Boosts                            `json:"boosts" yaml:"boosts"`
	Thresholds      Thresholds                        `json:"thresholds" yaml:"thresholds"`
	Priority        Priority                          `json:"priority" yaml:"priority"`
	Vocabulary      Vocabulary                        `json:"vocabulary" yaml:"vocabulary"`
	Prefilter       Prefilter                         `json:"prefilter" yaml:"prefilter"`
}

// StructuralWeights weights the three set overlaps of the structural dimension.
type StructuralWeights struct {
	Action  float64 `json:"action" yaml:"action" validate:"gte=0,lte=1"`
	Target  float64 `json:"target" yaml:"target" validate:"gte=0,lte=1"`
	Concept float64 `json:"concept" yaml:"concept" validate:"gte=0,lte=1"`
}

// EducationalWeights weights the sub-scores of the educational dimension.
type EducationalWeights struct {
	Cognitive  float64 `json:"cognitive" yaml:"cognitive" validate:"gte=0,lte=1"`
	Complexity float64 `json:"complexity" yaml:"complexity" validate:"gte=0,lte=1"`
	Domain     float64 `json:"domain" yaml:"domain" validate:"gte=0,lte=1"`
	TextType   float64 `json:"text_type" yaml:"text_type" validate:"gte=0,lte=1"`
}

// ContextualWeights weights the sub-scores of the contextual dimension.
type ContextualWeights struct {
	Grade   float64 `json:"grade" yaml:"grade" validate:"gte=0,lte=1"`
	Scope   float64 `json:"scope" yaml:"scope" validate:"gte=0,lte=1"`
	Support float64 `json:"support" yaml:"support" validate:"gte=0,lte=1"`
}

// Boosts are the composite score multipliers applied after weighting.
type Boosts struct {
	StructuralThreshold float64 `json:"structural_threshold" yaml:"structural_threshold" validate:"gte=0,lte=1"`
	Structural          float64 `json:"structural" yaml:"structural" validate:"gte=0,lte=1"`
	SemanticThreshold   float64 `json:"semantic_threshold" yaml:"semantic_threshold" validate:"gte=0,lte=1"`
	SameGradeSemantic   float64 `json:"same_grade_semantic" yaml:"same_grade_semantic" validate:"gte=0,lte=1"`
}

// Thresholds holds the per-relationship classification cut points.
type Thresholds struct {
	TrueDuplicate        TrueDuplicateThresholds        `json:"true_duplicate" yaml:"true_duplicate"`
	SpecificationVariant SpecificationVariantThresholds `json:"specification_variant" yaml:"specification_variant"`
	Prerequisite         PrerequisiteThresholds         `json:"prerequisite" yaml:"prerequisite"`
	Progression          ProgressionThresholds          `json:"progression" yaml:"progression"`
	Complementary        ComplementaryThresholds        `json:"complementary" yaml:"complementary"`
	AmbiguousMin         float64                        `json:"ambiguous_min" yaml:"ambiguous_min" validate:"gte=0,lte=1"`
	AmbiguousConfidence  float64                        `json:"ambiguous_confidence" yaml:"ambiguous_confidence" validate:"gte=0,lte=1"`
	DistinctConfidence   float64                        `json:"distinct_confidence" yaml:"distinct_confidence" validate:"gte=0,lte=1"`
}

// TrueDuplicateThresholds are the minimums for a TRUE_DUPLICATE.
type TrueDuplicateThresholds struct {
	Composite   float64 `json:"composite" yaml:"composite" validate:"gte=0,lte=1"`
	Structural  float64 `json:"structural" yaml:"structural" validate:"gte=0,lte=1"`
	Educational float64 `json:"educational" yaml:"educational" validate:"gte=0,lte=1"`
	Confidence  float64 `json:"confidence" yaml:"confidence" validate:"gte=0,lte=1"`
}

// SpecificationVariantThresholds are the cut points for a SPECIFICATION_VARIANT.
type SpecificationVariantThresholds struct {
	Composite     float64 `json:"composite" yaml:"composite" validate:"gte=0,lte=1"`
	Structural    float64 `json:"structural" yaml:"structural" validate:"gte=0,lte=1"`
	Educational   float64 `json:"educational" yaml:"educational" validate:"gte=0,lte=1"`
	ContextualMax float64 `json:"contextual_max" yaml:"contextual_max" validate:"gte=0,lte=1"`
	Confidence    float64 `json:"confidence" yaml:"confidence" validate:"gte=0,lte=1"`
}

// PrerequisiteThresholds are the cut points for a PREREQUISITE.
type PrerequisiteThresholds struct {
	Min         float64 `json:"min" yaml:"min" validate:"gte=0,lte=1"`
	Max         float64 `json:"max" yaml:"max" validate:"gte=0,lte=1"`
	Educational float64 `json:"educational" yaml:"educational" validate:"gte=0,lte=1"`
	Confidence  float64 `json:"confidence" yaml:"confidence" validate:"gte=0,lte=1"`
}

// ProgressionThresholds are the cut points for a PROGRESSION.
type ProgressionThresholds struct {
	Min                float64 `json:"min" yaml:"min" validate:"gte=0,lte=1"`
	Max                float64 `json:"max" yaml:"max" validate:"gte=0,lte=1"`
	Structural         float64 `json:"structural" yaml:"structural" validate:"gte=0,lte=1"`
	MinGradeDifference int     `json:"min_grade_difference" yaml:"min_grade_difference" validate:"gte=1"`
	Confidence         float64 `json:"confidence" yaml:"confidence" validate:"gte=0,lte=1"`
}

// ComplementaryThresholds are the cut points for a COMPLEMENTARY relationship.
type ComplementaryThresholds struct {
	Min        float64 `json:"min" yaml:"min" validate:"gte=0,lte=1"`
	Max        float64 `json:"max" yaml:"max" validate:"gte=0,lte=1"`
	Confidence float64 `json:"confidence" yaml:"confidence" validate:"gte=0,lte=1"`
}

// Priority configures recommendation priority scoring.
type Priority struct {
	Weights             PriorityWeights                    `json:"weights" yaml:"weights"`
	Buckets             PriorityBuckets                    `json:"buckets" yaml:"buckets"`
	Importance          map[types.RelationshipType]float64 `json:"importance" yaml:"importance" validate:"dive,gte=0,lte=1"`
	QualityConcern      map[types.RelationshipType]float64 `json:"quality_concern" yaml:"quality_concern" validate:"dive,gte=0,lte=1"`
	NeutralImpact       float64                            `json:"neutral_impact" yaml:"neutral_impact" validate:"gte=0,lte=1"`
	AmbiguousConfidence float64                            `json:"ambiguous_confidence" yaml:"ambiguous_confidence" validate:"gte=0,lte=1"`
	MergeQualityGap     float64                            `json:"merge_quality_gap" yaml:"merge_quality_gap" validate:"gte=0,lte=1"`
}

// PriorityWeights weights the four priority factors.
type PriorityWeights struct {
	Confidence     float64 `json:"confidence" yaml:"confidence" validate:"gte=0,lte=1"`
	Impact         float64 `json:"impact" yaml:"impact" validate:"gte=0,lte=1"`
	Importance     float64 `json:"importance" yaml:"importance" validate:"gte=0,lte=1"`
	QualityConcern float64 `json:"quality_concern" yaml:"quality_concern" validate:"gte=0,lte=1"`
}

// PriorityBuckets are the minimum scores for P0, P1 and P2; anything lower is P3.
type PriorityBuckets struct {
	P0 float64 `json:"p0" yaml:"p0" validate:"gte=0,lte=1"`
	P1 float64 `json:"p1" yaml:"p1" validate:"gte=0,lte=1"`
	P2 float64 `json:"p2" yaml:"p2" validate:"gte=0,lte=1"`
}

// Vocabulary holds the ordered categorical vocabularies.
type Vocabulary struct {
	GradeOrder           []string          `json:"grade_order" yaml:"grade_order" validate:"min=1"`
	GradeAliases         map[string]string `json:"grade_aliases" yaml:"grade_aliases"`
	CognitiveDemandOrder []string          `json:"cognitive_demand_order" yaml:"cognitive_demand_order" validate:"min=1"`
	ComplexityOrder      []string          `json:"complexity_order" yaml:"complexity_order" validate:"min=1"`
	SupportClusters      [][]string        `json:"support_clusters" yaml:"support_clusters"`
}

// Prefilter configures candidate pair pruning.
type Prefilter struct {
	Threshold float64 `json:"threshold" yaml:"threshold" validate:"gte=0,lte=1"`
	TopK      int     `json:"top_k" yaml:"top_k" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Weights: types.DimensionWeights{Structural: 0.35, Educational: 0.25, Semantic: 0.25, Contextual: 0.15},
		AdaptiveWeights: map[string]types.DimensionWeights{
			"structure_heavy": {Structural: 0.50, Educational: 0.20, Semantic: 0.15, Contextual: 0.15},
			"semantic_heavy":  {Structural: 0.20, Educational: 0.20, Semantic: 0.45, Contextual: 0.15},
			"no_semantic":     {Structural: 0.45, Educational: 0.35, Semantic: 0.00, Contextual: 0.20},
		},
		Structural:  StructuralWeights{Action: 0.4, Target: 0.4, Concept: 0.2},
		Educational: EducationalWeights{Cognitive: 0.35, Complexity: 0.25, Domain: 0.25, TextType: 0.15},
		Contextual:  ContextualWeights{Grade: 0.5, Scope: 0.25, Support: 0.25},
		Boosts: Boosts{
			StructuralThreshold: 0.95,
			Structural:          0.05,
			SemanticThreshold:   0.85,
			SameGradeSemantic:   0.03,
		},
		Thresholds: Thresholds{
			TrueDuplicate: TrueDuplicateThresholds{Composite: 0.90, Structural: 0.85, Educational: 0.80, Confidence: 0.95},
			SpecificationVariant: SpecificationVariantThresholds{
				Composite: 0.75, Structural: 0.70, Educational: 0.60, ContextualMax: 0.85, Confidence: 0.85,
			},
			Prerequisite:        PrerequisiteThresholds{Min: 0.55, Max: 0.85, Educational: 0.50, Confidence: 0.75},
			Progression:         ProgressionThresholds{Min: 0.45, Max: 0.80, Structural: 0.50, MinGradeDifference: 2, Confidence: 0.75},
			Complementary:       ComplementaryThresholds{Min: 0.40, Max: 0.75, Confidence: 0.65},
			AmbiguousMin:        0.50,
			AmbiguousConfidence: 0.40,
			DistinctConfidence:  0.90,
		},
		Priority: Priority{
			Weights: PriorityWeights{Confidence: 0.35, Impact: 0.25, Importance: 0.25, QualityConcern: 0.15},
			Buckets: PriorityBuckets{P0: 0.80, P1: 0.65, P2: 0.45},
			Importance: map[types.RelationshipType]float64{
				types.TrueDuplicate:        1.0,
				types.SpecificationVariant: 0.8,
				types.Prerequisite:         0.7,
				types.Progression:          0.6,
				types.Complementary:        0.4,
				types.Ambiguous:            0.5,
				types.Distinct:             0.0,
			},
			QualityConcern: map[types.RelationshipType]float64{
				types.TrueDuplicate:        1.0,
				types.SpecificationVariant: 0.6,
				types.Prerequisite:         0.3,
				types.Progression:          0.3,
				types.Complementary:        0.2,
				types.Ambiguous:            0.7,
				types.Distinct:             0.0,
			},
			NeutralImpact:       0.5,
			AmbiguousConfidence: 0.3,
			MergeQualityGap:     0.2,
		},
		Vocabulary: Vocabulary{
			GradeOrder: []string{"pk", "k", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"},
			GradeAliases: map[string]string{
				"prek":         "pk",
				"pre-k":        "pk",
				"pre_k":        "pk",
				"kindergarten": "k",
				"kg":           "k",
				"0":            "k",
			},
			CognitiveDemandOrder: []string{"remember", "understand", "apply", "analyze", "evaluate", "create"},
			ComplexityOrder:      []string{"simple", "moderate", "complex"},
			SupportClusters: [][]string{
				{"with_support", "with_prompting", "with_scaffolding"},
				{"independent", "independently", "without_support"},
			},
		},
		Prefilter: Prefilter{Threshold: 0.3, TopK: 20},
	}
}

// LoadConfig reads a YAML or JSON configuration file and overlays it onto
// the defaults. The merged configuration is validated before returning.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, &ConfigError{Field: "path", Message: "config path is empty"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &ConfigError{Field: "path", Message: fmt.Sprintf("failed to read config file %s", path), Cause: err}
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, &ConfigError{Field: "path", Message: "failed to parse config YAML", Cause: err}
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, &ConfigError{Field: "path", Message: "failed to parse config JSON", Cause: err}
		}
	default:
		return Config{}, &ConfigError{Field: "path", Message: fmt.Sprintf("unsupported config format %q", filepath.Ext(path))}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ToYAML renders the configuration as YAML.
func (c Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks field ranges and cross-field consistency.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return &ConfigError{Field: "config", Message: "invalid configuration", Cause: err}
	}

	if c.Weights.Sum() <= 0 {
		return &ConfigError{Field: "weights", Message: "dimension weights must not all be zero"}
	}
	for name, w := range c.AdaptiveWeights {
		if w.Sum() <= 0 {
			return &ConfigError{Field: "adaptive_weights." + name, Message: "dimension weights must not all be zero"}
		}
	}

	bands := []struct {
		field    string
		min, max float64
	}{
		{"thresholds.prerequisite", c.Thresholds.Prerequisite.Min, c.Thresholds.Prerequisite.Max},
		{"thresholds.progression", c.Thresholds.Progression.Min, c.Thresholds.Progression.Max},
		{"thresholds.complementary", c.Thresholds.Complementary.Min, c.Thresholds.Complementary.Max},
	}
	for _, b := range bands {
		if b.min > b.max {
			return &ConfigError{Field: b.field, Message: fmt.Sprintf("min %.2f exceeds max %.2f", b.min, b.max)}
		}
	}

	buckets := c.Priority.Buckets
	if !(buckets.P0 >= buckets.P1 && buckets.P1 >= buckets.P2) {
		return &ConfigError{Field: "priority.buckets", Message: "bucket thresholds must be descending (p0 >= p1 >= p2)"}
	}

	for t := range c.Priority.Importance {
		if !t.Valid() {
			return &ConfigError{Field: "priority.importance", Message: fmt.Sprintf("unknown relationship type %q", t)}
		}
	}
	for t := range c.Priority.QualityConcern {
		if !t.Valid() {
			return &ConfigError{Field: "priority.quality_concern", Message: fmt.Sprintf("unknown relationship type %q", t)}
		}
	}

	return nil
}

// WeightsFor returns the dimension weights for the named adaptive profile and
// the profile name actually applied. Unknown or empty names fall back to the
// default weights and report "default".
func (c Config) WeightsFor(profile string) (types.DimensionWeights, string) {
	if profile != "" {
		if w, ok := c.AdaptiveWeights[profile]; ok {
			return w, profile
		}
	}
	return c.Weights, "default"
}

// Clone returns a deep copy so the caller can hold it without sharing maps or slices.
func (c Config) Clone() Config {
	out := c

	out.AdaptiveWeights = make(map[string]types.DimensionWeights, len(c.AdaptiveWeights))
	for k, v := range c.AdaptiveWeights {
		out.AdaptiveWeights[k] = v
	}
	out.Priority.Importance = cloneTypeMap(c.Priority.Importance)
	out.Priority.QualityConcern = cloneTypeMap(c.Priority.QualityConcern)

	out.Vocabulary.GradeOrder = append([]string(nil), c.Vocabulary.GradeOrder...)
	out.Vocabulary.CognitiveDemandOrder = append([]string(nil), c.Vocabulary.CognitiveDemandOrder...)
	out.Vocabulary.ComplexityOrder = append([]string(nil), c.Vocabulary.ComplexityOrder...)
	out.Vocabulary.GradeAliases = make(map[string]string, len(c.Vocabulary.GradeAliases))
	for k, v := range c.Vocabulary.GradeAliases {
		out.Vocabulary.GradeAliases[k] = v
	}
	out.Vocabulary.SupportClusters = make([][]string, len(c.Vocabulary.SupportClusters))
	for i, cluster := range c.Vocabulary.SupportClusters {
		out.Vocabulary.SupportClusters[i] = append([]string(nil), cluster...)
	}
	return out
}

func cloneTypeMap(m map[types.RelationshipType]float64) map[types.RelationshipType]float64 {
	out := make(map[types.RelationshipType]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
