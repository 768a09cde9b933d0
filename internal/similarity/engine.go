package similarity

import (
	"math"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/config"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

// Engine scores record pairs on the structural, educational, semantic and
// contextual dimensions and combines them into a composite.
type Engine struct {
	cfg   config.Config
	vocab *Vocabulary
}

// NewEngine builds an engine over a private copy of cfg.
func NewEngine(cfg config.Config) *Engine {
	cfg = cfg.Clone()
	return &Engine{cfg: cfg, vocab: NewVocabulary(cfg.Vocabulary)}
}

// Vocabulary exposes the compiled vocabularies so later stages resolve
// grades and cognitive demand exactly as scoring did.
func (e *Engine) Vocabulary() *Vocabulary {
	return e.vocab
}

// Score computes the similarity of a and b with the default weights.
// semantic is the externally supplied semantic similarity; nil scores the
// semantic dimension as 0.
func (e *Engine) Score(a, b types.SkillRecord, semantic *float64) (types.SimilarityScore, error) {
	return e.ScoreWithProfile(a, b, semantic, "")
}

// ScoreWithProfile computes the similarity of a and b using the named
// adaptive weight profile. Unknown profile names use the default weights.
func (e *Engine) ScoreWithProfile(a, b types.SkillRecord, semantic *float64, profile string) (types.SimilarityScore, error) {
	semanticValue := 0.0
	if semantic != nil {
		v := *semantic
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
			return types.SimilarityScore{}, &ScoreError{
				SkillAID: a.ID,
				SkillBID: b.ID,
				Message:  "semantic similarity must be within [0, 1]",
			}
		}
		semanticValue = v
	}

	structural, sc := e.structural(a, b)
	educational, ec := e.educational(a, b)
	contextual, cc := e.contextual(a, b)

	weights, profileName := e.cfg.WeightsFor(profile)
	raw := weights.Structural*structural +
		weights.Educational*educational +
		weights.Semantic*semanticValue +
		weights.Contextual*contextual

	boost := 0.0
	if structural >= e.cfg.Boosts.StructuralThreshold {
		boost += e.cfg.Boosts.Structural
	}
	if e.sameGrade(a, b) && semanticValue >= e.cfg.Boosts.SemanticThreshold {
		boost += e.cfg.Boosts.SameGradeSemantic
	}
	factor := 1.0 + boost

	score := types.SimilarityScore{
		Structural:            structural,
		Educational:           educational,
		Semantic:              semanticValue,
		Contextual:            contextual,
		Composite:             clamp01(raw * factor),
		StructuralComponents:  sc,
		EducationalComponents: ec,
		ContextualComponents:  cc,
		Weights:               weights,
		WeightProfile:         profileName,
		BoostFactor:           factor,
		SemanticProvided:      semantic != nil,
	}
	score.Evidence = e.evidence(a, b, score)
	return score, nil
}

// structural averages the action, target and concept set overlaps.
func (e *Engine) structural(a, b types.SkillRecord) (float64, types.StructuralComponents) {
	c := types.StructuralComponents{
		ActionOverlap:  Jaccard(a.ActionVerbs, b.ActionVerbs),
		TargetOverlap:  Jaccard(a.TargetNouns, b.TargetNouns),
		ConceptOverlap: Jaccard(a.KeyConcepts, b.KeyConcepts),
	}
	w := e.cfg.Structural
	return weightedAverage(
		[]float64{c.ActionOverlap, c.TargetOverlap, c.ConceptOverlap},
		[]float64{w.Action, w.Target, w.Concept},
	), c
}

// educational compares cognitive demand, task complexity, domain and text types.
func (e *Engine) educational(a, b types.SkillRecord) (float64, types.EducationalComponents) {
	c := types.EducationalComponents{
		CognitiveMatch:       binaryMatch(a.CognitiveDemand, b.CognitiveDemand),
		ComplexitySimilarity: e.vocab.ComplexitySimilarity(a.TaskComplexity, b.TaskComplexity),
		DomainMatch:          binaryMatch(a.SkillDomain, b.SkillDomain),
		TextTypeOverlap:      Jaccard(a.TextTypes, b.TextTypes),
	}
	w := e.cfg.Educational
	return weightedAverage(
		[]float64{c.CognitiveMatch, c.ComplexitySimilarity, c.DomainMatch, c.TextTypeOverlap},
		[]float64{w.Cognitive, w.Complexity, w.Domain, w.TextType},
	), c
}

// contextual compares grade, scope and support level.
func (e *Engine) contextual(a, b types.SkillRecord) (float64, types.ContextualComponents) {
	c := types.ContextualComponents{
		GradeCompatibility:   e.vocab.GradeCompatibility(a.GradeLevel, b.GradeLevel),
		ScopeMatch:           binaryMatch(a.Scope, b.Scope),
		SupportCompatibility: e.vocab.SupportCompatibility(a.SupportLevel, b.SupportLevel),
	}
	w := e.cfg.Contextual
	return weightedAverage(
		[]float64{c.GradeCompatibility, c.ScopeMatch, c.SupportCompatibility},
		[]float64{w.Grade, w.Scope, w.Support},
	), c
}

// sameGrade compares mapped grades, so "3" and "Grade 3" are the same grade.
func (e *Engine) sameGrade(a, b types.SkillRecord) bool {
	if d, ok := e.vocab.GradeDifference(a.GradeLevel, b.GradeLevel); ok {
		return d == 0
	}
	return a.GradeLevel != "" && a.GradeLevel == b.GradeLevel
}
