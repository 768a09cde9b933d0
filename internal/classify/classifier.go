package classify

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/config"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/similarity"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

// relationshipNamespace scopes the name-based relationship UUIDs.
var relationshipNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("skill-redundancy/relationship"))

// Classifier turns similarity scores into typed relationships.
// It holds only immutable configuration and is safe for concurrent use.
type Classifier struct {
	thresholds config.Thresholds
	vocab      *similarity.Vocabulary
	rules      []Rule
}

// NewClassifier builds a classifier from cfg. cfg is copied.
func NewClassifier(cfg config.Config) *Classifier {
	cfg = cfg.Clone()
	return &Classifier{
		thresholds: cfg.Thresholds,
		vocab:      similarity.NewVocabulary(cfg.Vocabulary),
		rules:      Rules(cfg.Thresholds),
	}
}

// Rules returns the classifier's rule chain in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Input assembles the rule input for a pair, resolving grade and cognitive
// ordinals through the configured vocabulary.
func (c *Classifier) Input(score types.SimilarityScore, a, b types.SkillRecord) Input {
	in := Input{Score: score, A: a, B: b}
	in.GradeDiff, in.GradeOK = c.vocab.GradeDifference(a.GradeLevel, b.GradeLevel)
	in.CognitiveDiff, in.CognitiveOK = c.vocab.CognitiveDifference(a.CognitiveDemand, b.CognitiveDemand)
	return in
}

// Classify assigns exactly one relationship type to the pair. The first rule
// whose predicate holds wins; otherwise the composite decides between
// AMBIGUOUS and DISTINCT. Classify is pure: the same inputs always give the
// same relationship.
func (c *Classifier) Classify(score types.SimilarityScore, a, b types.SkillRecord) types.SkillRelationship {
	in := c.Input(score, a, b)

	rule, outcome := c.decide(in)

	rel := types.SkillRelationship{
		ID:                       RelationshipID(a.ID, b.ID),
		SkillAID:                 a.ID,
		SkillBID:                 b.ID,
		SkillAName:               a.DisplayName(),
		SkillBName:               b.DisplayName(),
		Type:                     rule.Type,
		Confidence:               Confidence(rule.BaseConfidence, score, outcome.Margin, a, b),
		Rule:                     rule.Name,
		Scores:                   score,
		SpecificationDifferences: outcome.SpecificationDifferences,
	}

	rel.Evidence = make([]string, 0, len(outcome.Evidence)+len(score.Evidence))
	rel.Evidence = append(rel.Evidence, outcome.Evidence...)
	rel.Evidence = append(rel.Evidence, score.Evidence...)

	if in.GradeOK {
		d := in.GradeDiff
		rel.GradeDifference = &d
	}
	if in.CognitiveOK {
		d := in.CognitiveDiff
		rel.CognitiveDifference = &d
	}
	return rel
}

func (c *Classifier) decide(in Input) (Rule, Outcome) {
	for _, rule := range c.rules {
		if rule.Matches(in) {
			return rule, rule.Build(in)
		}
	}

	composite := in.Score.Composite
	if composite >= c.thresholds.AmbiguousMin {
		return Rule{Name: DefaultRuleName, Type: types.Ambiguous, BaseConfidence: c.thresholds.AmbiguousConfidence},
			Outcome{
				Margin:   composite - c.thresholds.AmbiguousMin,
				Evidence: []string{fmt.Sprintf("composite %.2f is similar enough to review but matched no rule", composite)},
			}
	}
	return Rule{Name: DefaultRuleName, Type: types.Distinct, BaseConfidence: c.thresholds.DistinctConfidence},
		Outcome{
			Margin:   c.thresholds.AmbiguousMin - composite,
			Evidence: []string{fmt.Sprintf("composite %.2f below review threshold %.2f", composite, c.thresholds.AmbiguousMin)},
		}
}

// RelationshipID derives a stable id for the unordered pair (idA, idB).
// RelationshipID(a, b) == RelationshipID(b, a).
func RelationshipID(idA, idB string) string {
	if idB < idA {
		idA, idB = idB, idA
	}
	return uuid.NewSHA1(relationshipNamespace, []byte(idA+"\x00"+idB)).String()
}
