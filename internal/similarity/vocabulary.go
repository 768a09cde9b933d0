package similarity

import (
	"math"
	"strings"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/config"
)

// Vocabulary resolves categorical labels to ordinal positions.
//
// Unknown labels are not errors: every lookup reports ok=false and the
// callers degrade the affected sub-score to 0 or to a neutral value. This is
// the partial-evidence policy; a record with an unmapped grade is still
// compared on everything else.
type Vocabulary struct {
	grades     map[string]int
	aliases    map[string]string
	cognitive  map[string]int
	complexity map[string]int
	complexN   int
	clusters   map[string]int
}

// NewVocabulary compiles the ordered vocabularies of cfg into lookup tables.
func NewVocabulary(cfg config.Vocabulary) *Vocabulary {
	v := &Vocabulary{
		grades:     indexOf(cfg.GradeOrder),
		aliases:    make(map[string]string, len(cfg.GradeAliases)),
		cognitive:  indexOf(cfg.CognitiveDemandOrder),
		complexity: indexOf(cfg.ComplexityOrder),
		complexN:   len(cfg.ComplexityOrder),
		clusters:   make(map[string]int),
	}
	for k, val := range cfg.GradeAliases {
		v.aliases[normalizeLabel(k)] = normalizeLabel(val)
	}
	for i, cluster := range cfg.SupportClusters {
		for _, member := range cluster {
			v.clusters[normalizeLabel(member)] = i
		}
	}
	return v
}

func indexOf(order []string) map[string]int {
	m := make(map[string]int, len(order))
	for i, label := range order {
		m[normalizeLabel(label)] = i
	}
	return m
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "_")
}

// GradeIndex maps a grade label to its integer position.
// Accepts forms like "3", "grade_3", "Grade 3", "3rd", "3rd_grade", "K", "kindergarten".
func (v *Vocabulary) GradeIndex(label string) (int, bool) {
	s := normalizeLabel(label)
	if s == "" {
		return 0, false
	}
	if i, ok := v.grades[s]; ok {
		return i, true
	}

	s = strings.TrimPrefix(s, "grade")
	s = strings.TrimSuffix(s, "grade")
	s = strings.Trim(s, "_-. ")
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if trimmed := strings.TrimSuffix(s, suffix); trimmed != s && isDigits(trimmed) {
			s = trimmed
			break
		}
	}
	if isDigits(s) {
		s = strings.TrimLeft(s, "0")
		if s == "" {
			s = "0"
		}
	}
	if alias, ok := v.aliases[s]; ok {
		s = alias
	}
	i, ok := v.grades[s]
	return i, ok
}

// GradeDifference returns grade(b) - grade(a) when both grades map.
func (v *Vocabulary) GradeDifference(a, b string) (int, bool) {
	ia, okA := v.GradeIndex(a)
	ib, okB := v.GradeIndex(b)
	if !okA || !okB {
		return 0, false
	}
	return ib - ia, true
}

// GradeCompatibility is 1.0 for the same grade, 0.5 for adjacent grades and
// max(0, 0.5-(d-1)*0.1) beyond that. An unmapped grade yields 0.
func (v *Vocabulary) GradeCompatibility(a, b string) float64 {
	diff, ok := v.GradeDifference(a, b)
	if !ok {
		return 0.0
	}
	d := diff
	if d < 0 {
		d = -d
	}
	switch d {
	case 0:
		return 1.0
	case 1:
		return 0.5
	}
	return math.Max(0, 0.5-float64(d-1)*0.1)
}

// CognitiveIndex maps a cognitive-demand label to its ordinal.
func (v *Vocabulary) CognitiveIndex(label string) (int, bool) {
	i, ok := v.cognitive[normalizeLabel(label)]
	return i, ok
}

// CognitiveDifference returns demand(b) - demand(a) when both labels map.
func (v *Vocabulary) CognitiveDifference(a, b string) (int, bool) {
	ia, okA := v.CognitiveIndex(a)
	ib, okB := v.CognitiveIndex(b)
	if !okA || !okB {
		return 0, false
	}
	return ib - ia, true
}

// ComplexitySimilarity is 1 - |i-j|/(n-1) over the complexity order. It is 0
// when either value is outside the vocabulary or the vocabulary has one entry.
func (v *Vocabulary) ComplexitySimilarity(a, b string) float64 {
	if v.complexN <= 1 {
		return 0.0
	}
	ia, okA := v.complexity[normalizeLabel(a)]
	ib, okB := v.complexity[normalizeLabel(b)]
	if !okA || !okB {
		return 0.0
	}
	d := math.Abs(float64(ia - ib))
	return 1.0 - d/float64(v.complexN-1)
}

// SupportCompatibility is 1.0 for identical levels, 0.7 when both levels sit
// in the same synonym cluster, 0.5 when either level is empty or unknown,
// and 0 for levels from different clusters.
func (v *Vocabulary) SupportCompatibility(a, b string) float64 {
	na, nb := normalizeLabel(a), normalizeLabel(b)
	if na == "" || nb == "" {
		return 0.5
	}
	if na == nb {
		return 1.0
	}
	ca, okA := v.clusters[na]
	cb, okB := v.clusters[nb]
	if !okA || !okB {
		return 0.5
	}
	if ca == cb {
		return 0.7
	}
	return 0.0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
