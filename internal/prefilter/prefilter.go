// Package prefilter prunes the full record-pair space down to candidate pairs
// worth scoring, using cheap set-overlap heuristics.
package prefilter

import (
	"sort"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/similarity"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

// Proxy is the cheap structural proxy: the mean of the action-set and
// target-set Jaccard similarities.
func Proxy(a, b types.SkillRecord) float64 {
	return (similarity.Jaccard(a.ActionVerbs, b.ActionVerbs) + similarity.Jaccard(a.TargetNouns, b.TargetNouns)) / 2
}

// hasStructure reports whether a record has the action and target sets the
// proxy needs. Records without them cannot be meaningfully compared.
func hasStructure(r types.SkillRecord) bool {
	return !r.ActionVerbs.IsEmpty() && !r.TargetNouns.IsEmpty()
}

// Candidates returns the record pairs whose proxy score meets threshold.
// For each record only the topK highest-proxy partners are kept (topK <= 0
// keeps all); ties keep the partner encountered first. Pairs are unique by
// unordered id and returned in record order.
//
// The prefilter trades recall for speed: it may miss true relationships, and
// it never classifies a pair itself.
func Candidates(records []types.SkillRecord, threshold float64, topK int) []types.CandidatePair {
	seen := make(map[[2]string]struct{})
	var out []types.CandidatePair

	for i := range records {
		if !hasStructure(records[i]) {
			continue
		}

		var row []types.CandidatePair
		for j := i + 1; j < len(records); j++ {
			if !hasStructure(records[j]) {
				continue
			}
			if records[i].ID == records[j].ID {
				continue
			}
			proxy := Proxy(records[i], records[j])
			if proxy < threshold {
				continue
			}
			row = append(row, types.CandidatePair{
				AIndex: i,
				BIndex: j,
				AID:    records[i].ID,
				BID:    records[j].ID,
				Proxy:  proxy,
			})
		}

		sort.SliceStable(row, func(x, y int) bool {
			return row[x].Proxy > row[y].Proxy
		})
		if topK > 0 && len(row) > topK {
			row = row[:topK]
		}

		for _, p := range row {
			key := unorderedKey(p.AID, p.BID)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, p)
		}
	}

	return out
}

func unorderedKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}
