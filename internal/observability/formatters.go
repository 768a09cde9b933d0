// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSummary outputs run counts and per-type, per-action and per-bucket tallies.
func (p *Printer) PrintSummary(stats *types.Stats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Records:         %d\n", stats.TotalRecords))
	sb.WriteString(fmt.Sprintf("Candidate pairs: %d\n", stats.CandidatePairs))
	sb.WriteString(fmt.Sprintf("Scored:          %d (skipped %d)\n", stats.ScoredPairs, stats.SkippedPairs))
	sb.WriteString(fmt.Sprintf("Dropped DISTINCT: %d\n", stats.DroppedDistinct))
	if stats.WeightProfile != "" {
		sb.WriteString(fmt.Sprintf("Weight profile:  %s\n", stats.WeightProfile))
	}
	sb.WriteString(fmt.Sprintf("Mean confidence: %.2f  Mean composite: %.2f\n", stats.MeanConfidence, stats.MeanComposite))

	sb.WriteString("\nRelationships:\n")
	for _, t := range types.AllRelationshipTypes() {
		if n := stats.ByRelationship[t]; n > 0 {
			sb.WriteString(fmt.Sprintf("  • %-22s %d\n", t, n))
		}
	}

	sb.WriteString("\nPriorities:\n")
	parts := make([]string, 0, len(types.AllPriorityBuckets()))
	for _, b := range types.AllPriorityBuckets() {
		parts = append(parts, fmt.Sprintf("%s=%d", b, stats.ByPriority[b]))
	}
	sb.WriteString("  " + strings.Join(parts, "  "))

	p.printBox("ANALYSIS SUMMARY", sb.String())
}

// PrintRecommendations outputs the highest-priority recommendations.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total recommendations: %d\n\n", len(recs)))

	count := min(len(recs), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := recs[i]
		sb.WriteString(fmt.Sprintf("#%d  [%s] %s\n", i+1, rec.Priority, rec.Action))
		sb.WriteString(fmt.Sprintf("    %s ↔ %s\n", skillLabel(rec.SkillAID, rec.SkillAName), skillLabel(rec.SkillBID, rec.SkillBName)))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  Confidence: %.2f\n", rec.PriorityScore, rec.Confidence))
		if rec.SuggestedName != "" {
			sb.WriteString(fmt.Sprintf("    Suggested: %s\n", rec.SuggestedName))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(recs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more recommendations", len(recs)-maxItemsToShow))
	}

	p.printBox("TOP RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComparison outputs one scored, classified and recommended pair.
func (p *Printer) PrintComparison(rel types.SkillRelationship, rec types.Recommendation) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("A: %s\n", skillLabel(rel.SkillAID, rel.SkillAName)))
	sb.WriteString(fmt.Sprintf("B: %s\n\n", skillLabel(rel.SkillBID, rel.SkillBName)))

	s := rel.Scores
	sb.WriteString(fmt.Sprintf("Structural %.2f  Educational %.2f\n", s.Structural, s.Educational))
	sb.WriteString(fmt.Sprintf("Semantic   %.2f  Contextual  %.2f\n", s.Semantic, s.Contextual))
	sb.WriteString(fmt.Sprintf("Composite  %.2f  (%s)\n\n", s.Composite, s.WeightProfile))

	sb.WriteString(fmt.Sprintf("Relationship: %s (confidence %.2f)\n", rel.Type, rel.Confidence))
	sb.WriteString(fmt.Sprintf("Action:       %s [%s]\n", rec.Action, rec.Priority))

	if len(rel.Evidence) > 0 {
		sb.WriteString("\nEvidence:\n")
		count := min(len(rel.Evidence), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", rel.Evidence[i]))
		}
	}

	p.printBox("PAIR COMPARISON", strings.TrimSuffix(sb.String(), "\n"))
}

func skillLabel(id, name string) string {
	if name == "" {
		return id
	}
	return fmt.Sprintf("%s (%s)", name, id)
}

// truncate shortens s to at most width runes.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
