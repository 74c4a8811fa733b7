// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/opportunity-matcher/internal/types"
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

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCandidateProfile outputs a human-readable summary of the CV analysis being matched
func (p *Printer) PrintCandidateProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if profile.Level != "" {
		sb.WriteString(fmt.Sprintf("Level:     %s\n", profile.Level))
	}
	if len(profile.Countries) > 0 {
		sb.WriteString(fmt.Sprintf("Countries: %s\n", strings.Join(profile.Countries, ", ")))
	}
	if len(profile.Languages) > 0 {
		sb.WriteString(fmt.Sprintf("Languages: %s\n", strings.Join(profile.Languages, ", ")))
	}

	if len(profile.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
	}

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the ranked matches with scores and breakdowns
func (p *Printer) PrintMatches(matches []types.ScoreBreakdown) {
	if len(matches) == 0 {
		p.printBox("RANKED MATCHES", "No matches")
		return
	}

	var sb strings.Builder

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, m.Details.Title))
		sb.WriteString(fmt.Sprintf("    %s — %s\n", m.Details.Organization, m.Details.Type))
		sb.WriteString(fmt.Sprintf("    Score: %.4f", m.MatchScore))
		sb.WriteString(fmt.Sprintf(" (skills %.2f, semantic %.2f, eligibility %.2f)\n",
			m.Breakdown.Skills, m.Breakdown.Semantic, m.Breakdown.Eligibility))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RANKED MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunMetadata outputs the run totals
func (p *Printer) PrintRunMetadata(meta *types.RunMetadata) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Evaluated:        %d\n", meta.TotalEvaluated))
	sb.WriteString(fmt.Sprintf("Quality matches:  %d\n", meta.TotalQualityMatches))
	sb.WriteString(fmt.Sprintf("Returned:         %d\n", meta.ReturnedMatches))
	sb.WriteString(fmt.Sprintf("Average score:    %.4f", meta.AverageScore))

	p.printBox("RUN SUMMARY", sb.String())
}
