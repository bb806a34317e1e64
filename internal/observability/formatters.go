// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/matthias/jobad-composer/internal/curation"
	"github.com/matthias/jobad-composer/internal/swissgerman"
	"github.com/matthias/jobad-composer/internal/types"
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

// PrintStyleProfile outputs the routed tone profile with its rationale.
func (p *Printer) PrintStyleProfile(profile types.StyleProfile) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Primary:   %s\n", profile.PrimaryColor))
	if profile.SecondaryColor != "" {
		sb.WriteString(fmt.Sprintf("Secondary: %s\n", profile.SecondaryColor))
	}
	sb.WriteString(fmt.Sprintf("Mode:      %s\n", profile.InteractionMode))
	sb.WriteString(fmt.Sprintf("Frame:     %s\n", profile.ReferenceFrame))
	if profile.ScoringRationale != "" {
		sb.WriteString("\nScores: " + profile.ScoringRationale + "\n")
	}
	if len(profile.Constraints) > 0 {
		sb.WriteString("\nHard constraints:\n")
		for _, c := range profile.Constraints {
			sb.WriteString("  • " + c + "\n")
		}
	}

	p.printBox("STYLE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStyleKit outputs a compact summary of the assembled style kit.
func (p *Printer) PrintStyleKit(kit *types.StyleKit) {
	if kit == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rules: %d  Adjectives: %d  Hooks: %d  Syntax: %d\n",
		len(kit.DoAndDont), len(kit.PreferredAdjectives), len(kit.HookTemplates), len(kit.SyntaxConstraints)))

	if len(kit.PreferredAdjectives) > 0 {
		adjectives := strings.Join(kit.PreferredAdjectives, ", ")
		if len(adjectives) > 48 {
			adjectives = adjectives[:45] + "..."
		}
		sb.WriteString("Adjectives: " + adjectives + "\n")
	}
	count := min(len(kit.HookTemplates), 2)
	for i := 0; i < count; i++ {
		sb.WriteString("Hook: " + kit.HookTemplates[i] + "\n")
	}

	p.printBox("STYLE KIT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDuties outputs the resolved duty bullets and which cascade tier
// produced them.
func (p *Printer) PrintDuties(duties []string, source string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source: %s\n", source))

	if len(duties) == 0 {
		sb.WriteString("No pre-resolved duties; the drafter generates them.")
	} else {
		sb.WriteString("\n")
		count := min(len(duties), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString("  • " + duties[i] + "\n")
		}
		if len(duties) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(duties)-maxItemsToShow))
		}
	}

	p.printBox("RESOLVED DUTIES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs the candidate ranking from the curation step.
func (p *Printer) PrintRanking(ranking []curation.RankingEntry, scoringUnavailable bool) {
	if len(ranking) == 0 {
		return
	}

	var sb strings.Builder
	if scoringUnavailable {
		sb.WriteString("Judge unavailable: all scores 0.0, first draft wins.\n\n")
	}
	for i, entry := range ranking {
		sb.WriteString(fmt.Sprintf("#%d  score %.2f\n", entry.Rank, entry.Score))
		sb.WriteString("    " + entry.Preview + "\n")
		if i < len(ranking)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CANDIDATE RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobBody outputs the winning job advertisement in full.
func (p *Printer) PrintJobBody(body types.JobBody) {
	var sb strings.Builder

	sb.WriteString(body.JobDescription + "\n")

	sections := []struct {
		title string
		items []string
	}{
		{"Requirements", body.Requirements},
		{"Benefits", body.Benefits},
		{"Duties", body.Duties},
	}
	for _, section := range sections {
		if len(section.items) == 0 {
			continue
		}
		sb.WriteString("\n" + section.title + ":\n")
		for _, item := range section.items {
			sb.WriteString("  • " + item + "\n")
		}
	}
	if body.Summary != "" {
		sb.WriteString("\n" + body.Summary + "\n")
	}

	p.printBox("JOB ADVERTISEMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSwissReport outputs the Swiss German compliance report for German
// output.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSwissReport(report *swissgerman.Report) {
	if report == nil {
		return
	}
	if report.Clean() {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ SWISS GERMAN CHECK PASSED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	if !report.PronounConsistent {
		sb.WriteString(fmt.Sprintf("⚠ Pronoun register: %d violation(s)\n", report.PronounViolations))
	}
	if !report.VocabularyClean {
		sb.WriteString(fmt.Sprintf("⚠ DE-DE vocabulary: %d occurrence(s)\n", report.VocabularyViolations))
		count := min(len(report.VocabularyDetails), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString("  • " + report.VocabularyDetails[i] + "\n")
		}
		if len(report.VocabularyDetails) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.VocabularyDetails)-maxItemsToShow))
		}
	}

	p.printBox("SWISS GERMAN CHECK", strings.TrimSuffix(sb.String(), "\n"))
}
