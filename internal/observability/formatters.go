// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	boxWidth       = 60
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScore outputs a human-readable summary of the ATS score.
func (p *Printer) PrintScore(score types.ATSScore) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:      %3d  (%s)\n", score.Overall, score.Grade))
	sb.WriteString(fmt.Sprintf("Keywords:     %3d\n", score.KeywordMatch))
	sb.WriteString(fmt.Sprintf("Formatting:   %3d\n", score.Formatting))
	sb.WriteString(fmt.Sprintf("Readability:  %3d\n", score.Readability))
	sb.WriteString("\n")
	sb.WriteString(score.Description)
	p.printBox("ATS Score", sb.String())
}

// PrintAnalysisResult outputs the full analysis summary.
func (p *Printer) PrintAnalysisResult(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	p.PrintScore(result.Score)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found:   %d\n", len(result.FoundKeywords)))
	sb.WriteString(truncateList(result.FoundKeywords))
	sb.WriteString(fmt.Sprintf("\nMissing: %d\n", len(result.MissingKeywords)))
	sb.WriteString(truncateList(result.MissingKeywords))
	p.printBox("Keywords", sb.String())

	if len(result.Suggestions) > 0 {
		sb.Reset()
		for _, s := range result.Suggestions {
			sb.WriteString(fmt.Sprintf("[%s] %s\n", s.Priority, s.Title))
		}
		p.printBox("Suggestions", strings.TrimRight(sb.String(), "\n"))
	}

	if result.JobRoleAnalysis != nil {
		p.PrintRoleAnalysis(result.JobRoleAnalysis)
	}
}

// PrintRoleAnalysis outputs the detected job role profile.
func (p *Printer) PrintRoleAnalysis(role *types.JobRoleAnalysis) {
	if role == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Primary:    %s\n", role.PrimaryRole))
	if len(role.SecondaryRoles) > 0 {
		sb.WriteString(fmt.Sprintf("Secondary:  %s\n", strings.Join(role.SecondaryRoles, ", ")))
	}
	if role.Industry != "" {
		sb.WriteString(fmt.Sprintf("Industry:   %s\n", role.Industry))
	}
	if role.SeniorityLevel != "" {
		sb.WriteString(fmt.Sprintf("Seniority:  %s\n", role.SeniorityLevel))
	}
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", role.Confidence))
	if len(role.RecommendedCategories) > 0 {
		sb.WriteString(fmt.Sprintf("Categories: %s", strings.Join(role.RecommendedCategories, ", ")))
	}
	p.printBox("Detected Role", sb.String())
}

func truncateList(items []string) string {
	if len(items) == 0 {
		return "  (none)"
	}
	shown := items
	suffix := ""
	if len(items) > maxItemsToShow {
		shown = items[:maxItemsToShow]
		suffix = fmt.Sprintf(", … %d more", len(items)-maxItemsToShow)
	}
	return "  " + strings.Join(shown, ", ") + suffix
}
