// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/candidate-ranker/internal/pipeline"
	"github.com/jonathan/candidate-ranker/internal/types"
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

// PrintMergedTaxonomy outputs a human-readable summary of a merged taxonomy.
func (p *Printer) PrintMergedTaxonomy(merged types.MergedTaxonomy) {
	if merged == nil {
		return
	}

	canonicals := make([]string, 0, len(merged))
	for canonical := range merged {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Canonical skills: %d\n\n", len(merged)))

	count := min(len(canonicals), maxItemsToShow)
	for i := 0; i < count; i++ {
		canonical := canonicals[i]
		sb.WriteString(fmt.Sprintf("  • %s → %s\n", canonical, strings.Join(merged[canonical], ", ")))
	}
	if len(canonicals) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(canonicals)-maxItemsToShow))
	}

	p.printBox("Merged Taxonomy", sb.String())
}

// PrintRankedResults outputs a ranking table for a vacancy.
func (p *Printer) PrintRankedResults(vacancy *types.Vacancy, results []pipeline.RankedResult) {
	if vacancy == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Vacancy:    %s\n", vacancy.Title))
	sb.WriteString(fmt.Sprintf("Candidates: %d\n\n", len(results)))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results[i]
		line := fmt.Sprintf("%2d. %.1f (%s)", i+1, r.Rank.RankScore, r.Rank.Recommendation)
		if r.UsedFallback {
			line += " [fallback]"
		}
		sb.WriteString(line + "\n")
	}
	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(results)-maxItemsToShow))
	}

	p.printBox("Candidate Ranking", sb.String())
}

// PrintDegradationReport outputs a degradation report summary.
func (p *Printer) PrintDegradationReport(report types.DegradationReport) {
	var sb strings.Builder

	status := "OK"
	if report.IsDegraded {
		status = "DEGRADED"
	}
	sb.WriteString(fmt.Sprintf("Status:    %s\n", status))
	sb.WriteString(fmt.Sprintf("Threshold: %.2f\n\n", report.Threshold))

	names := make([]string, 0, len(report.Deltas))
	for name := range report.Deltas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		marker := " "
		for _, degraded := range report.DegradedMetrics {
			if degraded == name {
				marker = "!"
			}
		}
		sb.WriteString(fmt.Sprintf("%s %-10s %+.3f\n", marker, name, report.Deltas[name]))
	}

	p.printBox("Model Performance", sb.String())
}
