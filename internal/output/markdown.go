package output

import (
	"fmt"
	"os"
	"strings"
)

// MarkdownFormatter formats an audit report as a markdown document,
// suitable for dropping into an issue or a report file.
type MarkdownFormatter struct {
	outputFile string
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{outputFile: outputFile}
}

// Format renders the report and writes it to the output file or stdout.
func (f *MarkdownFormatter) Format(r Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Agent Readability Audit\n\n")
	fmt.Fprintf(&b, "**URL:** %s\n\n", r.Result.URL)
	fmt.Fprintf(&b, "**Score:** %d/100 (%s) - %s\n\n", r.Result.TotalScore, r.Result.Grade, r.Result.GradeDescription)
	fmt.Fprintf(&b, "**Context:** %s | **Audited:** %s\n\n", r.Result.Context, r.Result.Timestamp.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Categories\n\n")
	b.WriteString("| Category | Score | Weight | Pass | Warn | Fail |\n")
	b.WriteString("|----------|------:|-------:|-----:|-----:|-----:|\n")
	for _, cs := range r.Result.Ordered() {
		pass, warn, fail := cs.Counts()
		fmt.Fprintf(&b, "| %s | %.1f | %.0f%% | %d | %d | %d |\n",
			cs.CategoryName, cs.Score, cs.Weight*100, pass, warn, fail)
	}
	b.WriteString("\n")

	b.WriteString("## Factor detail\n\n")
	for _, cs := range r.Result.Ordered() {
		fmt.Fprintf(&b, "### %s\n\n", cs.CategoryName)
		for _, factor := range cs.Factors {
			critical := ""
			if factor.Critical {
				critical = " **(critical)**"
			}
			fmt.Fprintf(&b, "- %s `%s` %.1f/%.0f%s - %s\n",
				factorStatusMarker(factor.Status), factor.Name, factor.Points, factor.MaxPoints, critical, factor.Details)
		}
		b.WriteString("\n")
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		b.WriteString("| # | Impact | Effort | Action | Potential |\n")
		b.WriteString("|--:|--------|--------|--------|----------:|\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | +%.1f |\n",
				rec.Rank, rec.Impact, rec.Effort, rec.Action, rec.Gap)
		}
		b.WriteString("\n")
	}

	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, []byte(b.String()), 0o644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", f.outputFile, err)
		}
		return nil
	}
	fmt.Print(b.String())
	return nil
}
