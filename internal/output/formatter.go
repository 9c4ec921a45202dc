// Package output renders an audit report for the console, as JSON, or as
// markdown.
package output

import (
	"fmt"

	"github.com/dotcommander/agentlens/internal/recommend"
	"github.com/dotcommander/agentlens/internal/report"
)

// Report bundles everything a formatter renders.
type Report struct {
	Result          report.ScoreResult
	Recommendations []recommend.Recommendation
}

// Formatter renders one audit report.
type Formatter interface {
	Format(r Report) error
}

// New returns the formatter for a format name.
func New(format string, quiet, verbose bool, outputFile string) (Formatter, error) {
	switch format {
	case "console", "":
		return NewConsoleFormatter(quiet, verbose), nil
	case "json":
		return NewJSONFormatter(true, outputFile), nil
	case "markdown":
		return NewMarkdownFormatter(outputFile), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (valid: console, json, markdown)", format)
	}
}
