package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dotcommander/agentlens/internal/recommend"
	"github.com/dotcommander/agentlens/internal/scoring"
)

// ConsoleFormatter formats an audit report for terminal display.
type ConsoleFormatter struct {
	quiet    bool
	verbose  bool
	colorize bool
	isTTY    bool
}

// NewConsoleFormatter creates a console formatter. Color and the grade-A
// celebration are enabled only on a real terminal; verbose adds the
// per-factor breakdown under each category.
func NewConsoleFormatter(quiet, verbose bool) *ConsoleFormatter {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	return &ConsoleFormatter{
		quiet:    quiet,
		verbose:  verbose,
		colorize: isTTY,
		isTTY:    isTTY,
	}
}

// Format renders the full report: grade badge, category table, critical
// issues, and the recommendation list.
func (f *ConsoleFormatter) Format(r Report) error {
	if f.quiet {
		fmt.Printf("%d %s\n", r.Result.TotalScore, r.Result.Grade)
		return nil
	}

	f.printHeader(r)
	f.printCategories(r)
	f.printCriticalIssues(r)
	f.printRecommendations(r)

	if r.Result.Grade == "A" && f.isTTY {
		printCelebration(fmt.Sprintf("Grade A - %d/100", r.Result.TotalScore))
	}
	return nil
}

func (f *ConsoleFormatter) printHeader(r Report) {
	badge := fmt.Sprintf(" %s  %d/100 ", r.Result.Grade, r.Result.TotalScore)
	if f.colorize {
		style := lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(gradeColor(r.Result.Grade)).
			Padding(0, 1)
		badge = style.Render(badge)
	}
	fmt.Printf("%s  %s\n", badge, r.Result.URL)
	fmt.Printf("%s (context: %s)\n\n", r.Result.GradeDescription, r.Result.Context)
}

func (f *ConsoleFormatter) printCategories(r Report) {
	for _, cs := range r.Result.Ordered() {
		pass, warn, fail := cs.Counts()
		status := "✓"
		if fail > 0 {
			status = "✗"
		} else if warn > 0 {
			status = "⚠"
		}

		line := fmt.Sprintf("%s %-22s %5.1f/100  (weight %.0f%%, %d pass, %d warn, %d fail)",
			status, cs.CategoryName, cs.Score, cs.Weight*100, pass, warn, fail)
		if f.colorize {
			var style lipgloss.Style
			switch {
			case fail > 0:
				style = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
			case warn > 0:
				style = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
			default:
				style = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
			}
			line = style.Render(line)
		}
		fmt.Println(line)

		if f.verbose {
			for _, factor := range cs.Factors {
				fmt.Printf("    %s %-22s %5.1f/%-3.0f %s\n",
					factorStatusMarker(factor.Status), factor.Name,
					factor.Points, factor.MaxPoints, factor.Details)
			}
		}
	}
	fmt.Println()
}

func (f *ConsoleFormatter) printCriticalIssues(r Report) {
	issues := r.Result.CriticalIssues()
	if len(issues) == 0 {
		return
	}

	header := fmt.Sprintf("Critical issues (%d):", len(issues))
	if f.colorize {
		header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render(header)
	}
	fmt.Println(header)
	for _, issue := range issues {
		fmt.Printf("  ✘ %s: %s\n", issue.Name, issue.Details)
	}
	fmt.Println()
}

func (f *ConsoleFormatter) printRecommendations(r Report) {
	if len(r.Recommendations) == 0 {
		return
	}

	fmt.Printf("Recommendations (%d):\n", len(r.Recommendations))
	for _, rec := range r.Recommendations {
		marker := impactMarker(rec.Impact)
		if f.colorize {
			marker = impactStyle(rec.Impact).Render(marker)
		}
		fmt.Printf("  %2d. %s %s\n", rec.Rank, marker, rec.Action)
		fmt.Printf("      %s impact, %s effort, +%.1f pts potential\n",
			rec.Impact, rec.Effort, rec.Gap)
	}
}

func gradeColor(grade string) lipgloss.Color {
	switch grade {
	case "A":
		return lipgloss.Color("10")
	case "B":
		return lipgloss.Color("14")
	case "C":
		return lipgloss.Color("11")
	case "D":
		return lipgloss.Color("208")
	default:
		return lipgloss.Color("9")
	}
}

func impactMarker(impact string) string {
	switch impact {
	case recommend.ImpactHigh:
		return "[HIGH]"
	case recommend.ImpactMedium:
		return "[MED] "
	default:
		return "[LOW] "
	}
}

func impactStyle(impact string) lipgloss.Style {
	switch impact {
	case recommend.ImpactHigh:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	case recommend.ImpactMedium:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

// factorStatusMarker is shared with the markdown formatter.
func factorStatusMarker(status scoring.Status) string {
	switch status {
	case scoring.StatusPass:
		return "✓"
	case scoring.StatusFail:
		return "✗"
	case scoring.StatusUnknown:
		return "?"
	default:
		return "⚠"
	}
}
