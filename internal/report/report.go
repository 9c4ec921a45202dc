// Package report aggregates category scores into the final weighted result.
// Aggregation is the only place a score is rounded; categories stay
// fractional all the way here so that repeated runs over identical input
// are bit-for-bit identical.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/dotcommander/agentlens/internal/facts"
	"github.com/dotcommander/agentlens/internal/scoring"
	"github.com/dotcommander/agentlens/internal/weights"
)

// ScoreResult is the complete outcome of scoring one page.
type ScoreResult struct {
	URL              string                           `json:"url"`
	TotalScore       int                              `json:"total_score"`
	Grade            string                           `json:"grade"`
	GradeDescription string                           `json:"grade_description"`
	Context          string                           `json:"context"`
	CategoryScores   map[string]scoring.CategoryScore `json:"category_scores"`
	Timestamp        time.Time                        `json:"timestamp"`
}

// CategorySummary is one row of the weakest-first category listing.
type CategorySummary struct {
	Key     string  `json:"key"`
	Name    string  `json:"name"`
	Score   int     `json:"score"`
	Weight  float64 `json:"weight"`
	Pass    int     `json:"pass"`
	Warning int     `json:"warning"`
	Fail    int     `json:"fail"`
}

// Aggregate combines category scores into the final result. The weighted
// sum is computed in float64 and rounded half-up exactly once.
func Aggregate(cfg *weights.Config, data *facts.ExtractedPageData, scores map[string]scoring.CategoryScore, context string) ScoreResult {
	var weighted float64
	for _, key := range weights.CategoryOrder {
		cs, ok := scores[key]
		if !ok {
			continue
		}
		weighted += cs.Score * cs.Weight
	}

	total := int(math.Round(weighted))
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	grade, description := cfg.GradeFor(total)
	return ScoreResult{
		URL:              data.URL,
		TotalScore:       total,
		Grade:            grade,
		GradeDescription: description,
		Context:          facts.NormalizeContext(context),
		CategoryScores:   scores,
		Timestamp:        time.Now().UTC(),
	}
}

// Ordered returns the category scores in canonical evaluation order.
func (r ScoreResult) Ordered() []scoring.CategoryScore {
	out := make([]scoring.CategoryScore, 0, len(weights.CategoryOrder))
	for _, key := range weights.CategoryOrder {
		if cs, ok := r.CategoryScores[key]; ok {
			out = append(out, cs)
		}
	}
	return out
}

// Summary lists categories weakest first with rounded scores and status
// counts, ties broken by canonical order.
func (r ScoreResult) Summary() []CategorySummary {
	rows := make([]CategorySummary, 0, len(r.CategoryScores))
	for _, cs := range r.Ordered() {
		pass, warning, fail := cs.Counts()
		rows = append(rows, CategorySummary{
			Key:     cs.CategoryKey,
			Name:    cs.CategoryName,
			Score:   int(math.Round(cs.Score)),
			Weight:  cs.Weight,
			Pass:    pass,
			Warning: warning,
			Fail:    fail,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score < rows[j].Score
	})
	return rows
}

// CriticalIssues returns every failed critical factor across all
// categories, in canonical category then factor order.
func (r ScoreResult) CriticalIssues() []scoring.Factor {
	var out []scoring.Factor
	for _, cs := range r.Ordered() {
		for _, f := range cs.Factors {
			if f.Critical && f.Status == scoring.StatusFail {
				out = append(out, f)
			}
		}
	}
	return out
}
