// Package scoring implements the five category scorers. Each scorer is a
// pure function from an extracted page data record (plus the active context
// multiplier table) to a CategoryScore; nothing in this package performs
// I/O or holds mutable state between calls.
package scoring

import (
	"github.com/dotcommander/agentlens/internal/facts"
	"github.com/dotcommander/agentlens/internal/weights"
)

// Status is the outcome of a single factor evaluation.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
	StatusUnknown Status = "unknown"
)

// Factor is a single scored check within a category. Immutable once
// produced; one instance per evaluated rule.
type Factor struct {
	Name       string  `json:"name"`
	Status     Status  `json:"status"`
	Points     float64 `json:"points"`
	MaxPoints  float64 `json:"max_points"`
	Critical   bool    `json:"critical"`
	Contextual bool    `json:"contextual"`
	Details    string  `json:"details,omitempty"`
}

// Gap returns the distance between the factor's nominal maximum and its
// earned points, floored at zero (overshooting factors have no gap).
func (f Factor) Gap() float64 {
	g := f.MaxPoints - f.Points
	if g < 0 {
		return 0
	}
	return g
}

// CategoryScore is the result of evaluating one category.
type CategoryScore struct {
	CategoryKey  string   `json:"category_key"`
	CategoryName string   `json:"category_name"`
	Score        float64  `json:"score"`
	MaxScore     float64  `json:"max_score"`
	Weight       float64  `json:"weight"`
	Factors      []Factor `json:"factors"`
}

// Counts returns the number of pass, warning, and fail factors. Unknown
// factors count as warnings for summary purposes.
func (c CategoryScore) Counts() (pass, warning, fail int) {
	for _, f := range c.Factors {
		switch f.Status {
		case StatusPass:
			pass++
		case StatusFail:
			fail++
		default:
			warning++
		}
	}
	return pass, warning, fail
}

// Scorer evaluates one category of page facts.
type Scorer interface {
	Key() string
	Evaluate(data *facts.ExtractedPageData, mctx weights.Context) CategoryScore
}

// Scorers returns the five category scorers in evaluation order. The
// protocol scorer carries the optional image verification result; pass nil
// when verification was not run.
func Scorers(cfg *weights.Config, verification *facts.ImageVerification) []Scorer {
	return []Scorer{
		&StructuredDataScorer{cfg: cfg},
		&ProtocolMetaScorer{cfg: cfg, Verification: verification},
		&ContentQualityScorer{cfg: cfg},
		&ContentStructureScorer{cfg: cfg},
		&AuthorityTrustScorer{cfg: cfg},
	}
}

// EvaluateAll runs every category scorer under the given context and
// returns the scores keyed by category. Iterate with weights.CategoryOrder
// for deterministic order.
func EvaluateAll(cfg *weights.Config, data *facts.ExtractedPageData, verification *facts.ImageVerification, context string) map[string]CategoryScore {
	mctx := cfg.ContextFor(facts.NormalizeContext(context))
	scores := make(map[string]CategoryScore, len(weights.CategoryOrder))
	for _, s := range Scorers(cfg, verification) {
		scores[s.Key()] = s.Evaluate(data, mctx)
	}
	return scores
}
