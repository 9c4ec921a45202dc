package scoring

import (
	"fmt"

	"github.com/dotcommander/agentlens/internal/weights"
)

// builder accumulates factors for one category, applying the uniform
// construction pattern: fraction x nominal weight, context multiplier if
// the factor is contextual, explicit cap, append, accumulate. The category
// total is clamped to [0,100] once at Finish. No intermediate rounding.
type builder struct {
	cfg     *weights.Config
	key     string
	mctx    weights.Context
	specs   map[string]weights.FactorWeight
	factors []Factor
	total   float64
}

func newBuilder(cfg *weights.Config, categoryKey string, mctx weights.Context) *builder {
	specs := make(map[string]weights.FactorWeight)
	for _, f := range cfg.Factors[categoryKey] {
		specs[f.Name] = f
	}
	return &builder{
		cfg:   cfg,
		key:   categoryKey,
		mctx:  mctx,
		specs: specs,
	}
}

// add evaluates one factor from its status fraction. The boost parameter
// is an extra factor-specific multiplier layered after the generic context
// multiplier (1.0 for almost every factor); it is still subject to the cap.
func (b *builder) add(name string, fraction float64, status Status, details string) {
	b.addBoosted(name, fraction, status, details, 1.0)
}

func (b *builder) addBoosted(name string, fraction float64, status Status, details string, boost float64) {
	spec, ok := b.specs[name]
	if !ok {
		// Factor enumerations are fixed in code and validated at load time;
		// reaching this is a programming error, not a data condition.
		panic(fmt.Sprintf("scoring: unknown factor %s/%s", b.key, name))
	}

	if fraction < 0 {
		fraction = 0
	}
	points := fraction * spec.Max
	if spec.Contextual() {
		points *= b.mctx.Get(spec.ContextKey)
	}
	points *= boost
	if ceiling := spec.Cap(); points > ceiling {
		points = ceiling
	}

	b.factors = append(b.factors, Factor{
		Name:       name,
		Status:     status,
		Points:     points,
		MaxPoints:  spec.Max,
		Critical:   spec.Critical,
		Contextual: spec.Contextual(),
		Details:    details,
	})
	b.total += points
}

// addBinary evaluates a simple present/absent factor.
func (b *builder) addBinary(name string, present bool, presentDetails, absentDetails string) {
	if present {
		b.add(name, 1, StatusPass, presentDetails)
	} else {
		b.add(name, 0, StatusFail, absentDetails)
	}
}

// addSubScore evaluates a factor driven by a collector-supplied 0-100
// sub-score. Scores of 70+ pass, 1-69 warn, 0 fails.
func (b *builder) addSubScore(name string, score int, details string) {
	frac := float64(score) / 100
	if frac > 1 {
		frac = 1
	}
	b.add(name, frac, statusFromFraction(frac, 0.7), details)
}

// finish clamps the category total and assembles the CategoryScore.
func (b *builder) finish() CategoryScore {
	score := b.total
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return CategoryScore{
		CategoryKey:  b.key,
		CategoryName: b.cfg.CategoryNameFor(b.key),
		Score:        score,
		MaxScore:     100,
		Weight:       b.cfg.CategoryWeightFor(b.key),
		Factors:      b.factors,
	}
}

// statusFromFraction derives a status from a score fraction: zero fails,
// at or above the pass threshold passes, anything between warns.
func statusFromFraction(frac, passAt float64) Status {
	switch {
	case frac <= 0:
		return StatusFail
	case frac >= passAt:
		return StatusPass
	default:
		return StatusWarning
	}
}
