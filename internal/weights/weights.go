// Package weights holds the scoring weight configuration: category weights,
// per-factor nominal point values, the three context multiplier tables, and
// the grade threshold table. The configuration is loaded once at startup,
// validated there, and injected by reference into every scorer call. A
// malformed configuration is a fatal load-time error, never a per-scoring
// error.
package weights

import (
	"fmt"
	"math"
)

// Category keys, in evaluation order.
const (
	CategoryStructuredData   = "structured_data"
	CategoryProtocolMeta     = "protocol_meta"
	CategoryContentQuality   = "content_quality"
	CategoryContentStructure = "content_structure"
	CategoryAuthorityTrust   = "authority_trust"
)

// CategoryOrder is the fixed evaluation order of the five categories.
// Scorers run in this order and recommendation tie-breaking depends on it.
var CategoryOrder = []string{
	CategoryStructuredData,
	CategoryProtocolMeta,
	CategoryContentQuality,
	CategoryContentStructure,
	CategoryAuthorityTrust,
}

// CategoryWeight pairs a category with its share of the total score.
type CategoryWeight struct {
	Key    string
	Name   string
	Weight float64
}

// FactorWeight describes one scored factor: its nominal maximum point
// value, whether its failure is critical, the multiplier key used when the
// factor is contextual (empty for non-contextual factors), and the
// documented overshoot ceiling as a multiple of the nominal weight.
type FactorWeight struct {
	Name        string
	Max         float64
	Critical    bool
	ContextKey  string
	CapMultiple float64 // 1.0 = standard cap at nominal weight
}

// Contextual reports whether this factor's points are scaled by the active
// context's multiplier table.
func (f FactorWeight) Contextual() bool { return f.ContextKey != "" }

// Cap returns the absolute point ceiling for this factor.
func (f FactorWeight) Cap() float64 {
	m := f.CapMultiple
	if m < 1 {
		m = 1
	}
	return f.Max * m
}

// Multipliers is one context's multiplier table.
type Multipliers map[string]float64

// Get returns the multiplier for a key, falling back to 1.0 for keys absent
// from the table.
func (m Multipliers) Get(key string) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return 1.0
}

// GradeThreshold is one left-closed grade interval: scores >= Min earn
// Grade. Thresholds are kept in descending order of Min.
type GradeThreshold struct {
	Min         int
	Grade       string
	Description string
}

// Config is the full weight configuration.
type Config struct {
	Categories  []CategoryWeight
	Factors     map[string][]FactorWeight
	Multipliers map[string]Multipliers
	Grades      []GradeThreshold
}

// CategoryWeightFor returns the weight for a category key, 0 if unknown.
func (c *Config) CategoryWeightFor(key string) float64 {
	for _, cw := range c.Categories {
		if cw.Key == key {
			return cw.Weight
		}
	}
	return 0
}

// CategoryNameFor returns the display name for a category key.
func (c *Config) CategoryNameFor(key string) string {
	for _, cw := range c.Categories {
		if cw.Key == key {
			return cw.Name
		}
	}
	return key
}

// Context pairs a context name with its resolved multiplier table, so
// scorers can both scale contextual factors and recognize the active
// context for factor-specific adjustments.
type Context struct {
	Name        string
	Multipliers Multipliers
}

// Get returns the multiplier for a key, 1.0 when absent.
func (c Context) Get(key string) float64 { return c.Multipliers.Get(key) }

// ContextFor resolves a context name to its multiplier table. Unrecognized
// context values silently resolve to the hybrid identity table.
func (c *Config) ContextFor(name string) Context {
	if m, ok := c.Multipliers[name]; ok {
		return Context{Name: name, Multipliers: m}
	}
	return Context{Name: "hybrid", Multipliers: c.Multipliers["hybrid"]}
}

// GradeFor maps a total score onto a grade via a descending threshold scan.
func (c *Config) GradeFor(score int) (grade, description string) {
	for _, t := range c.Grades {
		if score >= t.Min {
			return t.Grade, t.Description
		}
	}
	// Unreachable with a valid configuration; Validate guarantees coverage.
	last := c.Grades[len(c.Grades)-1]
	return last.Grade, last.Description
}

// Validate checks the internal consistency invariants that every other
// component depends on. It is called once at load time.
func (c *Config) Validate() error {
	if len(c.Categories) != len(CategoryOrder) {
		return fmt.Errorf("expected %d categories, got %d", len(CategoryOrder), len(c.Categories))
	}

	var sum float64
	for _, cw := range c.Categories {
		if cw.Weight <= 0 {
			return fmt.Errorf("category %s: weight must be positive, got %v", cw.Key, cw.Weight)
		}
		sum += cw.Weight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("category weights must sum to 1.0, got %v", sum)
	}

	for _, key := range CategoryOrder {
		factors, ok := c.Factors[key]
		if !ok || len(factors) == 0 {
			return fmt.Errorf("category %s has no factor weights", key)
		}
		for _, f := range factors {
			if f.Max <= 0 {
				return fmt.Errorf("factor %s/%s: max points must be positive, got %v", key, f.Name, f.Max)
			}
			if f.CapMultiple != 0 && f.CapMultiple < 1 {
				return fmt.Errorf("factor %s/%s: cap multiple must be >= 1, got %v", key, f.Name, f.CapMultiple)
			}
		}
	}

	if _, ok := c.Multipliers["hybrid"]; !ok {
		return fmt.Errorf("missing hybrid multiplier table")
	}
	for name, table := range c.Multipliers {
		for key, v := range table {
			if v <= 0 {
				return fmt.Errorf("multiplier %s/%s: must be positive, got %v", name, key, v)
			}
		}
	}

	if err := c.validateGrades(); err != nil {
		return err
	}

	return nil
}

// validateGrades checks that the grade thresholds are strictly descending,
// end at 0, and therefore partition [0,100] with no gaps or overlaps.
func (c *Config) validateGrades() error {
	if len(c.Grades) == 0 {
		return fmt.Errorf("no grade thresholds configured")
	}
	prev := 101
	for _, t := range c.Grades {
		if t.Min < 0 || t.Min > 100 {
			return fmt.Errorf("grade %s: threshold %d outside [0,100]", t.Grade, t.Min)
		}
		if t.Min >= prev {
			return fmt.Errorf("grade thresholds must be strictly descending: %s at %d", t.Grade, t.Min)
		}
		prev = t.Min
	}
	if c.Grades[len(c.Grades)-1].Min != 0 {
		return fmt.Errorf("grade thresholds must cover down to 0, lowest is %d", c.Grades[len(c.Grades)-1].Min)
	}
	return nil
}
