package weights

import (
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() configuration invalid: %v", err)
	}
}

func TestDefaultCategoryWeightsSum(t *testing.T) {
	cfg := Default()
	var sum float64
	for _, cw := range cfg.Categories {
		sum += cw.Weight
	}
	if sum < 0.999999 || sum > 1.000001 {
		t.Errorf("category weights sum = %v, want 1.0", sum)
	}
}

func TestDefaultFactorsSumTo100(t *testing.T) {
	cfg := Default()
	for _, key := range CategoryOrder {
		var sum float64
		for _, f := range cfg.Factors[key] {
			sum += f.Max
		}
		if sum != 100 {
			t.Errorf("category %s: factor max points sum = %v, want 100", key, sum)
		}
	}
}

func TestHybridTableIsIdentity(t *testing.T) {
	cfg := Default()
	for key, v := range cfg.Multipliers["hybrid"] {
		if v != 1.0 {
			t.Errorf("hybrid multiplier %s = %v, want 1.0", key, v)
		}
	}
}

func TestGradeForBoundaries(t *testing.T) {
	cfg := Default()
	tests := []struct {
		score int
		want  string
	}{
		{100, "A"},
		{90, "A"},
		{89, "B"},
		{80, "B"},
		{79, "C"},
		{70, "C"},
		{69, "D"},
		{60, "D"},
		{59, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		if got, _ := cfg.GradeFor(tt.score); got != tt.want {
			t.Errorf("GradeFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestContextForFallsBackToHybrid(t *testing.T) {
	cfg := Default()
	tests := []struct {
		name     string
		wantName string
	}{
		{"want", "want"},
		{"need", "need"},
		{"hybrid", "hybrid"},
		{"impulse", "hybrid"},
		{"", "hybrid"},
	}
	for _, tt := range tests {
		if got := cfg.ContextFor(tt.name); got.Name != tt.wantName {
			t.Errorf("ContextFor(%q).Name = %s, want %s", tt.name, got.Name, tt.wantName)
		}
	}
}

func TestMultipliersGetDefault(t *testing.T) {
	m := Multipliers{"specifications": 1.4}
	if got := m.Get("specifications"); got != 1.4 {
		t.Errorf("Get(specifications) = %v, want 1.4", got)
	}
	if got := m.Get("nonexistent"); got != 1.0 {
		t.Errorf("Get(nonexistent) = %v, want 1.0", got)
	}
}

func TestFactorWeightCap(t *testing.T) {
	tests := []struct {
		name string
		fw   FactorWeight
		want float64
	}{
		{"no multiple set", FactorWeight{Max: 10}, 10},
		{"standard cap", FactorWeight{Max: 10, CapMultiple: 1.0}, 10},
		{"overshoot allowed", FactorWeight{Max: 10, CapMultiple: 1.5}, 15},
		{"double overshoot", FactorWeight{Max: 10, CapMultiple: 2.0}, 20},
	}
	for _, tt := range tests {
		if got := tt.fw.Cap(); got != tt.want {
			t.Errorf("%s: Cap() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "weights do not sum to 1",
			mutate: func(c *Config) {
				c.Categories[0].Weight = 0.5
			},
			wantErr: "sum to 1.0",
		},
		{
			name: "negative category weight",
			mutate: func(c *Config) {
				c.Categories[0].Weight = -0.25
			},
			wantErr: "must be positive",
		},
		{
			name: "zero factor max",
			mutate: func(c *Config) {
				c.Factors[CategoryStructuredData][0].Max = 0
			},
			wantErr: "max points must be positive",
		},
		{
			name: "cap multiple below one",
			mutate: func(c *Config) {
				c.Factors[CategoryContentQuality][1].CapMultiple = 0.5
			},
			wantErr: "cap multiple",
		},
		{
			name: "missing hybrid table",
			mutate: func(c *Config) {
				delete(c.Multipliers, "hybrid")
			},
			wantErr: "hybrid",
		},
		{
			name: "zero multiplier",
			mutate: func(c *Config) {
				c.Multipliers["want"]["specifications"] = 0
			},
			wantErr: "must be positive",
		},
		{
			name: "grades not descending",
			mutate: func(c *Config) {
				c.Grades[1].Min = 95
			},
			wantErr: "descending",
		},
		{
			name: "grades do not reach 0",
			mutate: func(c *Config) {
				c.Grades[len(c.Grades)-1].Min = 5
			},
			wantErr: "cover down to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
