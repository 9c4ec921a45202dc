package config

import (
	"strings"
	"testing"
)

func validTestConfig() *Config {
	return &Config{
		Context:     "hybrid",
		Format:      "console",
		FailUnder:   0,
		Concurrency: 5,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults valid", func(c *Config) {}, ""},
		{"json format valid", func(c *Config) { c.Format = "json" }, ""},
		{"markdown format valid", func(c *Config) { c.Format = "markdown" }, ""},
		{"unknown format", func(c *Config) { c.Format = "xml" }, "invalid format"},
		{"fail-under negative", func(c *Config) { c.FailUnder = -1 }, "fail-under"},
		{"fail-under above 100", func(c *Config) { c.FailUnder = 101 }, "fail-under"},
		{"fail-under at 100 valid", func(c *Config) { c.FailUnder = 100 }, ""},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, "concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validateConfig() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validateConfig() = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
