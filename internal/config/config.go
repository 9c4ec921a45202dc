// Package config loads the runtime configuration from rc files, the
// environment, and flag bindings.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/dotcommander/agentlens/internal/facts"
)

// Config represents the agentlens runtime configuration. Scoring weights
// live in their own file (see the weights package); this covers everything
// around the engine.
type Config struct {
	Context      string `mapstructure:"context"`
	Format       string `mapstructure:"format"`
	Output       string `mapstructure:"output"`
	Quiet        bool   `mapstructure:"quiet"`
	Verbose      bool   `mapstructure:"verbose"`
	WeightsFile  string `mapstructure:"weightsFile"`
	HistoryDB    string `mapstructure:"historyDb"`
	NoHistory    bool   `mapstructure:"noHistory"`
	VerifyImages bool   `mapstructure:"verifyImages"`
	FailUnder    int    `mapstructure:"failUnder"`
	Concurrency  int    `mapstructure:"concurrency"`
}

// LoadConfig loads configuration from rc files, AGENTLENS_* environment
// variables, and any flags previously bound into viper.
func LoadConfig() (*Config, error) {
	viper.SetDefault("context", facts.ContextHybrid)
	viper.SetDefault("format", "console")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("noHistory", false)
	viper.SetDefault("verifyImages", true)
	viper.SetDefault("failUnder", 0)
	viper.SetDefault("concurrency", 5)

	configPaths := []string{".agentlensrc.json", ".agentlensrc.yaml", ".agentlensrc.yml"}
	for _, path := range configPaths {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	viper.SetEnvPrefix("AGENTLENS")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func validateConfig(config *Config) error {
	if config.Format != "console" && config.Format != "json" && config.Format != "markdown" {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", config.Format)
	}
	if config.FailUnder < 0 || config.FailUnder > 100 {
		return fmt.Errorf("fail-under must be within [0,100], got %d", config.FailUnder)
	}
	if config.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}
	return nil
}
