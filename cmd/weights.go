package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotcommander/agentlens/internal/config"
	"github.com/dotcommander/agentlens/internal/weights"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show the effective weight configuration",
	Long: `Weights prints the category weights, factor point values, context
multiplier tables, and grade thresholds in effect, after applying any
override file. Useful for checking what an override actually changed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWeights()
	},
}

var weightsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a weights override file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := weights.Load(args[0]); err != nil {
			return fmt.Errorf("invalid weights file %s: %w", args[0], err)
		}
		fmt.Printf("✓ %s is valid\n", args[0])
		return nil
	},
}

func init() {
	weightsCmd.AddCommand(weightsValidateCmd)
	rootCmd.AddCommand(weightsCmd)
}

func runWeights() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	wcfg, err := weights.Load(cfg.WeightsFile)
	if err != nil {
		return fmt.Errorf("error loading weights: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(weightsView(wcfg), "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling weights: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

// weightsView shapes the config for display; the internal struct carries
// no json tags because it is never serialized elsewhere.
func weightsView(wcfg *weights.Config) map[string]any {
	categories := make([]map[string]any, 0, len(wcfg.Categories))
	for _, cw := range wcfg.Categories {
		factors := make([]map[string]any, 0, len(wcfg.Factors[cw.Key]))
		for _, f := range wcfg.Factors[cw.Key] {
			entry := map[string]any{"name": f.Name, "max": f.Max}
			if f.Critical {
				entry["critical"] = true
			}
			if f.Contextual() {
				entry["context_key"] = f.ContextKey
			}
			if f.CapMultiple > 1 {
				entry["cap_multiple"] = f.CapMultiple
			}
			factors = append(factors, entry)
		}
		categories = append(categories, map[string]any{
			"key":     cw.Key,
			"name":    cw.Name,
			"weight":  cw.Weight,
			"factors": factors,
		})
	}

	grades := make([]map[string]any, 0, len(wcfg.Grades))
	for _, g := range wcfg.Grades {
		grades = append(grades, map[string]any{
			"grade":       g.Grade,
			"min":         g.Min,
			"description": g.Description,
		})
	}

	return map[string]any{
		"categories":  categories,
		"multipliers": wcfg.Multipliers,
		"grades":      grades,
	}
}
