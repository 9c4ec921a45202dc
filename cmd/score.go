package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/agentlens/internal/config"
	"github.com/dotcommander/agentlens/internal/facts"
	"github.com/dotcommander/agentlens/internal/weights"
)

var verificationFile string

var scoreCmd = &cobra.Command{
	Use:   "score <facts.json>",
	Short: "Score pre-extracted page facts",
	Long: `Score runs the engine against a facts file produced elsewhere, skipping
extraction entirely. This is the deterministic path: the same facts file,
weights, and context always produce the same result. Pass "-" to read the
facts from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScore(args[0])
	},
}

func init() {
	scoreCmd.Flags().StringVar(&verificationFile, "verification", "", "Image verification result file (JSON)")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(factsPath string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	wcfg, err := weights.Load(cfg.WeightsFile)
	if err != nil {
		return fmt.Errorf("error loading weights: %w", err)
	}

	data, err := readFacts(factsPath)
	if err != nil {
		return err
	}

	var verification *facts.ImageVerification
	if verificationFile != "" {
		raw, err := os.ReadFile(verificationFile)
		if err != nil {
			return fmt.Errorf("reading verification file: %w", err)
		}
		verification = &facts.ImageVerification{}
		if err := json.Unmarshal(raw, verification); err != nil {
			return fmt.Errorf("parsing verification file: %w", err)
		}
	}

	result, recs := runEngine(wcfg, data, verification, cfg.Context)

	if err := renderReport(cfg, result, recs); err != nil {
		return err
	}
	recordAudit(cfg, result)

	if cfg.FailUnder > 0 && result.TotalScore < cfg.FailUnder {
		os.Exit(1)
	}
	return nil
}

func readFacts(path string) (*facts.ExtractedPageData, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading facts file: %w", err)
	}

	var data facts.ExtractedPageData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing facts file: %w", err)
	}
	return &data, nil
}
