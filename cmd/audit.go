package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotcommander/agentlens/internal/collector"
	"github.com/dotcommander/agentlens/internal/config"
	"github.com/dotcommander/agentlens/internal/facts"
	"github.com/dotcommander/agentlens/internal/history"
	"github.com/dotcommander/agentlens/internal/imagecheck"
	"github.com/dotcommander/agentlens/internal/output"
	"github.com/dotcommander/agentlens/internal/recommend"
	"github.com/dotcommander/agentlens/internal/report"
	"github.com/dotcommander/agentlens/internal/scoring"
	"github.com/dotcommander/agentlens/internal/weights"
)

var auditCmd = &cobra.Command{
	Use:   "audit <url-or-path>...",
	Short: "Audit live product pages or saved snapshots",
	Long: `Audit fetches each target, extracts its facts, scores them, and prints
the report. Targets starting with http:// or https:// are fetched live;
anything else is treated as a saved HTML snapshot file, or a directory of
snapshots scanned with glob patterns.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAudit(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(ctx context.Context, targets []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	wcfg, err := weights.Load(cfg.WeightsFile)
	if err != nil {
		return fmt.Errorf("error loading weights: %w", err)
	}

	var resolved []auditTarget
	for _, target := range targets {
		resolved = append(resolved, resolveTargets(target)...)
	}

	var failed bool
	pages := make([]*facts.ExtractedPageData, len(resolved))
	for i, t := range resolved {
		data, err := collectTarget(ctx, t)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error auditing %s: %v\n", t.label, err)
			failed = true
			continue
		}
		pages[i] = data
	}

	verifications := verifyOGImages(ctx, cfg, pages)

	for i, data := range pages {
		if data == nil {
			continue
		}
		result, recs := runEngine(wcfg, data, verifications[i], cfg.Context)
		if err := renderReport(cfg, result, recs); err != nil {
			fmt.Fprintf(os.Stderr, "Error reporting %s: %v\n", resolved[i].label, err)
			failed = true
			continue
		}
		recordAudit(cfg, result)
		if cfg.FailUnder > 0 && result.TotalScore < cfg.FailUnder {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
	return nil
}

// auditTarget is one resolved audit unit: either a live URL or a snapshot
// file on disk.
type auditTarget struct {
	label string
	url   string
	path  string
}

// resolveTargets expands a raw argument: URLs pass through, directories
// expand into their discovered snapshots, files stand alone.
func resolveTargets(target string) []auditTarget {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return []auditTarget{{label: target, url: target}}
	}

	info, err := os.Stat(target)
	if err == nil && info.IsDir() {
		snapshots, err := collector.DiscoverSnapshots(target, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", target, err)
			return nil
		}
		out := make([]auditTarget, 0, len(snapshots))
		for _, s := range snapshots {
			out = append(out, auditTarget{label: s.RelPath, path: s.Path})
		}
		return out
	}

	return []auditTarget{{label: target, path: target}}
}

func collectTarget(ctx context.Context, t auditTarget) (*facts.ExtractedPageData, error) {
	if t.url != "" {
		return collector.Fetch(ctx, nil, t.url)
	}
	return collector.CollectFile(t.path, t.label)
}

// verifyOGImages batch-probes the og:image of every collected page with
// the configured worker count. Pages without an og:image, and all pages
// when verification is disabled, map to nil so the URL-extension heuristic
// applies downstream.
func verifyOGImages(ctx context.Context, cfg *config.Config, pages []*facts.ExtractedPageData) []*facts.ImageVerification {
	out := make([]*facts.ImageVerification, len(pages))
	if !cfg.VerifyImages {
		return out
	}

	var urls []string
	var idx []int
	for i, p := range pages {
		if p != nil && p.ProtocolMeta.HasOGImage && p.ProtocolMeta.OGImageURL != "" {
			urls = append(urls, p.ProtocolMeta.OGImageURL)
			idx = append(idx, i)
		}
	}
	if len(urls) == 0 {
		return out
	}

	checker := imagecheck.New(nil)
	for j, v := range checker.VerifyAll(ctx, urls, cfg.Concurrency) {
		out[idx[j]] = v
	}
	return out
}

// runEngine executes the pure scoring pipeline: evaluate, aggregate,
// recommend.
func runEngine(wcfg *weights.Config, data *facts.ExtractedPageData, verification *facts.ImageVerification, auditContext string) (report.ScoreResult, []recommend.Recommendation) {
	scores := scoring.EvaluateAll(wcfg, data, verification, auditContext)
	result := report.Aggregate(wcfg, data, scores, auditContext)
	return result, recommend.Recommend(result)
}

func renderReport(cfg *config.Config, result report.ScoreResult, recs []recommend.Recommendation) error {
	formatter, err := output.New(cfg.Format, cfg.Quiet, cfg.Verbose, cfg.Output)
	if err != nil {
		return err
	}
	return formatter.Format(output.Report{Result: result, Recommendations: recs})
}

// recordAudit persists the result; history failures are warnings, never
// audit failures.
func recordAudit(cfg *config.Config, result report.ScoreResult) {
	if cfg.NoHistory {
		return
	}
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(result); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record audit: %v\n", err)
	}
}
