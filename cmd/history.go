package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotcommander/agentlens/internal/config"
	"github.com/dotcommander/agentlens/internal/history"
)

var (
	historyURL   string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded audits",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent audits, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryList()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <audit-id>",
	Short: "Show the stored summary for one audit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryShow(args[0])
	},
}

func init() {
	historyListCmd.Flags().StringVar(&historyURL, "url", "", "Filter to one page URL")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum rows to show")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*history.Store, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	return history.Open(cfg.HistoryDB)
}

func runHistoryList() error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(historyURL, historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No audits recorded")
		return nil
	}

	fmt.Printf("%-36s %-20s %-6s %-6s %-8s %s\n", "ID", "Audited", "Score", "Grade", "Context", "URL")
	fmt.Println(strings.Repeat("-", 110))
	for _, e := range entries {
		fmt.Printf("%-36s %-20s %-6d %-6s %-8s %s\n",
			e.ID,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.TotalScore,
			e.Grade,
			e.Context,
			e.URL,
		)
	}
	fmt.Printf("\nTotal: %d audits\n", len(entries))
	return nil
}

func runHistoryShow(id string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.Get(id)
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling result: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
