package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	contextFlag  string
	outputFormat string
	outputFile   string
	quiet        bool
	verbose      bool
	weightsFile  string
	historyDB    string
	noHistory    bool
	verifyImages bool
	failUnder    int
)

var rootCmd = &cobra.Command{
	Use:   "agentlens",
	Short: "Agentlens - score product pages for LLM agent readability",
	Long: `Agentlens audits retail product pages the way an LLM shopping agent
reads them: structured data, protocol metadata, content substance, markup
structure, and trust signals. Each audit produces a 0-100 score, a letter
grade, and a prioritized list of fixes.

Use 'agentlens audit' against a live URL or saved snapshots, or
'agentlens score' against pre-extracted page facts.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&contextFlag, "context", "c", "hybrid", "Purchase context (want|need|hybrid)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file for reports")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&weightsFile, "weights-file", "w", "", "Weights override file (YAML)")
	rootCmd.PersistentFlags().StringVar(&historyDB, "history-db", "", "History database path (default: user config dir)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Skip recording results in the history database")
	rootCmd.PersistentFlags().BoolVar(&verifyImages, "verify-images", true, "Probe og:image URLs to verify their true format")
	rootCmd.PersistentFlags().IntVar(&failUnder, "fail-under", 0, "Exit non-zero when the score is below this threshold")

	viper.BindPFlag("context", rootCmd.PersistentFlags().Lookup("context"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("weightsFile", rootCmd.PersistentFlags().Lookup("weights-file"))
	viper.BindPFlag("historyDb", rootCmd.PersistentFlags().Lookup("history-db"))
	viper.BindPFlag("noHistory", rootCmd.PersistentFlags().Lookup("no-history"))
	viper.BindPFlag("verifyImages", rootCmd.PersistentFlags().Lookup("verify-images"))
	viper.BindPFlag("failUnder", rootCmd.PersistentFlags().Lookup("fail-under"))
}

func initConfig() {
	configPaths := []string{".agentlensrc.json", ".agentlensrc.yaml", ".agentlensrc.yml"}
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
				os.Exit(1)
			}
			break
		}
	}
	viper.SetEnvPrefix("AGENTLENS")
	viper.AutomaticEnv()
}
