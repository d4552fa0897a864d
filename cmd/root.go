package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gazetteer/internal/config"
	"gazetteer/internal/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gazetteer",
	Short: "Gazetteer extracts points of interest from travel articles and sorts them into guide clusters.",
	Long: `Gazetteer is a production tool for editorial travel guides.

It fetches source articles, extracts points of interest with an LLM,
matches them against the canonical place catalog by fuzzy name similarity,
and groups them into the guide's geographic clusters for review.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .gazetteer.yaml in current or home directory)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
}
