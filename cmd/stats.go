package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gazetteer/internal/config"
	"gazetteer/internal/store"
)

var statsGuideID string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the stored match statistics for a guide",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runStats(statsGuideID); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Stats failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsGuideID, "guide", "", "guide identifier (required)")
	statsCmd.MarkFlagRequired("guide")
	rootCmd.AddCommand(statsCmd)
}

func runStats(guideID string) error {
	cfg := config.Get()

	s, err := store.NewStore(cfg.App.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	assignment, stats, err := s.GetAssignment(guideID)
	if err != nil {
		return err
	}
	if stats == nil {
		return fmt.Errorf("no assignment stored for guide %s, run match first", guideID)
	}

	printStats(assignment, *stats)
	return nil
}
