package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gazetteer/internal/config"
	"gazetteer/internal/core"
	"gazetteer/internal/review"
	"gazetteer/internal/store"
)

var reviewGuideID string

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Interactively review and correct a guide's cluster assignment",
	Long: `Review opens a terminal UI over the stored assignment for a guide.
POIs can be moved between clusters; moves count as manual placements in the
saved statistics.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runReview(reviewGuideID); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Review failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	reviewCmd.Flags().StringVar(&reviewGuideID, "guide", "", "guide identifier (required)")
	reviewCmd.MarkFlagRequired("guide")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(guideID string) error {
	cfg := config.Get()

	s, err := store.NewStore(cfg.App.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	assignment, _, err := s.GetAssignment(guideID)
	if err != nil {
		return err
	}
	if assignment == nil {
		return fmt.Errorf("no assignment stored for guide %s, run match first", guideID)
	}

	review.StartReview(guideID, assignment, func(a *core.ClusterAssignment, stats core.MatchStats) error {
		return s.SaveAssignment(guideID, a, &stats)
	})
	return nil
}
