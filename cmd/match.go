package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"gazetteer/internal/catalog"
	"gazetteer/internal/config"
	"gazetteer/internal/core"
	"gazetteer/internal/match"
	"gazetteer/internal/store"
)

var (
	matchGuideID string
	matchRegion  string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a guide's extracted POIs against the place catalog",
	Long: `Match loads the POIs previously extracted for a guide, fetches the
canonical place records for a region from the catalog, assigns each POI to
the cluster of its best-matching place, and stores the result.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMatch(matchGuideID, matchRegion); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Matching failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchGuideID, "guide", "", "guide identifier (required)")
	matchCmd.Flags().StringVar(&matchRegion, "region", "", "catalog region to match against (required)")
	matchCmd.MarkFlagRequired("guide")
	matchCmd.MarkFlagRequired("region")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(guideID, region string) error {
	cfg := config.Get()
	ctx := context.Background()

	s, err := store.NewStore(cfg.App.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	pois, err := s.GetPOIs(guideID)
	if err != nil {
		return err
	}
	if len(pois) == 0 {
		return fmt.Errorf("no POIs stored for guide %s, run extract first", guideID)
	}

	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.CatalogTimeout())
	candidates, err := client.FetchPlaces(ctx, region)
	if err != nil {
		return err
	}
	fmt.Printf("🗺️  Matching %d POI(s) against %d catalog place(s) in %s\n", len(pois), len(candidates), region)

	matcher := match.New(match.Config{
		MinSuggestionThreshold:    cfg.Match.MinSuggestionThreshold,
		AutoMatchThreshold:        cfg.Match.AutoMatchThreshold,
		MediumConfidenceThreshold: cfg.Match.MediumConfidenceThreshold,
		HighConfidenceThreshold:   cfg.Match.HighConfidenceThreshold,
	})

	assignment, err := matcher.AutoAssign(pois, candidates)
	if err != nil {
		return err
	}
	stats := match.ComputeStats(assignment)

	if err := s.SaveAssignment(guideID, assignment, &stats); err != nil {
		return err
	}

	printStats(assignment, stats)
	fmt.Printf("✅ Assignment saved for guide %s\n", guideID)
	return nil
}

func printStats(assignment *core.ClusterAssignment, stats core.MatchStats) {
	fmt.Printf("\n📊 %d POI(s): %d assigned (%d auto, %d manual), %d unassigned\n",
		stats.TotalPOIs, stats.Assigned, stats.AutoMatched, stats.ManualMatched, stats.Unassigned)

	clusterIDs := make([]string, 0, len(stats.ByCluster))
	for id := range stats.ByCluster {
		clusterIDs = append(clusterIDs, id)
	}
	sort.Strings(clusterIDs)

	for _, id := range clusterIDs {
		name := id
		if assignment != nil {
			if n, ok := assignment.ClusterNames[id]; ok && n != "" {
				name = n
			}
		}
		fmt.Printf("   %s: %d\n", name, stats.ByCluster[id])
	}
}
