package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gazetteer/internal/article"
	"gazetteer/internal/config"
	"gazetteer/internal/core"
	"gazetteer/internal/extract"
	"gazetteer/internal/logger"
	"gazetteer/internal/store"
)

var extractGuideID string

var extractCmd = &cobra.Command{
	Use:   "extract [input-file]",
	Short: "Fetch articles from a URL list and extract their points of interest",
	Long: `Extract reads a file of article URLs (one per line, # comments allowed),
fetches and cleans each article, extracts points of interest with Gemini,
and stores them for the given guide.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExtract(args[0], extractGuideID); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Extraction failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractGuideID, "guide", "", "guide identifier to store POIs under (required)")
	extractCmd.MarkFlagRequired("guide")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(inputFile, guideID string) error {
	cfg := config.Get()
	ctx := context.Background()

	urls, err := article.ReadURLs(inputFile)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no article URLs found in %s", inputFile)
	}
	fmt.Printf("📄 Found %d article URL(s) in %s\n", len(urls), inputFile)

	client, err := extract.NewClient(ctx, cfg.AI.Gemini.Model)
	if err != nil {
		return err
	}
	defer client.Close()

	s, err := store.NewStore(cfg.App.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	var allPOIs []core.POI
	for _, articleURL := range urls {
		fmt.Printf("🌐 Fetching %s\n", articleURL)
		art, err := article.Fetch(articleURL)
		if err != nil {
			logger.Error("Failed to fetch article, skipping", err, "url", articleURL)
			continue
		}
		if err := article.Clean(&art); err != nil {
			logger.Error("Failed to clean article, skipping", err, "url", articleURL)
			continue
		}

		pois, err := client.ExtractPOIs(ctx, art)
		if err != nil {
			logger.Error("Failed to extract POIs, skipping", err, "url", articleURL)
			continue
		}
		fmt.Printf("📍 Extracted %d POI(s) from %q\n", len(pois), art.Title)
		allPOIs = append(allPOIs, pois...)
	}

	if len(allPOIs) == 0 {
		return fmt.Errorf("no POIs extracted from any article")
	}

	if err := s.SavePOIs(guideID, allPOIs); err != nil {
		return err
	}
	fmt.Printf("✅ Stored %d POI(s) for guide %s\n", len(allPOIs), guideID)
	return nil
}
