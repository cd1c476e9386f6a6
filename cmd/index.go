package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/event-gallery/internal/config"
)

var indexCmd = &cobra.Command{
	Use:   "index <event-id>",
	Short: "Index all photos in the bucket for an event",
	Long: `List the photos currently stored under the event's bucket prefix and
reconcile them into the photo index. Already-indexed photos are skipped, so
the command is safe to re-run after new uploads.

Example:
  event-gallery index demo-event-1`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	eventID := args[0]
	cfg := config.Load()

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	// Embedding extraction over a large event can be slow; bound it anyway.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	fmt.Printf("Fetching photos for event %s from bucket %s...\n", eventID, cfg.Storage.Bucket)
	photoURLs, err := engine.ListPhotos(ctx, eventID)
	if err != nil {
		return fmt.Errorf("listing photos: %w", err)
	}

	if len(photoURLs) == 0 {
		fmt.Println("No photos found. Make sure:")
		fmt.Printf("  1. Bucket %q exists and is readable\n", cfg.Storage.Bucket)
		fmt.Printf("  2. Photos are stored under the prefix %s/\n", eventID)
		return nil
	}

	for _, url := range photoURLs {
		fmt.Printf("  found: %s\n", url)
	}
	fmt.Printf("Indexing %d photos...\n", len(photoURLs))

	result := engine.Reconcile(ctx, eventID, photoURLs)

	fmt.Println("Indexing complete!")
	fmt.Printf("  Newly indexed: %d\n", result.IndexedPhotos)
	fmt.Printf("  Submitted:     %d\n", result.TotalPhotos)
	if len(result.Failures) > 0 {
		fmt.Printf("  Failed:        %d\n", len(result.Failures))
		for _, url := range result.Failures {
			fmt.Printf("    - %s\n", url)
		}
	}
	return nil
}
