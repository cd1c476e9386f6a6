package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/event-gallery/internal/config"
	"github.com/kozaktomas/event-gallery/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current state of the photo index",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	st := store.New(cfg.Store.MetadataPath)
	if err := st.Load(); err != nil {
		return fmt.Errorf("loading photo index: %w", err)
	}

	events := make(map[string]int)
	for rec := range st.All() {
		events[rec.EventID]++
	}

	fmt.Printf("Photo index: %s\n", cfg.Store.MetadataPath)
	fmt.Printf("  Records:       %d\n", st.Len())
	fmt.Printf("  Unique photos: %d\n", st.CountUniqueURLs())
	fmt.Printf("  Events:        %d\n", len(events))
	for event, count := range events {
		fmt.Printf("    %s: %d photos\n", event, count)
	}
	return nil
}
