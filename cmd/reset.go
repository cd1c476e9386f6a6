package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/event-gallery/internal/config"
	"github.com/kozaktomas/event-gallery/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the photo index",
	Long: `Remove every record from the photo index and delete its durable state.
Photos in the bucket are untouched; re-run "event-gallery index" to rebuild.`,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
}

func confirmAction(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func runReset(cmd *cobra.Command, args []string) error {
	skipConfirm := mustGetBool(cmd, "yes")

	cfg := config.Load()

	st := store.New(cfg.Store.MetadataPath)
	if err := st.Load(); err != nil {
		return fmt.Errorf("loading photo index: %w", err)
	}

	if st.Len() == 0 {
		fmt.Println("Photo index is already empty.")
		return nil
	}

	if !skipConfirm && !confirmAction(fmt.Sprintf("Remove all %d record(s) from the photo index? [y/N]: ", st.Len())) {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := st.Clear(); err != nil {
		return fmt.Errorf("clearing photo index: %w", err)
	}

	fmt.Println("Photo index cleared.")
	return nil
}
