package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "event-gallery",
	Short: "Event photo gallery backend with selfie matching",
	Long: `Event Gallery indexes photos uploaded to an event-scoped storage
bucket and serves them back to attendees. A submitted selfie can be matched
against the indexed photos via face-embedding similarity; until the embedding
service is enabled the matcher simply returns every photo for the event.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
