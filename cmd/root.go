package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bookpress",
	Short: "A layout and composition engine for photo books",
	Long: `Bookpress builds print-ready photo book layouts. It resolves page
layouts from a template catalog, auto-distributes a photo pool across a
cover, single pages and spreads, and serves an HTTP API for album editing
with per-slot pan/zoom.`,
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
