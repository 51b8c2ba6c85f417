package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matejkriz/bookpress/internal/template"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the layout template catalog",
	Run: func(cmd *cobra.Command, args []string) {
		registry := template.NewRegistry()
		fmt.Printf("%-18s %-8s %-24s %s\n", "ID", "PHOTOS", "NAME", "CATEGORY")
		for _, t := range registry.All() {
			fmt.Printf("%-18s %-8d %-24s %s\n", t.ID, t.PhotoCount, t.Name, t.Category)
		}
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
