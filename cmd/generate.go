package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/matejkriz/bookpress/internal/book"
	"github.com/matejkriz/bookpress/internal/imaging"
	"github.com/matejkriz/bookpress/internal/template"
)

var generateCmd = &cobra.Command{
	Use:   "generate <directory>",
	Short: "Generate a photo book layout from a directory of images",
	Long: `Scan a directory for images, build a photo pool from them and
auto-generate a page plan: a cover, a leading single page, spreads and a
closing single page. The plan is printed as a table, or as JSON with --json.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Int64("seed", 0, "Random seed for reproducible layouts (0 = random)")
	generateCmd.Flags().Bool("json", false, "Print the generated pages as JSON")
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// scanImageFiles lists image files directly in dir, sorted by name.
func scanImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// buildPool decodes every image's dimensions into a pool photo.
func buildPool(files []string) []book.PoolPhoto {
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Scanning photos"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("photos"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionFullWidth(),
	)

	var pool []book.PoolPhoto
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nskipping %s: %v\n", path, err)
			_ = bar.Add(1)
			continue
		}
		photo, err := imaging.FromBytes(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nskipping %s: %v\n", path, err)
			_ = bar.Add(1)
			continue
		}
		photo.ImageRef = filepath.Base(path)
		pool = append(pool, photo)
		_ = bar.Add(1)
	}
	fmt.Println()
	return pool
}

func pageLayoutLabel(page book.Page) string {
	if page.Layout != "" {
		return page.Layout
	}
	return page.LeftLayout + " | " + page.RightLayout
}

func printPlan(pages []book.Page) {
	fmt.Printf("Generated %d pages:\n\n", len(pages))
	for i, page := range pages {
		fmt.Printf("  %2d. %-7s %-30s %d photos\n", i+1, page.Type, pageLayoutLabel(page), len(page.Photos))
		for _, p := range page.Photos {
			if p.ImageRef == "" {
				fmt.Printf("        - (empty slot)\n")
				continue
			}
			fmt.Printf("        - %s\n", p.ImageRef)
		}
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	files, err := scanImageFiles(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no images found in %s", args[0])
	}

	pool := buildPool(files)

	var rng *rand.Rand
	if seed := mustGetInt64(cmd, "seed"); seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	gen := book.NewGenerator(template.NewRegistry(), rng)
	pages := gen.Generate(pool)

	if mustGetBool(cmd, "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pages)
	}

	printPlan(pages)
	return nil
}
