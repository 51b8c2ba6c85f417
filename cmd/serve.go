package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/matejkriz/bookpress/internal/ai"
	"github.com/matejkriz/bookpress/internal/config"
	"github.com/matejkriz/bookpress/internal/database"
	"github.com/matejkriz/bookpress/internal/database/mock"
	"github.com/matejkriz/bookpress/internal/database/postgres"
	"github.com/matejkriz/bookpress/internal/template"
	"github.com/matejkriz/bookpress/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Bookpress web server.
The server exposes the album editing API: album CRUD, auto-layout
generation, template resolution and custom template management.
Without DATABASE_URL albums live in memory and are lost on restart.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// openStores picks the storage backend: PostgreSQL when DATABASE_URL is set,
// otherwise the in-memory store.
func openStores(cfg *config.Config) (database.AlbumWriter, database.TemplateWriter, error) {
	if cfg.Database.URL == "" {
		fmt.Println("DATABASE_URL not set, using in-memory storage")
		store := mock.NewStore()
		return store, store, nil
	}

	fmt.Println("Connecting to PostgreSQL database...")
	if err := postgres.Initialize(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}

	ctx := context.Background()
	albums, err := database.GetAlbumWriter(ctx)
	if err != nil {
		return nil, nil, err
	}
	templates, err := database.GetTemplateWriter(ctx)
	if err != nil {
		return nil, nil, err
	}
	fmt.Println("Using PostgreSQL backend")
	return albums, templates, nil
}

// loadCustomTemplates registers persisted custom templates into the registry.
func loadCustomTemplates(registry *template.Registry, store database.TemplateReader) {
	stored, err := store.ListCustomTemplates(context.Background())
	if err != nil {
		log.Printf("Warning: failed to load custom templates: %v", err)
		return
	}
	for _, t := range stored {
		if err := registry.Register(t); err != nil {
			log.Printf("Warning: skipping stored template %s: %v", t.ID, err)
		}
	}
	if len(stored) > 0 {
		fmt.Printf("Loaded %d custom templates\n", len(stored))
	}
}

// pickSuggester chooses an AI provider for template suggestions, preferring
// OpenAI when both are configured.
func pickSuggester(cfg *config.Config) ai.Provider {
	if cfg.OpenAI.Token != "" {
		fmt.Println("Template suggestions enabled (OpenAI)")
		return ai.NewOpenAIProvider(cfg.OpenAI.Token)
	}
	if cfg.Gemini.APIKey != "" {
		provider, err := ai.NewGeminiProvider(context.Background(), cfg.Gemini.APIKey)
		if err != nil {
			log.Printf("Warning: Gemini provider unavailable: %v", err)
			return nil
		}
		fmt.Println("Template suggestions enabled (Gemini)")
		return provider
	}
	fmt.Println("No AI provider configured, template suggestions disabled")
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	albums, templates, err := openStores(cfg)
	if err != nil {
		return err
	}

	registry := template.NewRegistry()
	loadCustomTemplates(registry, templates)

	server := web.NewServer(cfg, albums, templates, registry, pickSuggester(cfg))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
		if pool := postgres.GetGlobalPool(); pool != nil {
			pool.Close()
		}
	}()

	fmt.Printf("Starting Bookpress on http://localhost:%d\n", cfg.Server.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
