//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/matejkriz/bookpress/internal/book"
	"github.com/matejkriz/bookpress/internal/config"
	"github.com/matejkriz/bookpress/internal/template"
)

func setupTestContainer(t *testing.T) (*Pool, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Docker not available or container failed to start, skipping integration test: %v", err)
		return nil, func() {}
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.DatabaseConfig{
		URL:          fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port()),
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}

	pool, err := NewPool(cfg)
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("Failed to create pool: %v", err)
	}

	if err := pool.Migrate(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return pool, func() {
		pool.Close()
		container.Terminate(ctx)
	}
}

func TestAlbumRepository(t *testing.T) {
	pool, cleanup := setupTestContainer(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	repo := NewAlbumRepository(pool)

	album := &book.Album{
		Title: "Summer 2026",
		PhotoPool: []book.PoolPhoto{
			{ID: "11111111-1111-1111-1111-111111111111", ImageRef: "photos/a.jpg", Width: 3000, Height: 2000},
			{ID: "22222222-2222-2222-2222-222222222222", ImageRef: "photos/b.jpg", Width: 1600, Height: 900},
		},
		Pages: []book.Page{
			{
				Type:   book.PageSingle,
				Layout: "grid-full",
				Photos: []book.Placement{{
					ID:       "33333333-3333-3333-3333-333333333333",
					SourceID: "11111111-1111-1111-1111-111111111111",
					ImageRef: "photos/a.jpg",
					Width:    3000,
					Height:   2000,
					PanZoom:  book.PanZoom{Scale: 2, X: 40, Y: 60},
				}},
			},
		},
	}

	t.Run("CreateAndGet", func(t *testing.T) {
		if err := repo.CreateAlbum(ctx, album); err != nil {
			t.Fatalf("Failed to create album: %v", err)
		}
		if album.ID == "" {
			t.Fatal("CreateAlbum did not assign an id")
		}

		got, err := repo.GetAlbum(ctx, album.ID)
		if err != nil {
			t.Fatalf("Failed to get album: %v", err)
		}
		if got == nil {
			t.Fatal("Expected album, got nil")
		}
		if got.Title != "Summer 2026" {
			t.Errorf("Title = %q", got.Title)
		}
		if len(got.PhotoPool) != 2 || len(got.Pages) != 1 {
			t.Fatalf("Got %d pool photos and %d pages", len(got.PhotoPool), len(got.Pages))
		}
		pl := got.Pages[0].Photos[0]
		if pl.PanZoom.Scale != 2 || pl.PanZoom.X != 40 || pl.PanZoom.Y != 60 {
			t.Errorf("Placement pan/zoom = %+v", pl.PanZoom)
		}
	})

	t.Run("GetMissingReturnsNil", func(t *testing.T) {
		got, err := repo.GetAlbum(ctx, "44444444-4444-4444-4444-444444444444")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != nil {
			t.Error("Expected nil for missing album")
		}
	})

	t.Run("SaveReplacesWholeAlbum", func(t *testing.T) {
		album.Pages = nil
		album.PhotoPool = album.PhotoPool[:1]
		if err := repo.SaveAlbum(ctx, album); err != nil {
			t.Fatalf("Failed to save album: %v", err)
		}

		got, err := repo.GetAlbum(ctx, album.ID)
		if err != nil {
			t.Fatalf("Failed to get album: %v", err)
		}
		if len(got.Pages) != 0 {
			t.Errorf("Expected pages to be replaced away, got %d", len(got.Pages))
		}
		if len(got.PhotoPool) != 1 {
			t.Errorf("Expected 1 pool photo, got %d", len(got.PhotoPool))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.DeleteAlbum(ctx, album.ID); err != nil {
			t.Fatalf("Failed to delete album: %v", err)
		}
		got, _ := repo.GetAlbum(ctx, album.ID)
		if got != nil {
			t.Error("Album still present after delete")
		}
	})
}

func TestTemplateRepository(t *testing.T) {
	pool, cleanup := setupTestContainer(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	repo := NewTemplateRepository(pool)

	tmpl := template.Template{
		ID:         "custom-triangle",
		Name:       "Triangle",
		Category:   template.CategoryShaped,
		PhotoCount: 2,
		CreatedBy:  "ai",
		Regions: []template.Region{
			{
				ID:     "tri",
				Shape:  template.ShapePolygon,
				Bounds: template.Bounds{X: 0, Y: 0, Width: 100, Height: 100},
				Points: []template.Point{{0, 0}, {100, 0}, {50, 100}},
			},
			{
				ID:     "dot",
				Shape:  template.ShapeCircle,
				Bounds: template.Bounds{X: 60, Y: 60, Width: 30, Height: 30},
				Radius: &template.Radius{RX: 15, RY: 15},
				ZIndex: 1,
			},
		},
	}

	t.Run("SaveAndList", func(t *testing.T) {
		if err := repo.SaveCustomTemplate(ctx, tmpl); err != nil {
			t.Fatalf("Failed to save template: %v", err)
		}

		got, err := repo.ListCustomTemplates(ctx)
		if err != nil {
			t.Fatalf("Failed to list templates: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("Expected 1 template, got %d", len(got))
		}
		if got[0].PhotoCount != 2 || len(got[0].Regions) != 2 {
			t.Fatalf("Template regions did not round-trip: %+v", got[0])
		}
		if len(got[0].Regions[0].Points) != 3 {
			t.Errorf("Polygon points did not round-trip, got %v", got[0].Regions[0].Points)
		}
		if got[0].Regions[1].Radius == nil || got[0].Regions[1].Radius.RX != 15 {
			t.Errorf("Radius did not round-trip: %+v", got[0].Regions[1].Radius)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.DeleteCustomTemplate(ctx, tmpl.ID); err != nil {
			t.Fatalf("Failed to delete template: %v", err)
		}
		got, _ := repo.ListCustomTemplates(ctx)
		if len(got) != 0 {
			t.Error("Template still present after delete")
		}
	})
}
