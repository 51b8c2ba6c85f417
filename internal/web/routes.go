package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/matejkriz/bookpress/internal/ai"
	"github.com/matejkriz/bookpress/internal/database"
	"github.com/matejkriz/bookpress/internal/template"
	"github.com/matejkriz/bookpress/internal/web/handlers"
)

func (s *Server) setupRoutes(albums database.AlbumWriter, templates database.TemplateWriter, registry *template.Registry, suggester ai.Provider) {
	albumsHandler := handlers.NewAlbumsHandler(albums, registry)
	pagesHandler := handlers.NewPagesHandler(albums, registry)
	generateHandler := handlers.NewGenerateHandler(albums, registry)
	templatesHandler := handlers.NewTemplatesHandler(registry, templates, suggester)
	uploadHandler := handlers.NewUploadHandler(albums)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Albums
		r.Get("/albums", albumsHandler.List)
		r.Post("/albums", albumsHandler.Create)
		r.Get("/albums/{id}", albumsHandler.Get)
		r.Put("/albums/{id}", albumsHandler.Update)
		r.Delete("/albums/{id}", albumsHandler.Delete)
		r.Get("/albums/{id}/validate", albumsHandler.Validate)

		// Layout generation and photo pool
		r.Post("/albums/{id}/generate", generateHandler.Generate)
		r.Post("/albums/{id}/photos", uploadHandler.Upload)

		// Page editing
		r.Put("/albums/{id}/pages/{pageId}/layout", pagesHandler.SetLayout)
		r.Put("/albums/{id}/pages/{pageId}/placements/{placementId}/panzoom", pagesHandler.SetPanZoom)

		// Templates
		r.Get("/templates", templatesHandler.List)
		r.Post("/templates", templatesHandler.Create)
		r.Post("/templates/suggest", templatesHandler.Suggest)
		r.Get("/templates/{layoutId}", templatesHandler.Get)
		r.Delete("/templates/{layoutId}", templatesHandler.Delete)
		r.Get("/templates/{layoutId}/boundaries", templatesHandler.Boundaries)
	})
}
