package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"math/rand"
	"net/http"

	"github.com/matejkriz/bookpress/internal/book"
	"github.com/matejkriz/bookpress/internal/database"
	"github.com/matejkriz/bookpress/internal/template"
)

// GenerateHandler handles the auto-layout generation endpoint
type GenerateHandler struct {
	store    database.AlbumWriter
	registry *template.Registry
}

// NewGenerateHandler creates a new generate handler
func NewGenerateHandler(store database.AlbumWriter, registry *template.Registry) *GenerateHandler {
	return &GenerateHandler{store: store, registry: registry}
}

// Generate replaces the album's pages with a fresh auto-layout over its
// photo pool. An optional seed makes the result reproducible.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	album := loadAlbum(w, r, h.store)
	if album == nil {
		return
	}

	var req struct {
		Seed *int64 `json:"seed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	var rng *rand.Rand
	if req.Seed != nil {
		rng = rand.New(rand.NewSource(*req.Seed))
	}

	gen := book.NewGenerator(h.registry, rng)
	album.Pages = gen.Generate(album.PhotoPool)

	if err := h.store.SaveAlbum(r.Context(), album); err != nil {
		log.Printf("saving album %s: %v", sanitizeForLog(album.ID), err)
		respondError(w, http.StatusInternalServerError, "failed to save album")
		return
	}
	respondJSON(w, http.StatusOK, album)
}
