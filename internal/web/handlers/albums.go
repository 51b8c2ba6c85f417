package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matejkriz/bookpress/internal/book"
	"github.com/matejkriz/bookpress/internal/database"
	"github.com/matejkriz/bookpress/internal/template"
)

// AlbumsHandler handles album CRUD endpoints
type AlbumsHandler struct {
	store    database.AlbumWriter
	registry *template.Registry
}

// NewAlbumsHandler creates a new albums handler
func NewAlbumsHandler(store database.AlbumWriter, registry *template.Registry) *AlbumsHandler {
	return &AlbumsHandler{store: store, registry: registry}
}

// loadAlbum fetches an album by the {id} URL parameter. It writes the error
// response itself and returns nil when the caller should stop.
func loadAlbum(w http.ResponseWriter, r *http.Request, store database.AlbumReader) *book.Album {
	id := chi.URLParam(r, "id")
	album, err := store.GetAlbum(r.Context(), id)
	if err != nil {
		log.Printf("loading album %s: %v", sanitizeForLog(id), err)
		respondError(w, http.StatusInternalServerError, "failed to load album")
		return nil
	}
	if album == nil {
		respondError(w, http.StatusNotFound, "album not found")
		return nil
	}
	return album
}

func (h *AlbumsHandler) List(w http.ResponseWriter, r *http.Request) {
	albums, err := h.store.ListAlbums(r.Context())
	if err != nil {
		log.Printf("listing albums: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list albums")
		return
	}
	if albums == nil {
		albums = []book.Album{}
	}
	respondJSON(w, http.StatusOK, albums)
}

func (h *AlbumsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	album := &book.Album{Title: req.Title}
	if err := h.store.CreateAlbum(r.Context(), album); err != nil {
		log.Printf("creating album: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to create album")
		return
	}
	respondJSON(w, http.StatusCreated, album)
}

func (h *AlbumsHandler) Get(w http.ResponseWriter, r *http.Request) {
	album := loadAlbum(w, r, h.store)
	if album == nil {
		return
	}
	respondJSON(w, http.StatusOK, album)
}

// Update replaces the whole album: title, pages and photo pool become exactly
// the request body. Clients send the full document back after editing.
func (h *AlbumsHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing := loadAlbum(w, r, h.store)
	if existing == nil {
		return
	}

	var album book.Album
	if err := json.NewDecoder(r.Body).Decode(&album); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	album.ID = existing.ID
	if album.Title == "" {
		album.Title = existing.Title
	}

	if err := h.store.SaveAlbum(r.Context(), &album); err != nil {
		log.Printf("saving album %s: %v", sanitizeForLog(album.ID), err)
		respondError(w, http.StatusInternalServerError, "failed to save album")
		return
	}
	respondJSON(w, http.StatusOK, album)
}

func (h *AlbumsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteAlbum(r.Context(), id); err != nil {
		log.Printf("deleting album %s: %v", sanitizeForLog(id), err)
		respondError(w, http.StatusInternalServerError, "failed to delete album")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// Validate reports layout warnings for an album without modifying it.
func (h *AlbumsHandler) Validate(w http.ResponseWriter, r *http.Request) {
	album := loadAlbum(w, r, h.store)
	if album == nil {
		return
	}

	warnings := book.ValidateAlbum(h.registry, *album)
	if warnings == nil {
		warnings = []book.ValidationWarning{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"albumId":  album.ID,
		"warnings": warnings,
	})
}
