package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matejkriz/bookpress/internal/book"
	"github.com/matejkriz/bookpress/internal/database"
	"github.com/matejkriz/bookpress/internal/template"
	"github.com/matejkriz/bookpress/internal/transform"
)

// PagesHandler handles per-page editing endpoints
type PagesHandler struct {
	store    database.AlbumWriter
	registry *template.Registry
}

// NewPagesHandler creates a new pages handler
func NewPagesHandler(store database.AlbumWriter, registry *template.Registry) *PagesHandler {
	return &PagesHandler{store: store, registry: registry}
}

// SetLayout changes a page's layout. The placement list is adjusted to the
// new layout's slot count: surplus placements are dropped from the end,
// missing slots are padded with empty placeholders. Pan/zoom of surviving
// placements is kept.
func (h *PagesHandler) SetLayout(w http.ResponseWriter, r *http.Request) {
	album := loadAlbum(w, r, h.store)
	if album == nil {
		return
	}

	var req struct {
		Layout      string `json:"layout"`
		LeftLayout  string `json:"leftLayout"`
		RightLayout string `json:"rightLayout"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	pageID := chi.URLParam(r, "pageId")
	page := findPage(album, pageID)
	if page == nil {
		respondError(w, http.StatusNotFound, "page not found")
		return
	}

	switch {
	case req.Layout != "":
		page.Layout = req.Layout
		page.LeftLayout = ""
		page.RightLayout = ""
	case req.LeftLayout != "" && req.RightLayout != "":
		if page.Type == book.PageSingle {
			respondError(w, http.StatusBadRequest, "single pages take one layout")
			return
		}
		page.Layout = ""
		page.LeftLayout = req.LeftLayout
		page.RightLayout = req.RightLayout
	default:
		respondError(w, http.StatusBadRequest, "layout or both side layouts are required")
		return
	}

	want := 0
	if page.Layout != "" {
		want = h.registry.PhotoCount(page.Layout)
	} else {
		want = h.registry.PhotoCount(page.LeftLayout) + h.registry.PhotoCount(page.RightLayout)
	}
	page.Photos = fitPlacements(page.Photos, want)

	if err := h.store.SaveAlbum(r.Context(), album); err != nil {
		log.Printf("saving album %s: %v", sanitizeForLog(album.ID), err)
		respondError(w, http.StatusInternalServerError, "failed to save album")
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// SetPanZoom commits a placement's pan/zoom. Values outside the allowed
// ranges are rejected; clamping happens client-side during interaction, so
// an out-of-range commit is a client bug, not user input to fix up.
func (h *PagesHandler) SetPanZoom(w http.ResponseWriter, r *http.Request) {
	album := loadAlbum(w, r, h.store)
	if album == nil {
		return
	}

	var req book.PanZoom
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Scale < transform.MinScale || req.Scale > transform.MaxScale ||
		req.X < 0 || req.X > 100 || req.Y < 0 || req.Y > 100 {
		respondError(w, http.StatusBadRequest, "pan/zoom out of range")
		return
	}

	page := findPage(album, chi.URLParam(r, "pageId"))
	if page == nil {
		respondError(w, http.StatusNotFound, "page not found")
		return
	}

	placementID := chi.URLParam(r, "placementId")
	var placement *book.Placement
	for i := range page.Photos {
		if page.Photos[i].ID == placementID {
			placement = &page.Photos[i]
			break
		}
	}
	if placement == nil {
		respondError(w, http.StatusNotFound, "placement not found")
		return
	}
	placement.PanZoom = req

	if err := h.store.SaveAlbum(r.Context(), album); err != nil {
		log.Printf("saving album %s: %v", sanitizeForLog(album.ID), err)
		respondError(w, http.StatusInternalServerError, "failed to save album")
		return
	}
	respondJSON(w, http.StatusOK, placement)
}

func findPage(album *book.Album, pageID string) *book.Page {
	for i := range album.Pages {
		if album.Pages[i].ID == pageID {
			return &album.Pages[i]
		}
	}
	return nil
}

// fitPlacements trims or pads a placement list to exactly want slots.
func fitPlacements(photos []book.Placement, want int) []book.Placement {
	if len(photos) > want {
		return photos[:want]
	}
	for len(photos) < want {
		photos = append(photos, book.Placement{
			ID:      uuid.NewString(),
			PanZoom: book.NeutralPanZoom(),
		})
	}
	return photos
}
