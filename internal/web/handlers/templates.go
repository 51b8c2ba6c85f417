package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matejkriz/bookpress/internal/ai"
	"github.com/matejkriz/bookpress/internal/database"
	"github.com/matejkriz/bookpress/internal/geometry"
	"github.com/matejkriz/bookpress/internal/template"
)

// TemplatesHandler handles template catalog endpoints
type TemplatesHandler struct {
	registry  *template.Registry
	store     database.TemplateWriter
	suggester ai.Provider
}

// NewTemplatesHandler creates a new templates handler. suggester may be nil.
func NewTemplatesHandler(registry *template.Registry, store database.TemplateWriter, suggester ai.Provider) *TemplatesHandler {
	return &TemplatesHandler{registry: registry, store: store, suggester: suggester}
}

func (h *TemplatesHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.registry.All())
}

type resolvedTemplateResponse struct {
	Template template.Template `json:"template"`
	Rotation int               `json:"rotation"`
	Fallback bool              `json:"fallback"`
}

// Get resolves a layout id, including rotation suffixes, to its template.
// Unknown ids resolve to the default template with the fallback flag set.
func (h *TemplatesHandler) Get(w http.ResponseWriter, r *http.Request) {
	layoutID := chi.URLParam(r, "layoutId")
	ref := template.ParseLayoutRef(layoutID)
	tmpl := h.registry.Resolve(layoutID)

	respondJSON(w, http.StatusOK, resolvedTemplateResponse{
		Template: tmpl,
		Rotation: ref.RotationDegrees,
		Fallback: h.registry.IsDefault(tmpl) && ref.BaseID != tmpl.ID,
	})
}

type regionBoundaryResponse struct {
	RegionID string           `json:"regionId"`
	Kind     string           `json:"kind"`
	Points   []template.Point `json:"points,omitempty"`
	ClipPath string           `json:"clipPath"`
}

// Boundaries renders every region of a layout as a clip boundary. An
// optional inset query parameter shrinks polygon boundaries inward, the
// same operation the renderer uses to draw gaps between shaped slots.
func (h *TemplatesHandler) Boundaries(w http.ResponseWriter, r *http.Request) {
	inset := 0.0
	if raw := r.URL.Query().Get("inset"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			respondError(w, http.StatusBadRequest, "inset must be a non-negative number")
			return
		}
		inset = v
	}

	tmpl := h.registry.Resolve(chi.URLParam(r, "layoutId"))
	boundaries := make([]regionBoundaryResponse, len(tmpl.Regions))
	for i, region := range tmpl.Regions {
		b := geometry.ClipBoundary(region)
		if inset > 0 && b.Kind == geometry.KindPolygon {
			b.Points = geometry.InsetPolygon(b.Points, inset)
		}
		boundaries[i] = regionBoundaryResponse{
			RegionID: region.ID,
			Kind:     string(b.Kind),
			Points:   b.Points,
			ClipPath: b.ClipPath(),
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"layoutId":   tmpl.ID,
		"boundaries": boundaries,
	})
}

// Create registers a custom template and persists it.
func (h *TemplatesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var tmpl template.Template
	if err := json.NewDecoder(r.Body).Decode(&tmpl); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if tmpl.ID == "" {
		respondError(w, http.StatusBadRequest, "template id is required")
		return
	}
	tmpl.PhotoCount = len(tmpl.Regions)

	if err := h.registry.Register(tmpl); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	tmpl.IsCustom = true

	if err := h.store.SaveCustomTemplate(r.Context(), tmpl); err != nil {
		log.Printf("saving template %s: %v", sanitizeForLog(tmpl.ID), err)
		respondError(w, http.StatusInternalServerError, "failed to save template")
		return
	}
	respondJSON(w, http.StatusCreated, tmpl)
}

// Delete removes a custom template. System catalog templates cannot be
// deleted.
func (h *TemplatesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "layoutId")
	tmpl := h.registry.Resolve(id)
	if tmpl.ID != id || !tmpl.IsCustom {
		respondError(w, http.StatusNotFound, "custom template not found")
		return
	}

	if err := h.store.DeleteCustomTemplate(r.Context(), id); err != nil {
		log.Printf("deleting template %s: %v", sanitizeForLog(id), err)
		respondError(w, http.StatusInternalServerError, "failed to delete template")
		return
	}

	// Rebuild the custom bucket from what survived in the store.
	h.registry.Refresh()
	remaining, err := h.store.ListCustomTemplates(r.Context())
	if err != nil {
		log.Printf("reloading templates: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to reload templates")
		return
	}
	for _, t := range remaining {
		if err := h.registry.Register(t); err != nil {
			log.Printf("re-registering template %s: %v", sanitizeForLog(t.ID), err)
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// Suggest asks the configured AI provider for a template matching the
// prompt, registers the result as a custom template and persists it.
func (h *TemplatesHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if h.suggester == nil {
		respondError(w, http.StatusServiceUnavailable, "template suggestion is not configured")
		return
	}

	var req struct {
		Prompt     string `json:"prompt"`
		PhotoCount int    `json:"photoCount"`
		StyleHint  string `json:"styleHint"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Prompt == "" {
		respondError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	if req.PhotoCount < 1 {
		respondError(w, http.StatusBadRequest, "photoCount must be at least 1")
		return
	}

	tmpl, err := h.suggester.SuggestTemplate(r.Context(), req.Prompt, req.PhotoCount, req.StyleHint)
	if err != nil {
		log.Printf("template suggestion: %v", err)
		respondError(w, http.StatusBadGateway, "suggestion failed")
		return
	}
	if tmpl == nil {
		respondError(w, http.StatusUnprocessableEntity, "the model produced no usable layout")
		return
	}

	if err := h.registry.Register(*tmpl); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.store.SaveCustomTemplate(r.Context(), *tmpl); err != nil {
		log.Printf("saving suggested template %s: %v", sanitizeForLog(tmpl.ID), err)
		respondError(w, http.StatusInternalServerError, "failed to save template")
		return
	}
	respondJSON(w, http.StatusCreated, tmpl)
}
