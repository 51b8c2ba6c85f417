package template

import (
	"fmt"
	"sync"
)

// Registry holds the template catalogs and answers every layout lookup in
// the application. Lookups search grid, then advanced, then cover templates,
// so a grid id shadows an advanced or cover id with the same name. Custom
// templates registered at runtime are searched last.
type Registry struct {
	mu       sync.RWMutex
	grid     []Template
	advanced []Template
	cover    []Template
	custom   []Template
}

// NewRegistry builds a registry from the embedded system catalog.
func NewRegistry() *Registry {
	c := loadCatalog()
	return &Registry{
		grid:     c.Grid,
		advanced: c.Advanced,
		cover:    c.Cover,
	}
}

// Resolve maps a layout id to its template. The rotation suffix is stripped
// before lookup. Unknown ids resolve to the default template, so a page with
// a stale or misspelled layout always renders something sensible.
func (r *Registry) Resolve(layoutID string) Template {
	base := ParseLayoutRef(layoutID).BaseID

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, bucket := range [][]Template{r.grid, r.advanced, r.cover, r.custom} {
		for _, t := range bucket {
			if t.ID == base {
				return t
			}
		}
	}
	return r.grid[0]
}

// PhotoCount reports how many photos the layout needs. This is the single
// source of truth for slots-per-layout; callers must not count regions from
// a cached template themselves.
func (r *Registry) PhotoCount(layoutID string) int {
	return len(r.Resolve(layoutID).Regions)
}

// Default returns the fallback template used for unknown layout ids.
func (r *Registry) Default() Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.grid[0]
}

// IsDefault reports whether t is the fallback template. Handlers use it to
// tell a genuine first-grid-layout page from a failed lookup.
func (r *Registry) IsDefault(t Template) bool {
	return t.ID == r.Default().ID
}

// Register adds a custom template to the registry. The template is validated
// first and must not shadow an existing id.
func (r *Registry) Register(t Template) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("register template: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, bucket := range [][]Template{r.grid, r.advanced, r.cover, r.custom} {
		for _, existing := range bucket {
			if existing.ID == t.ID {
				return fmt.Errorf("register template: id %s already exists", t.ID)
			}
		}
	}
	t.IsCustom = true
	r.custom = append(r.custom, t)
	return nil
}

// Refresh drops all custom templates, returning the registry to the system
// catalog.
func (r *Registry) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom = nil
}

// All returns every template in lookup order.
func (r *Registry) All() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Template, 0, len(r.grid)+len(r.advanced)+len(r.cover)+len(r.custom))
	out = append(out, r.grid...)
	out = append(out, r.advanced...)
	out = append(out, r.cover...)
	out = append(out, r.custom...)
	return out
}

// Interior returns the templates eligible for interior pages: everything
// except the cover catalog.
func (r *Registry) Interior() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Template, 0, len(r.grid)+len(r.advanced)+len(r.custom))
	out = append(out, r.grid...)
	out = append(out, r.advanced...)
	out = append(out, r.custom...)
	return out
}

// Covers returns the cover catalog.
func (r *Registry) Covers() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Template, len(r.cover))
	copy(out, r.cover)
	return out
}

// ExactFit finds an interior template requiring exactly n photos.
func (r *Registry) ExactFit(n int) (Template, bool) {
	for _, t := range r.Interior() {
		if t.PhotoCount == n {
			return t, true
		}
	}
	return Template{}, false
}

// Smallest returns the interior template with the fewest photos.
func (r *Registry) Smallest() Template {
	interior := r.Interior()
	best := interior[0]
	for _, t := range interior[1:] {
		if t.PhotoCount < best.PhotoCount {
			best = t
		}
	}
	return best
}
