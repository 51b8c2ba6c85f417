package book

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/matejkriz/bookpress/internal/template"
)

// Generator assembles a page sequence from an unordered photo pool. All
// randomness flows through a single rand source so a seeded generator is
// fully deterministic.
type Generator struct {
	registry *template.Registry
	rng      *rand.Rand
}

// NewGenerator builds a generator over the given registry. A nil rng gets a
// time-seeded source.
func NewGenerator(registry *template.Registry, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{registry: registry, rng: rng}
}

// Generate produces a cover, a leading single page, interior spreads, and a
// trailing single page from the pool. It never fails: supply shortfalls are
// resolved by degrading to smaller templates, and an empty pool yields a
// cover-only book with placeholder slots.
func (g *Generator) Generate(pool []PoolPhoto) []Page {
	var pages []Page
	pages = append(pages, g.coverPage(pool))

	// Interior pages consume a working copy of the pool without replacement.
	remaining := make([]PoolPhoto, len(pool))
	copy(remaining, pool)

	single := g.registry.Smallest()

	if len(remaining) > 0 {
		lead := remaining[0]
		remaining = remaining[1:]
		pages = append(pages, Page{
			ID:     uuid.NewString(),
			Type:   PageSingle,
			Layout: single.ID,
			Photos: []Placement{g.place(lead)},
		})
	}

	// Reserve the trailing single before the main loop so it cannot be
	// consumed by a spread.
	var reserved *PoolPhoto
	if len(remaining) > 0 {
		r := remaining[0]
		remaining = remaining[1:]
		reserved = &r
	}

	firstInterior := len(pages)
	for len(remaining) > 0 {
		var page Page
		if g.rng.Intn(2) == 0 {
			page, remaining = g.splitSpread(remaining, single)
		} else {
			page, remaining = g.fullSpread(remaining, single)
		}
		pages = append(pages, page)
	}

	switch {
	case reserved != nil:
		pages = append(pages, Page{
			ID:     uuid.NewString(),
			Type:   PageSingle,
			Layout: single.ID,
			Photos: []Placement{g.place(*reserved)},
		})
	case len(pages) > firstInterior:
		// No reservation was possible but interior pages exist; close the
		// book on a duplicate of the first interior photo.
		src := pages[firstInterior].Photos[0]
		dup := g.place(PoolPhoto{ID: src.SourceID, ImageRef: src.ImageRef, Width: src.Width, Height: src.Height})
		pages = append(pages, Page{
			ID:     uuid.NewString(),
			Type:   PageSingle,
			Layout: single.ID,
			Photos: []Placement{dup},
		})
	}

	return pages
}

// coverPage flips between a full-bleed cover and a two-sided cover. Cover
// photos are sampled with replacement; the interior pool is untouched.
func (g *Generator) coverPage(pool []PoolPhoto) Page {
	covers := g.registry.Covers()
	page := Page{ID: uuid.NewString(), Type: PageCover}

	if g.rng.Intn(2) == 0 {
		tmpl := covers[g.rng.Intn(len(covers))]
		page.Layout = tmpl.ID
		page.Photos = g.sample(pool, tmpl.PhotoCount)
		return page
	}

	back := covers[g.rng.Intn(len(covers))]
	front := covers[g.rng.Intn(len(covers))]
	page.LeftLayout = back.ID
	page.RightLayout = front.ID
	page.Photos = g.sample(pool, back.PhotoCount+front.PhotoCount)
	return page
}

// splitSpread emits a spread with independent left and right layouts. When
// the pool cannot fill the chosen pair it degrades to two single-photo
// sides, and when even that is impossible it emits a full spread instead.
func (g *Generator) splitSpread(remaining []PoolPhoto, single template.Template) (Page, []PoolPhoto) {
	left := g.randomInterior()
	right := g.randomInterior()
	need := left.PhotoCount + right.PhotoCount

	if len(remaining) < need {
		if len(remaining) >= 2 {
			left, right = single, single
			need = 2
		} else {
			return g.fullSpread(remaining, single)
		}
	}

	photos := remaining[:need]
	return Page{
		ID:          uuid.NewString(),
		Type:        PageSpread,
		LeftLayout:  left.ID,
		RightLayout: right.ID,
		Photos:      g.placeAll(photos),
	}, remaining[need:]
}

// fullSpread emits one layout spanning the whole spread, substituting an
// exact-fit or the single-photo template when the pool runs short.
func (g *Generator) fullSpread(remaining []PoolPhoto, single template.Template) (Page, []PoolPhoto) {
	tmpl := g.randomInterior()
	if len(remaining) < tmpl.PhotoCount {
		exact, ok := g.registry.ExactFit(len(remaining))
		if ok {
			tmpl = exact
		} else {
			tmpl = single
		}
	}

	take := tmpl.PhotoCount
	if take > len(remaining) {
		take = len(remaining)
	}
	photos := remaining[:take]
	return Page{
		ID:     uuid.NewString(),
		Type:   PageSpread,
		Layout: tmpl.ID,
		Photos: g.placeAll(photos),
	}, remaining[take:]
}

func (g *Generator) randomInterior() template.Template {
	interior := g.registry.Interior()
	return interior[g.rng.Intn(len(interior))]
}

// sample draws n photos with replacement. An empty pool yields placeholder
// placements with no image reference.
func (g *Generator) sample(pool []PoolPhoto, n int) []Placement {
	out := make([]Placement, 0, n)
	for i := 0; i < n; i++ {
		if len(pool) == 0 {
			out = append(out, Placement{ID: uuid.NewString(), PanZoom: NeutralPanZoom()})
			continue
		}
		out = append(out, g.place(pool[g.rng.Intn(len(pool))]))
	}
	return out
}

func (g *Generator) placeAll(photos []PoolPhoto) []Placement {
	out := make([]Placement, len(photos))
	for i, p := range photos {
		out[i] = g.place(p)
	}
	return out
}

// place copies a pool photo into a fresh placement at neutral pan/zoom.
func (g *Generator) place(p PoolPhoto) Placement {
	return Placement{
		ID:       uuid.NewString(),
		SourceID: p.ID,
		ImageRef: p.ImageRef,
		Width:    p.Width,
		Height:   p.Height,
		PanZoom:  NeutralPanZoom(),
	}
}
