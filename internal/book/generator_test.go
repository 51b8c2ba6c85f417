package book

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/matejkriz/bookpress/internal/template"
)

func makePool(n int) []PoolPhoto {
	pool := make([]PoolPhoto, n)
	for i := range pool {
		pool[i] = PoolPhoto{
			ID:       fmt.Sprintf("photo-%d", i),
			ImageRef: fmt.Sprintf("photos/photo-%d.jpg", i),
			Width:    3000,
			Height:   2000,
		}
	}
	return pool
}

// interiorPages skips the cover, which samples with replacement and does
// not consume the pool.
func interiorPages(pages []Page) []Page {
	return pages[1:]
}

func TestGenerateSevenPhotos(t *testing.T) {
	reg := template.NewRegistry()
	gen := NewGenerator(reg, rand.New(rand.NewSource(7)))
	pool := makePool(7)

	pages := gen.Generate(pool)

	if pages[0].Type != PageCover {
		t.Fatalf("first page type = %s, want cover", pages[0].Type)
	}

	interior := interiorPages(pages)
	if len(interior) < 2 {
		t.Fatalf("expected at least leading and trailing singles, got %d interior pages", len(interior))
	}
	if interior[0].Type != PageSingle || len(interior[0].Photos) != 1 {
		t.Errorf("leading page = %s with %d photos, want single with 1", interior[0].Type, len(interior[0].Photos))
	}
	last := interior[len(interior)-1]
	if last.Type != PageSingle || len(last.Photos) != 1 {
		t.Errorf("trailing page = %s with %d photos, want single with 1", last.Type, len(last.Photos))
	}

	// Leading pops the first photo, the reservation the second.
	if interior[0].Photos[0].SourceID != "photo-0" {
		t.Errorf("leading photo source = %s, want photo-0", interior[0].Photos[0].SourceID)
	}
	if last.Photos[0].SourceID != "photo-1" {
		t.Errorf("trailing photo source = %s, want the reserved photo-1", last.Photos[0].SourceID)
	}

	// The spreads in between consume the remaining 5 exactly once each.
	consumed := 0
	seen := map[string]int{}
	for _, page := range interior {
		for _, p := range page.Photos {
			consumed++
			seen[p.SourceID]++
		}
	}
	if consumed != 7 {
		t.Errorf("interior pages consumed %d photos, want 7", consumed)
	}
	for src, n := range seen {
		if n != 1 {
			t.Errorf("source %s placed %d times in the interior, want once", src, n)
		}
	}

	// Placement ids are fresh everywhere, including the cover.
	ids := map[string]bool{}
	for _, page := range pages {
		for _, p := range page.Photos {
			if ids[p.ID] {
				t.Errorf("duplicate placement id %s", p.ID)
			}
			ids[p.ID] = true
			if p.PanZoom != NeutralPanZoom() {
				t.Errorf("placement %s starts at %+v, want neutral pan/zoom", p.ID, p.PanZoom)
			}
		}
	}
}

func TestGenerateNeverFails(t *testing.T) {
	reg := template.NewRegistry()

	for _, size := range []int{0, 1, 2, 3, 5, 250} {
		t.Run(fmt.Sprintf("pool-%d", size), func(t *testing.T) {
			gen := NewGenerator(reg, rand.New(rand.NewSource(int64(size))))
			pages := gen.Generate(makePool(size))

			if len(pages) == 0 || pages[0].Type != PageCover {
				t.Fatal("every book must start with a cover page")
			}

			for i, page := range pages {
				want := 0
				if page.Layout != "" {
					want = reg.PhotoCount(page.Layout)
				}
				if page.LeftLayout != "" {
					want += reg.PhotoCount(page.LeftLayout)
				}
				if page.RightLayout != "" {
					want += reg.PhotoCount(page.RightLayout)
				}
				if len(page.Photos) != want {
					t.Errorf("page %d (%s): %d photos for layouts needing %d", i, page.Type, len(page.Photos), want)
				}
			}

			consumed := 0
			for _, page := range interiorPages(pages) {
				consumed += len(page.Photos)
			}
			if consumed > size {
				t.Errorf("interior pages consumed %d photos from a pool of %d", consumed, size)
			}
		})
	}
}

func TestGenerateEmptyPoolCoverOnly(t *testing.T) {
	gen := NewGenerator(template.NewRegistry(), rand.New(rand.NewSource(1)))

	pages := gen.Generate(nil)
	if len(pages) != 1 {
		t.Fatalf("empty pool produced %d pages, want cover only", len(pages))
	}
	for _, p := range pages[0].Photos {
		if p.ImageRef != "" || p.SourceID != "" {
			t.Errorf("cover placement over an empty pool should be a placeholder, got %+v", p)
		}
	}
}

func TestGenerateDeterministicUnderSeed(t *testing.T) {
	reg := template.NewRegistry()
	pool := makePool(23)

	a := NewGenerator(reg, rand.New(rand.NewSource(42))).Generate(pool)
	b := NewGenerator(reg, rand.New(rand.NewSource(42))).Generate(pool)

	if len(a) != len(b) {
		t.Fatalf("page counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Layout != b[i].Layout ||
			a[i].LeftLayout != b[i].LeftLayout || a[i].RightLayout != b[i].RightLayout {
			t.Errorf("page %d differs: %+v vs %+v", i, a[i], b[i])
		}
		for j := range a[i].Photos {
			if a[i].Photos[j].SourceID != b[i].Photos[j].SourceID {
				t.Errorf("page %d photo %d source differs: %s vs %s",
					i, j, a[i].Photos[j].SourceID, b[i].Photos[j].SourceID)
			}
		}
	}
}
