package transform

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/matejkriz/bookpress/internal/book"
)

func TestCoverScale(t *testing.T) {
	tests := []struct {
		name                     string
		slotW, slotH, imgW, imgH float64
		want                     float64
	}{
		{"16:9 photo in square slot", 400, 400, 1600, 900, 0.4444},
		{"exact fit", 400, 300, 400, 300, 1},
		{"upscale small photo", 800, 600, 400, 300, 2},
		{"portrait photo in landscape slot", 600, 400, 900, 1600, 0.6667},
		{"zero dimensions treated as 1", 0, 0, 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoverScale(tt.slotW, tt.slotH, tt.imgW, tt.imgH)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("CoverScale = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestSixteenNineInSquareSlot(t *testing.T) {
	// At scale 1 the height is the limiting axis: visible height is exactly
	// the slot height, and the extra width permits horizontal pan only.
	cover := CoverScale(400, 400, 1600, 900)
	if math.Abs(900*cover-400) > 0.01 {
		t.Errorf("visible height = %.2f, want exactly 400", 900*cover)
	}

	pz := Clamp(book.PanZoom{Scale: 1, X: 0, Y: 0}, 400, 400, 1600, 900)
	if math.Abs(pz.Y-50) > 0.01 {
		t.Errorf("y = %.2f, want forced to 50 on the limiting axis", pz.Y)
	}
	if pz.X >= 50 {
		t.Errorf("x = %.2f, want pushed below 50 but not forced to it", pz.X)
	}

	visW := 1600 * cover
	overscan := (visW - 400) / visW * 50
	if math.Abs(pz.X-(50-overscan)) > 0.01 {
		t.Errorf("x = %.2f, want clamped to %.2f", pz.X, 50-overscan)
	}
}

func TestClampCoverInvariant(t *testing.T) {
	slots := [][2]float64{{400, 400}, {300, 500}, {1024, 768}, {50, 900}}
	images := [][2]float64{{1600, 900}, {900, 1600}, {100, 100}, {4000, 3000}}
	scales := []float64{0.2, 1, 2.5, 5, 9}

	for _, s := range slots {
		for _, img := range images {
			for _, scale := range scales {
				pz := Clamp(book.PanZoom{Scale: scale, X: -20, Y: 120}, s[0], s[1], img[0], img[1])

				if pz.Scale < MinScale || pz.Scale > MaxScale {
					t.Fatalf("scale %.2f escaped [%v,%v]", pz.Scale, MinScale, MaxScale)
				}

				total := CoverScale(s[0], s[1], img[0], img[1]) * pz.Scale
				visW, visH := img[0]*total, img[1]*total
				if visW < s[0]-0.01 || visH < s[1]-0.01 {
					t.Fatalf("visible %.1fx%.1f does not cover slot %.0fx%.0f", visW, visH, s[0], s[1])
				}

				ox := math.Max(0, visW-s[0]) / visW * 50
				oy := math.Max(0, visH-s[1]) / visH * 50
				if pz.X < 50-ox-0.01 || pz.X > 50+ox+0.01 || pz.Y < 50-oy-0.01 || pz.Y > 50+oy+0.01 {
					t.Fatalf("pan (%.2f, %.2f) outside 50±(%.2f, %.2f)", pz.X, pz.Y, ox, oy)
				}
			}
		}
	}
}

func TestClampMatchingAspectForcesCenter(t *testing.T) {
	pz := Clamp(book.PanZoom{Scale: 1, X: 10, Y: 90}, 400, 300, 1600, 1200)
	if pz.X != 50 || pz.Y != 50 {
		t.Errorf("scale 1 with matching aspect must center, got (%.2f, %.2f)", pz.X, pz.Y)
	}
}

func TestClampDegenerateInput(t *testing.T) {
	pz := Clamp(book.PanZoom{}, 0, 0, 0, 0)
	if pz != book.NeutralPanZoom() {
		t.Errorf("degenerate input clamped to %+v, want neutral", pz)
	}
}

func TestWheelCommitsAfterDebounce(t *testing.T) {
	var mu sync.Mutex
	var commits []book.PanZoom

	tr := New(400, 400, 1600, 900, book.NeutralPanZoom(), func(pz book.PanZoom) {
		mu.Lock()
		commits = append(commits, pz)
		mu.Unlock()
	})
	tr.debounce = 20 * time.Millisecond

	tr.Wheel(0.5)
	tr.Wheel(0.5)
	tr.Wheel(0.5)

	if !tr.Interacting() {
		t.Error("transform should report interacting while the debounce is armed")
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(commits) != 1 {
		t.Fatalf("got %d commits, want exactly one after the burst", len(commits))
	}
	if math.Abs(commits[0].Scale-2.5) > 0.01 {
		t.Errorf("committed scale = %.2f, want 2.5", commits[0].Scale)
	}
	if tr.Interacting() {
		t.Error("transform should be idle after the commit")
	}
}

func TestDragCommitsOnRelease(t *testing.T) {
	var mu sync.Mutex
	var commits []book.PanZoom

	tr := New(400, 400, 1600, 900, book.NeutralPanZoom(), func(pz book.PanZoom) {
		mu.Lock()
		commits = append(commits, pz)
		mu.Unlock()
	})

	tr.BeginDrag()
	tr.Drag(40, 0)
	tr.Drag(40, 0)

	mu.Lock()
	if len(commits) != 0 {
		t.Fatalf("drag must not commit before release, got %d commits", len(commits))
	}
	mu.Unlock()

	moved := tr.Value()
	if moved.X >= 50 {
		t.Errorf("dragging right should move the visible center left, x = %.2f", moved.X)
	}

	tr.EndDrag()

	mu.Lock()
	defer mu.Unlock()
	if len(commits) != 1 {
		t.Fatalf("got %d commits, want one on release", len(commits))
	}
	if commits[0] != moved {
		t.Errorf("committed %+v, want the final working value %+v", commits[0], moved)
	}
}

func TestDragIgnoredWhenIdle(t *testing.T) {
	tr := New(400, 400, 1600, 900, book.NeutralPanZoom(), nil)
	before := tr.Value()
	tr.Drag(100, 100)
	if tr.Value() != before {
		t.Error("drag without BeginDrag must not move the working copy")
	}
}

func TestSyncIgnoredWhileInteracting(t *testing.T) {
	tr := New(400, 400, 1600, 900, book.NeutralPanZoom(), nil)

	tr.BeginDrag()
	tr.Drag(30, 0)
	during := tr.Value()

	tr.Sync(book.PanZoom{Scale: 3, X: 50, Y: 50})
	if tr.Value() != during {
		t.Error("external sync must be ignored while dragging")
	}

	tr.EndDrag()
	tr.Sync(book.PanZoom{Scale: 3, X: 50, Y: 50})
	if got := tr.Value(); math.Abs(got.Scale-3) > 0.01 {
		t.Errorf("sync after interaction should apply, scale = %.2f", got.Scale)
	}
}

func TestSetSlotSizeReclamps(t *testing.T) {
	tr := New(400, 400, 1600, 900, book.PanZoom{Scale: 1, X: 99, Y: 50}, nil)

	// Horizontal overscan in the square slot permits an off-center x.
	if x := tr.Value().X; x <= 50 {
		t.Fatalf("x = %.2f, want clamped above 50", x)
	}

	// At the photo's own aspect ratio there is no slack left; the pan
	// snaps back to center while the logical scale stays untouched.
	tr.SetSlotSize(400, 225)
	got := tr.Value()
	if got.X != 50 {
		t.Errorf("x = %.2f after resize, want 50", got.X)
	}
	if got.Scale != 1 {
		t.Errorf("scale = %.2f after resize, want unchanged 1", got.Scale)
	}
}
