// Package transform implements the per-slot pan/zoom state machine: cover
// fit scaling, overscan-based pan clamping, and debounced commits back to
// the shared page model.
package transform

import (
	"math"
	"sync"
	"time"

	"github.com/matejkriz/bookpress/internal/book"
)

const (
	// MinScale and MaxScale bound the user zoom multiplier on top of the
	// cover-fit scale.
	MinScale = 1.0
	MaxScale = 5.0

	// wheelDebounce is the idle time after the last wheel event before the
	// scale change commits to the shared model.
	wheelDebounce = 200 * time.Millisecond
)

// CoverScale is the minimum uniform scale at which an image of natural size
// (imgW, imgH) fully covers a slot of (slotW, slotH) with no letterboxing.
// Non-positive dimensions are treated as 1.
func CoverScale(slotW, slotH, imgW, imgH float64) float64 {
	slotW, slotH = sane(slotW), sane(slotH)
	imgW, imgH = sane(imgW), sane(imgH)
	return math.Max(slotW/imgW, slotH/imgH)
}

// Clamp forces a pan/zoom value into range for the given slot and image
// dimensions: scale into [MinScale, MaxScale], then x and y into
// 50 +- overscan, where overscan is the slack of the scaled image beyond
// the slot expressed in percent of the image's own visible size. A clamped
// value can never expose slot background.
func Clamp(pz book.PanZoom, slotW, slotH, imgW, imgH float64) book.PanZoom {
	slotW, slotH = sane(slotW), sane(slotH)
	imgW, imgH = sane(imgW), sane(imgH)

	scale := pz.Scale
	if scale < MinScale || math.IsNaN(scale) {
		scale = MinScale
	}
	if scale > MaxScale {
		scale = MaxScale
	}

	total := CoverScale(slotW, slotH, imgW, imgH) * scale
	visW := imgW * total
	visH := imgH * total

	return book.PanZoom{
		Scale: scale,
		X:     clampAxis(pz.X, visW, slotW),
		Y:     clampAxis(pz.Y, visH, slotH),
	}
}

// clampAxis bounds the visible-center coordinate so the image edge never
// crosses into the slot on this axis.
func clampAxis(v, visible, slot float64) float64 {
	overscan := math.Max(0, visible-slot) / visible * 50
	return math.Min(math.Max(v, 50-overscan), 50+overscan)
}

func sane(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 1
	}
	return v
}

// Transform is the interactive controller for one rendered photo slot. It
// holds a private working copy of the pan/zoom value while the user drags
// or zooms, ignores external model changes during the interaction, and
// commits through the callback: drags on release, wheel zooms after an
// idle debounce. Each slot owns its own Transform; commits for a single
// slot are linearized by its mutex.
type Transform struct {
	mu sync.Mutex

	slotW, slotH float64
	imgW, imgH   float64

	committed book.PanZoom
	working   book.PanZoom

	dragging bool
	pending  bool // wheel edits awaiting debounce
	timer    *time.Timer

	commit   func(book.PanZoom)
	debounce time.Duration
}

// New builds a transform for a slot of (slotW, slotH) pixels holding an
// image of natural size (imgW, imgH). The commit callback receives every
// value the transform writes back to the shared model.
func New(slotW, slotH, imgW, imgH float64, initial book.PanZoom, commit func(book.PanZoom)) *Transform {
	t := &Transform{
		slotW:    sane(slotW),
		slotH:    sane(slotH),
		imgW:     sane(imgW),
		imgH:     sane(imgH),
		commit:   commit,
		debounce: wheelDebounce,
	}
	t.committed = t.clamp(initial)
	t.working = t.committed
	return t
}

func (t *Transform) clamp(pz book.PanZoom) book.PanZoom {
	return Clamp(pz, t.slotW, t.slotH, t.imgW, t.imgH)
}

// CoverScale reports the current cover-fit scale for the slot.
func (t *Transform) CoverScale() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return CoverScale(t.slotW, t.slotH, t.imgW, t.imgH)
}

// Value returns the pan/zoom currently in effect, including uncommitted
// in-progress edits.
func (t *Transform) Value() book.PanZoom {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.working
}

// Interacting reports whether a drag or a debounced wheel edit is in flight.
func (t *Transform) Interacting() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dragging || t.pending
}

// Wheel applies a zoom delta to the working copy and arms the commit
// debounce. A newer wheel event supersedes the pending timer, so only the
// final value of a burst commits.
func (t *Transform) Wheel(delta float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.working.Scale += delta
	t.working = t.clamp(t.working)
	t.pending = true

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.debounce, t.commitWheel)
}

func (t *Transform) commitWheel() {
	t.mu.Lock()
	if !t.pending {
		t.mu.Unlock()
		return
	}
	t.pending = false
	t.committed = t.working
	value := t.working
	cb := t.commit
	t.mu.Unlock()

	if cb != nil {
		cb(value)
	}
}

// BeginDrag enters the interacting state. A pending wheel commit is folded
// into the drag: it will commit together on release.
func (t *Transform) BeginDrag() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.dragging = true
	if t.timer != nil {
		t.timer.Stop()
	}
}

// Drag translates a pointer movement in slot pixels into a pan of the
// working copy. The image follows the pointer, so the visible center moves
// against the delta. Calls outside a drag are ignored.
func (t *Transform) Drag(dxPx, dyPx float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.dragging {
		return
	}

	total := CoverScale(t.slotW, t.slotH, t.imgW, t.imgH) * t.working.Scale
	visW := t.imgW * total
	visH := t.imgH * total

	t.working.X -= dxPx / visW * 100
	t.working.Y -= dyPx / visH * 100
	t.working = t.clamp(t.working)
}

// EndDrag leaves the interacting state and commits the final value
// immediately.
func (t *Transform) EndDrag() {
	t.mu.Lock()
	if !t.dragging {
		t.mu.Unlock()
		return
	}
	t.dragging = false
	t.pending = false
	if t.timer != nil {
		t.timer.Stop()
	}
	t.committed = t.working
	value := t.working
	cb := t.commit
	t.mu.Unlock()

	if cb != nil {
		cb(value)
	}
}

// Sync adopts an external change to the stored pan/zoom (an undo, another
// client). While an interaction is in flight the change is ignored; the
// in-progress edit wins and overwrites it on commit.
func (t *Transform) Sync(pz book.PanZoom) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dragging || t.pending {
		return
	}
	t.committed = t.clamp(pz)
	t.working = t.committed
}

// SetSlotSize reacts to the slot's on-screen size changing: the cover scale
// is recomputed and the current values re-clamped, without altering the
// user's logical scale and position.
func (t *Transform) SetSlotSize(w, h float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.slotW, t.slotH = sane(w), sane(h)
	t.working = t.clamp(t.working)
	t.committed = t.clamp(t.committed)
}
