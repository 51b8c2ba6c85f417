// Package book holds the album domain model and the auto-layout generator
// that distributes a photo pool across a cover, single pages, and spreads.
package book

import "time"

// PanZoom positions a photo inside its slot. Scale is a multiplier on top
// of the cover-fit scale, X and Y are the visible center of the image in
// percent of its own size.
type PanZoom struct {
	Scale float64 `json:"scale"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// NeutralPanZoom is the starting position: cover-fit, centered.
func NeutralPanZoom() PanZoom {
	return PanZoom{Scale: 1, X: 50, Y: 50}
}

// PoolPhoto is a photo in the album's pool, independent of any page. One
// pool photo may be placed into zero, one, or many slots.
type PoolPhoto struct {
	ID       string `json:"id"`
	ImageRef string `json:"imageRef"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Placement is one photo occupying one slot. It has its own identity,
// distinct from the pool photo it was copied from, so editing one
// placement's pan/zoom never affects another placement of the same photo.
// An empty ImageRef marks a placeholder slot awaiting a photo.
type Placement struct {
	ID       string  `json:"id"`
	SourceID string  `json:"sourceId,omitempty"`
	ImageRef string  `json:"imageRef"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	PanZoom  PanZoom `json:"panAndZoom"`
}

// PageType distinguishes the page units a book is made of.
type PageType string

const (
	PageCover  PageType = "cover"
	PageSingle PageType = "single"
	PageSpread PageType = "spread"
)

// Page is one page unit. Single pages and unified spreads use Layout; split
// spreads and two-sided covers use LeftLayout and RightLayout with Photos
// partitioned left-first.
type Page struct {
	ID          string      `json:"id"`
	Type        PageType    `json:"type"`
	Layout      string      `json:"layout,omitempty"`
	LeftLayout  string      `json:"leftLayout,omitempty"`
	RightLayout string      `json:"rightLayout,omitempty"`
	Photos      []Placement `json:"photos"`
}

// Album is the persistence unit: the ordered pages plus the photo pool they
// draw from.
type Album struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Pages     []Page      `json:"pages"`
	PhotoPool []PoolPhoto `json:"photoPool"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
