package book

import (
	"fmt"

	"github.com/matejkriz/bookpress/internal/template"
)

// ValidationWarning describes a layout issue found during validation.
type ValidationWarning struct {
	PageIndex int    `json:"pageIndex"`
	SlotIndex int    `json:"slotIndex"`
	Message   string `json:"message"`
	Severity  string `json:"severity"` // "error" or "warning"
}

// minSlotPixels is the smallest natural image edge that still prints
// acceptably in a half-page slot; smaller sources get a low-resolution
// warning.
const minSlotPixels = 800

// ValidateAlbum checks every page for layout integrity issues: slot counts
// that disagree with the resolved layout, out-of-range pan/zoom values, and
// photos too small to print well.
func ValidateAlbum(registry *template.Registry, album Album) []ValidationWarning {
	var warnings []ValidationWarning
	for i, page := range album.Pages {
		warnings = append(warnings, validatePage(registry, i, page)...)
	}
	return warnings
}

func validatePage(registry *template.Registry, pageIndex int, page Page) []ValidationWarning {
	var warnings []ValidationWarning

	want := 0
	if page.Layout != "" {
		want = registry.PhotoCount(page.Layout)
	}
	if page.LeftLayout != "" {
		want += registry.PhotoCount(page.LeftLayout)
	}
	if page.RightLayout != "" {
		want += registry.PhotoCount(page.RightLayout)
	}
	if want > 0 && len(page.Photos) != want {
		warnings = append(warnings, ValidationWarning{
			PageIndex: pageIndex,
			SlotIndex: -1,
			Message:   fmt.Sprintf("page has %d photos but its layout needs %d", len(page.Photos), want),
			Severity:  "error",
		})
	}

	for i, p := range page.Photos {
		if p.ImageRef == "" {
			continue
		}
		if p.Width > 0 && p.Width < minSlotPixels && p.Height < minSlotPixels {
			warnings = append(warnings, ValidationWarning{
				PageIndex: pageIndex,
				SlotIndex: i,
				Message:   fmt.Sprintf("photo is %dx%d px, below the %d px print threshold", p.Width, p.Height, minSlotPixels),
				Severity:  "warning",
			})
		}
		pz := p.PanZoom
		if pz.Scale < 1 || pz.Scale > 5 || pz.X < 0 || pz.X > 100 || pz.Y < 0 || pz.Y > 100 {
			warnings = append(warnings, ValidationWarning{
				PageIndex: pageIndex,
				SlotIndex: i,
				Message:   fmt.Sprintf("pan/zoom out of range: scale=%.2f x=%.1f y=%.1f", pz.Scale, pz.X, pz.Y),
				Severity:  "error",
			})
		}
	}

	return warnings
}
