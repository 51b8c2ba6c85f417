// Package geometry converts a template region's abstract shape into a
// renderable clip boundary and provides the polygon inset used to draw
// uniform gaps between adjacent shaped slots. Conversions never fail:
// malformed shape data degrades to the full element box.
package geometry

import (
	"fmt"
	"strings"

	"github.com/matejkriz/bookpress/internal/template"
)

// Kind discriminates the boundary variants a renderer has to handle.
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
	KindEllipse   Kind = "ellipse"
	KindPolygon   Kind = "polygon"
	KindPath      Kind = "path"
)

// Boundary is a clip description in the rendering element's own percentage
// space. The element is already positioned and sized to the region's bounds,
// so a rectangle boundary is always the full box and circles and ellipses
// are always centered at 50%.
type Boundary struct {
	Kind   Kind
	Points []template.Point // polygon vertices, element-local percent
	Path   string           // path data, page-percent units
}

// ClipBoundary converts a region into its clip boundary.
func ClipBoundary(r template.Region) Boundary {
	switch r.Shape {
	case template.ShapeRectangle:
		return fullBox()
	case template.ShapeCircle:
		return Boundary{Kind: KindCircle}
	case template.ShapeEllipse:
		return Boundary{Kind: KindEllipse}
	case template.ShapePolygon:
		return polygonBoundary(r)
	case template.ShapePath:
		if r.Path == "" {
			return fullBox()
		}
		return Boundary{Kind: KindPath, Path: r.Path}
	default:
		return fullBox()
	}
}

func fullBox() Boundary {
	return Boundary{Kind: KindRectangle}
}

// polygonBoundary re-projects page-space points into the element's local
// percentage space. The element occupies only the region's bounding box, so
// a point at the box's left edge becomes 0 and at its right edge 100.
func polygonBoundary(r template.Region) Boundary {
	if len(r.Points) < 3 || r.Bounds.Width <= 0 || r.Bounds.Height <= 0 {
		return fullBox()
	}
	points := make([]template.Point, len(r.Points))
	for i, p := range r.Points {
		points[i] = template.Point{
			(p[0] - r.Bounds.X) / r.Bounds.Width * 100,
			(p[1] - r.Bounds.Y) / r.Bounds.Height * 100,
		}
	}
	return Boundary{Kind: KindPolygon, Points: points}
}

// ClipPath renders the boundary as a CSS clip-path value.
func (b Boundary) ClipPath() string {
	switch b.Kind {
	case KindCircle:
		return "circle(50% at 50% 50%)"
	case KindEllipse:
		return "ellipse(50% 50% at 50% 50%)"
	case KindPolygon:
		parts := make([]string, len(b.Points))
		for i, p := range b.Points {
			parts[i] = fmt.Sprintf("%.4g%% %.4g%%", p[0], p[1])
		}
		return "polygon(" + strings.Join(parts, ", ") + ")"
	case KindPath:
		return fmt.Sprintf("path(%q)", b.Path)
	default:
		return "inset(0%)"
	}
}
