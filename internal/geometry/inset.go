package geometry

import (
	"math"

	"github.com/matejkriz/bookpress/internal/template"
)

const (
	// miterCap bounds the corner compensation so sharp spikes cannot push a
	// vertex arbitrarily far inward.
	miterCap = 3.0
	// bisectorEpsilon guards the miter division against near-180 degree turns.
	bisectorEpsilon = 1e-3
)

// InsetPolygon pulls every vertex of a closed polygon inward by amount,
// measured perpendicular to the edges, so the visual gap stays uniform
// regardless of the local turning angle. Points are assumed to wind
// clockwise in screen coordinates (y grows downward). Degenerate input
// (fewer than 3 points or amount <= 0) is returned unchanged.
func InsetPolygon(points []template.Point, amount float64) []template.Point {
	if len(points) < 3 || amount <= 0 {
		return points
	}

	n := len(points)
	out := make([]template.Point, n)
	for i := 0; i < n; i++ {
		prev := points[(i+n-1)%n]
		curr := points[i]
		next := points[(i+1)%n]

		n1, ok1 := inwardNormal(prev, curr)
		n2, ok2 := inwardNormal(curr, next)
		if !ok1 || !ok2 {
			out[i] = curr
			continue
		}

		bx, by := n1[0]+n2[0], n1[1]+n2[1]
		blen := math.Hypot(bx, by)
		if blen < bisectorEpsilon {
			// Edges reverse direction; there is no meaningful inward side.
			out[i] = curr
			continue
		}
		bx /= blen
		by /= blen

		factor := 1.0
		if dot := n1[0]*bx + n1[1]*by; dot > bisectorEpsilon {
			factor = math.Min(1/dot, miterCap)
		}

		out[i] = template.Point{
			curr[0] + bx*amount*factor,
			curr[1] + by*amount*factor,
		}
	}
	return out
}

// inwardNormal returns the unit normal of edge a->b pointing into a
// clockwise polygon. Zero-length edges have no normal.
func inwardNormal(a, b template.Point) (template.Point, bool) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	length := math.Hypot(dx, dy)
	if length < bisectorEpsilon {
		return template.Point{}, false
	}
	return template.Point{-dy / length, dx / length}, true
}
