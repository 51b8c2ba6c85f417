package geometry

import (
	"math"
	"testing"

	"github.com/matejkriz/bookpress/internal/template"
)

func TestClipBoundaryShapes(t *testing.T) {
	tests := []struct {
		name   string
		region template.Region
		want   Kind
	}{
		{
			name:   "rectangle is full box",
			region: template.Region{Shape: template.ShapeRectangle, Bounds: template.Bounds{Width: 50, Height: 50}},
			want:   KindRectangle,
		},
		{
			name:   "circle",
			region: template.Region{Shape: template.ShapeCircle, Radius: &template.Radius{RX: 20, RY: 20}},
			want:   KindCircle,
		},
		{
			name:   "ellipse",
			region: template.Region{Shape: template.ShapeEllipse, Radius: &template.Radius{RX: 22, RY: 30}},
			want:   KindEllipse,
		},
		{
			name:   "path passthrough",
			region: template.Region{Shape: template.ShapePath, Path: "M 0 0 L 100 100 Z"},
			want:   KindPath,
		},
		{
			name:   "path without data degrades to full box",
			region: template.Region{Shape: template.ShapePath},
			want:   KindRectangle,
		},
		{
			name:   "unknown shape degrades to full box",
			region: template.Region{Shape: template.Shape("blob")},
			want:   KindRectangle,
		},
		{
			name: "polygon with zero-width bounds degrades to full box",
			region: template.Region{
				Shape:  template.ShapePolygon,
				Points: []template.Point{{0, 0}, {10, 0}, {0, 10}},
			},
			want: KindRectangle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClipBoundary(tt.region); got.Kind != tt.want {
				t.Errorf("ClipBoundary kind = %s, want %s", got.Kind, tt.want)
			}
		})
	}
}

func TestPolygonReprojection(t *testing.T) {
	// Hexagon defined in page space inside a 50x70 bounding box at (25,15).
	region := template.Region{
		Shape:  template.ShapePolygon,
		Bounds: template.Bounds{X: 25, Y: 15, Width: 50, Height: 70},
		Points: []template.Point{{50, 15}, {75, 50}, {50, 85}, {25, 50}},
	}

	got := ClipBoundary(region)
	if got.Kind != KindPolygon {
		t.Fatalf("kind = %s, want polygon", got.Kind)
	}

	want := []template.Point{{50, 0}, {100, 50}, {50, 100}, {0, 50}}
	for i, p := range got.Points {
		if math.Abs(p[0]-want[i][0]) > 0.01 || math.Abs(p[1]-want[i][1]) > 0.01 {
			t.Errorf("point %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestClipPathStrings(t *testing.T) {
	tests := []struct {
		name     string
		boundary Boundary
		want     string
	}{
		{"rectangle", Boundary{Kind: KindRectangle}, "inset(0%)"},
		{"circle", Boundary{Kind: KindCircle}, "circle(50% at 50% 50%)"},
		{"ellipse", Boundary{Kind: KindEllipse}, "ellipse(50% 50% at 50% 50%)"},
		{
			"polygon",
			Boundary{Kind: KindPolygon, Points: []template.Point{{0, 0}, {100, 0}, {50, 100}}},
			"polygon(0% 0%, 100% 0%, 50% 100%)",
		},
		{
			"path",
			Boundary{Kind: KindPath, Path: "M 0 0 Z"},
			`path("M 0 0 Z")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.boundary.ClipPath(); got != tt.want {
				t.Errorf("ClipPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInsetSquare(t *testing.T) {
	square := []template.Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	got := InsetPolygon(square, 5)

	want := []template.Point{{5, 5}, {95, 5}, {95, 95}, {5, 95}}
	for i, p := range got {
		if math.Abs(p[0]-want[i][0]) > 0.01 || math.Abs(p[1]-want[i][1]) > 0.01 {
			t.Errorf("vertex %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestInsetShrinksArea(t *testing.T) {
	hexagon := []template.Point{{50, 0}, {93, 25}, {93, 75}, {50, 100}, {7, 75}, {7, 25}}

	before := polygonArea(hexagon)
	after := polygonArea(InsetPolygon(hexagon, 4))
	if after >= before {
		t.Errorf("inset area %.2f is not smaller than original %.2f", after, before)
	}
}

func TestInsetDegenerateInput(t *testing.T) {
	line := []template.Point{{0, 0}, {100, 100}}
	if got := InsetPolygon(line, 5); len(got) != 2 || got[0] != line[0] {
		t.Errorf("two-point input should be returned unchanged, got %v", got)
	}

	square := []template.Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	if got := InsetPolygon(square, 0); got[0] != square[0] {
		t.Errorf("zero amount should be returned unchanged, got %v", got)
	}
	if got := InsetPolygon(square, -3); got[3] != square[3] {
		t.Errorf("negative amount should be returned unchanged, got %v", got)
	}
}

func TestInsetMiterCap(t *testing.T) {
	// A long thin spike; without the cap the tip vertex would fly inward.
	spike := []template.Point{{0, 0}, {100, 2}, {0, 4}}
	amount := 2.0

	got := InsetPolygon(spike, amount)
	tip := got[1]
	moved := math.Hypot(tip[0]-100, tip[1]-2)
	if moved > amount*3+0.01 {
		t.Errorf("tip moved %.2f, cap allows at most %.2f", moved, amount*3)
	}
}

// polygonArea computes the absolute shoelace area.
func polygonArea(points []template.Point) float64 {
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p[0]*q[1] - q[0]*p[1]
	}
	return math.Abs(sum) / 2
}
