package template

import (
	"errors"
	"fmt"
)

// Shape identifies how a region's clip boundary is described.
type Shape string

const (
	ShapeRectangle Shape = "rectangle"
	ShapeCircle    Shape = "circle"
	ShapeEllipse   Shape = "ellipse"
	ShapePolygon   Shape = "polygon"
	ShapePath      Shape = "path"
)

// Category is the style bucket a template belongs to.
type Category string

const (
	CategoryGrid   Category = "grid"
	CategoryShaped Category = "shaped"
	CategoryCover  Category = "cover"
)

// Bounds is a normalized rectangle in page-percentage space (0-100).
// For circle and ellipse regions it is the bounding box of the shape.
// For polygon and path regions it is advisory only.
type Bounds struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Radius holds the half-axes of a circle or ellipse in page percent (0-50).
type Radius struct {
	RX float64 `yaml:"rx" json:"rx"`
	RY float64 `yaml:"ry" json:"ry"`
}

// Point is an [x, y] pair in page-percentage space.
type Point [2]float64

// Region is one photo slot within a template. All geometry is expressed in
// the page's percentage space; rendering re-projects it into the region's
// own box (see the geometry package).
type Region struct {
	ID       string  `yaml:"id" json:"id"`
	Shape    Shape   `yaml:"shape" json:"shape"`
	Bounds   Bounds  `yaml:"bounds" json:"bounds"`
	Radius   *Radius `yaml:"radius,omitempty" json:"radius,omitempty"`
	Points   []Point `yaml:"points,omitempty" json:"points,omitempty"`
	Path     string  `yaml:"path,omitempty" json:"path,omitempty"`
	ZIndex   int     `yaml:"z_index,omitempty" json:"z_index,omitempty"`
	Rotation float64 `yaml:"rotation,omitempty" json:"rotation,omitempty"`
}

// Template is a named, reusable arrangement of regions with a fixed
// required photo count.
type Template struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	Category   Category `yaml:"category" json:"category"`
	PhotoCount int      `yaml:"photo_count" json:"photo_count"`
	Regions    []Region `yaml:"regions" json:"regions"`
	IsCustom   bool     `yaml:"-" json:"is_custom,omitempty"`
	CreatedBy  string   `yaml:"-" json:"created_by,omitempty"`
}

// Validate checks the structural invariants of a template.
func (t Template) Validate() error {
	if t.ID == "" {
		return errors.New("template id is required")
	}
	if len(t.Regions) == 0 {
		return fmt.Errorf("template %s: needs at least one region", t.ID)
	}
	if t.PhotoCount != len(t.Regions) {
		return fmt.Errorf("template %s: photo_count %d does not match %d regions", t.ID, t.PhotoCount, len(t.Regions))
	}
	for i, r := range t.Regions {
		if r.ID == "" {
			return fmt.Errorf("template %s: region %d has no id", t.ID, i)
		}
		if r.Shape == ShapePolygon && len(r.Points) < 3 {
			return fmt.Errorf("template %s: polygon region %s has %d points, need at least 3", t.ID, r.ID, len(r.Points))
		}
	}
	return nil
}
