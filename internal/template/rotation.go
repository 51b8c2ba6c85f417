package template

import (
	"fmt"
	"strings"
)

// LayoutRef is a decoded layout id: the base template plus an optional
// clockwise rotation applied at render time. Rotation never changes which
// template resolves or how many photos it needs.
type LayoutRef struct {
	BaseID          string
	RotationDegrees int
}

// ParseLayoutRef splits a layout id into its base id and rotation suffix.
// Ids without a recognized suffix decode with rotation 0.
func ParseLayoutRef(layoutID string) LayoutRef {
	for _, deg := range []int{90, 180, 270} {
		suffix := fmt.Sprintf("-r%d", deg)
		if strings.HasSuffix(layoutID, suffix) {
			return LayoutRef{
				BaseID:          strings.TrimSuffix(layoutID, suffix),
				RotationDegrees: deg,
			}
		}
	}
	return LayoutRef{BaseID: layoutID}
}

// String encodes the reference back into a layout id. Unrecognized rotation
// values encode as the plain base id.
func (r LayoutRef) String() string {
	switch r.RotationDegrees {
	case 90, 180, 270:
		return fmt.Sprintf("%s-r%d", r.BaseID, r.RotationDegrees)
	default:
		return r.BaseID
	}
}
