package ai

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"

	"github.com/matejkriz/bookpress/internal/template"
)

//go:embed prompts/template_suggestion.txt
var templateSuggestionPrompt string

// suggestionPayload is the wire shape providers must answer with. It is a
// strict subset of the template model: no path regions, no custom ids.
type suggestionPayload struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Regions  []regionPayload `json:"regions"`
}

type regionPayload struct {
	Shape  string `json:"shape"`
	Bounds struct {
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"bounds"`
	Radius *struct {
		RX float64 `json:"rx"`
		RY float64 `json:"ry"`
	} `json:"radius"`
	Points [][]float64 `json:"points"`
	ZIndex int         `json:"z_index"`
}

func buildSuggestionPrompt(photoCount int, styleHint string) string {
	if styleHint == "" {
		styleHint = "none"
	}
	return fmt.Sprintf(templateSuggestionPrompt, photoCount, styleHint)
}

// toTemplate converts a model answer into a registry-ready template,
// clamping every coordinate into its valid range at this boundary. Regions
// with unsupported shapes are dropped; an answer with no usable regions
// yields nil, meaning no suggestion.
func toTemplate(payload suggestionPayload, providerName string) *template.Template {
	var regions []template.Region
	for i, rp := range payload.Regions {
		shape := template.Shape(rp.Shape)
		switch shape {
		case template.ShapeRectangle, template.ShapeCircle, template.ShapeEllipse, template.ShapePolygon:
		default:
			continue
		}

		reg := template.Region{
			ID:    fmt.Sprintf("region-%d", i+1),
			Shape: shape,
			Bounds: template.Bounds{
				X:      clamp(rp.Bounds.X, 0, 100),
				Y:      clamp(rp.Bounds.Y, 0, 100),
				Width:  clamp(rp.Bounds.Width, 0, 100),
				Height: clamp(rp.Bounds.Height, 0, 100),
			},
			ZIndex: rp.ZIndex,
		}

		if shape == template.ShapeCircle || shape == template.ShapeEllipse {
			rx, ry := reg.Bounds.Width/2, reg.Bounds.Height/2
			if rp.Radius != nil {
				rx, ry = rp.Radius.RX, rp.Radius.RY
			}
			reg.Radius = &template.Radius{
				RX: clamp(rx, 0, 50),
				RY: clamp(ry, 0, 50),
			}
		}

		if shape == template.ShapePolygon {
			if len(rp.Points) < 3 {
				continue
			}
			for _, p := range rp.Points {
				if len(p) != 2 {
					continue
				}
				reg.Points = append(reg.Points, template.Point{
					clamp(p[0], 0, 100),
					clamp(p[1], 0, 100),
				})
			}
			if len(reg.Points) < 3 {
				continue
			}
		}

		regions = append(regions, reg)
	}

	if len(regions) == 0 {
		return nil
	}

	category := template.Category(payload.Category)
	switch category {
	case template.CategoryGrid, template.CategoryShaped, template.CategoryCover:
	default:
		category = template.CategoryShaped
	}

	name := payload.Name
	if name == "" {
		name = "Suggested Layout"
	}

	return &template.Template{
		ID:         "ai-" + uuid.NewString()[:8],
		Name:       name,
		Category:   category,
		PhotoCount: len(regions),
		Regions:    regions,
		IsCustom:   true,
		CreatedBy:  providerName,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
