// Package ai implements the template suggestion collaborator: given a
// free-text prompt it asks a model for a layout template and sanitizes the
// answer before the registry ever sees it.
package ai

import (
	"context"

	"github.com/matejkriz/bookpress/internal/template"
)

// Provider generates layout template suggestions.
type Provider interface {
	// Name returns the model name of this provider
	Name() string

	// SuggestTemplate asks for a template matching the prompt, the desired
	// photo count, and an optional style hint. A nil template with a nil
	// error means the provider has no usable suggestion; callers treat that
	// the same as "no suggestion offered".
	SuggestTemplate(ctx context.Context, prompt string, photoCount int, styleHint string) (*template.Template, error)
}
