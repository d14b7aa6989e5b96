package render

import (
	"context"

	theme "github.com/goliatone/go-theme"
)

// RenderOptions carries per-request instructions renderers may honor without
// changing the view pipeline.
type RenderOptions struct {
	// Theme, when set, supplies resolved design tokens and CSS variables.
	Theme *theme.RendererConfig
	// SubmitLabel overrides the submit button caption.
	SubmitLabel string
	// Action overrides the form's target URL for renderers that emit one.
	Action string
}

// Renderer converts a FormView into a byte representation (HTML, text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view FormView, options RenderOptions) ([]byte, error)
}
