package render

import (
	"github.com/factuurlijk/factuurlijk/internal/domain/document"
	"github.com/factuurlijk/factuurlijk/internal/domain/invoice"
	"github.com/factuurlijk/factuurlijk/internal/domain/profile"
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// Input is everything a layout strategy needs to produce a document. The
// logo URL has already been resolved by the caller; strategies never perform
// IO themselves.
type Input struct {
	Invoice        *invoice.Invoice
	Profile        *profile.Profile
	Customizations *profile.TemplateCustomizations
	RenderContext  types.RenderContext
	LogoURL        string
}

func (in Input) validate() error {
	if in.Invoice == nil {
		return ierr.NewError("invoice is required").
			WithHint("Cannot render a document without an invoice").
			Mark(ierr.ErrValidation)
	}
	if in.Profile == nil {
		return ierr.NewError("profile is required").
			WithHint("Cannot render a document without a sender profile").
			Mark(ierr.ErrValidation)
	}
	return in.RenderContext.Validate()
}

// TemplateRenderer is one visual layout strategy. Implementations are pure:
// identical inputs produce structurally identical documents.
type TemplateRenderer interface {
	Style() types.TemplateStyle
	Render(in Input) (*document.Document, error)
}

// Registry dispatches rendering to the strategy registered for a template
// style.
type Registry struct {
	renderers map[types.TemplateStyle]TemplateRenderer
}

// NewRegistry returns a registry with all six layout strategies registered.
func NewRegistry() *Registry {
	r := &Registry{renderers: make(map[types.TemplateStyle]TemplateRenderer)}
	for _, renderer := range []TemplateRenderer{
		minimalistRenderer{},
		corporateRenderer{},
		creativeRenderer{},
		sidebarRenderer{},
		elegantRenderer{},
		waveRenderer{},
	} {
		r.renderers[renderer.Style()] = renderer
	}
	return r
}

// Get returns the strategy for a style.
func (r *Registry) Get(style types.TemplateStyle) (TemplateRenderer, error) {
	renderer, ok := r.renderers[style]
	if !ok {
		return nil, ierr.NewError("unknown template style").
			WithHintf("No layout strategy registered for template style %q", style).
			Mark(ierr.ErrValidation)
	}
	return renderer, nil
}

// Render dispatches to the strategy matching the profile's template style.
func (r *Registry) Render(in Input) (*document.Document, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	renderer, err := r.Get(in.Profile.TemplateStyle)
	if err != nil {
		return nil, err
	}
	return renderer.Render(in)
}
