package types

import (
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/samber/lo"
)

// TemplateStyle identifies one of the visual invoice layout strategies.
type TemplateStyle string

const (
	TemplateStyleMinimalist TemplateStyle = "minimalist"
	TemplateStyleCorporate  TemplateStyle = "corporate"
	TemplateStyleCreative   TemplateStyle = "creative"
	TemplateStyleSidebar    TemplateStyle = "sidebar"
	TemplateStyleElegant    TemplateStyle = "elegant"
	TemplateStyleWave       TemplateStyle = "wave"
)

// TemplateStyles lists every supported style in display order.
var TemplateStyles = []TemplateStyle{
	TemplateStyleMinimalist,
	TemplateStyleCorporate,
	TemplateStyleCreative,
	TemplateStyleSidebar,
	TemplateStyleElegant,
	TemplateStyleWave,
}

func (t TemplateStyle) String() string {
	return string(t)
}

func (t TemplateStyle) Validate() error {
	if !lo.Contains(TemplateStyles, t) {
		return ierr.NewError("invalid template style").
			WithHint("Please provide a valid template style").
			WithReportableDetails(map[string]any{
				"allowed": TemplateStyles,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// RenderContext is the explicit render-target axis for document layout.
// Screen contexts are the live previews at three sizes; the two print
// contexts are PDF export at full page size and PDF export scaled to match
// what the user saw in the large on-screen preview.
type RenderContext string

const (
	RenderContextScreenSmall  RenderContext = "screen_small"
	RenderContextScreenMedium RenderContext = "screen_medium"
	RenderContextScreenLarge  RenderContext = "screen_large"
	// RenderContextPrintScreenLarge scales the screen-large tokens up so the
	// printed page matches the approved on-screen preview.
	RenderContextPrintScreenLarge RenderContext = "print_screen_large"
	RenderContextPrintFullPage    RenderContext = "print_full_page"
)

// RenderContexts lists every supported render context.
var RenderContexts = []RenderContext{
	RenderContextScreenSmall,
	RenderContextScreenMedium,
	RenderContextScreenLarge,
	RenderContextPrintScreenLarge,
	RenderContextPrintFullPage,
}

func (r RenderContext) String() string {
	return string(r)
}

func (r RenderContext) Validate() error {
	if !lo.Contains(RenderContexts, r) {
		return ierr.NewError("invalid render context").
			WithHint("Please provide a valid render context").
			WithReportableDetails(map[string]any{
				"allowed": RenderContexts,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsPrint reports whether the context targets the PDF snapshot path.
func (r RenderContext) IsPrint() bool {
	return r == RenderContextPrintScreenLarge || r == RenderContextPrintFullPage
}
