package render

import (
	"github.com/factuurlijk/factuurlijk/internal/domain/document"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// elegantRenderer is the serif layout: centered header, thin accent rules
// between sections, muted gold default accent.
type elegantRenderer struct{}

func (elegantRenderer) Style() types.TemplateStyle {
	return types.TemplateStyleElegant
}

func (elegantRenderer) Render(in Input) (*document.Document, error) {
	doc := buildBase(in, theme{
		accentColor: "#8a6d3b",
		fontFamily:  "Playfair Display",
	})
	doc.Layout = document.LayoutHints{
		SectionOrder: []string{"header", "parties", "meta", "lines", "totals", "footer"},
		AccentRule:   true,
	}
	return doc, nil
}
