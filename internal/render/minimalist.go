package render

import (
	"github.com/factuurlijk/factuurlijk/internal/domain/document"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// minimalistRenderer is the plainest layout: monochrome, no bands or rules,
// sections stacked top to bottom.
type minimalistRenderer struct{}

func (minimalistRenderer) Style() types.TemplateStyle {
	return types.TemplateStyleMinimalist
}

func (minimalistRenderer) Render(in Input) (*document.Document, error) {
	doc := buildBase(in, theme{
		accentColor: "#1a1a1a",
		fontFamily:  "Inter",
	})
	doc.Layout = document.LayoutHints{
		SectionOrder: []string{"header", "meta", "parties", "lines", "totals", "footer"},
	}
	return doc, nil
}
