package render

import (
	"github.com/factuurlijk/factuurlijk/internal/domain/document"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// creativeRenderer leads with the metadata strip under a thick accent rule
// and uses a saturated default palette.
type creativeRenderer struct{}

func (creativeRenderer) Style() types.TemplateStyle {
	return types.TemplateStyleCreative
}

func (creativeRenderer) Render(in Input) (*document.Document, error) {
	doc := buildBase(in, theme{
		accentColor: "#e8590c",
		fontFamily:  "Poppins",
	})
	doc.Layout = document.LayoutHints{
		SectionOrder: []string{"meta", "header", "parties", "lines", "totals", "footer"},
		AccentRule:   true,
	}
	return doc, nil
}
