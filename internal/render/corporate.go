package render

import (
	"github.com/factuurlijk/factuurlijk/internal/domain/document"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// corporateRenderer renders a full-width accent band behind the header with
// the sender identity reversed out of it.
type corporateRenderer struct{}

func (corporateRenderer) Style() types.TemplateStyle {
	return types.TemplateStyleCorporate
}

func (corporateRenderer) Render(in Input) (*document.Document, error) {
	doc := buildBase(in, theme{
		accentColor: "#1e3a5f",
		fontFamily:  "Source Sans Pro",
	})
	doc.Layout = document.LayoutHints{
		SectionOrder: []string{"header", "parties", "meta", "lines", "totals", "footer"},
		HeaderBand:   true,
	}
	return doc, nil
}
