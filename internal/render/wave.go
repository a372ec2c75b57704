package render

import (
	"github.com/factuurlijk/factuurlijk/internal/domain/document"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// waveRenderer draws a curved accent band across the top of the page and a
// mirrored one along the bottom edge.
type waveRenderer struct{}

func (waveRenderer) Style() types.TemplateStyle {
	return types.TemplateStyleWave
}

func (waveRenderer) Render(in Input) (*document.Document, error) {
	doc := buildBase(in, theme{
		accentColor: "#0b7285",
		fontFamily:  "Nunito",
	})
	doc.Layout = document.LayoutHints{
		SectionOrder: []string{"header", "meta", "parties", "lines", "totals", "footer"},
		WaveBand:     true,
	}
	return doc, nil
}
