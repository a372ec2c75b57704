package render

import (
	"github.com/factuurlijk/factuurlijk/internal/domain/document"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// sidebarRenderer moves the sender identity and metadata into a tinted left
// column. The narrower content column gets its own smaller density tokens
// from the styling engine.
type sidebarRenderer struct{}

func (sidebarRenderer) Style() types.TemplateStyle {
	return types.TemplateStyleSidebar
}

func (sidebarRenderer) Render(in Input) (*document.Document, error) {
	doc := buildBase(in, theme{
		accentColor: "#2b6e4f",
		fontFamily:  "Lato",
	})
	doc.Layout = document.LayoutHints{
		SectionOrder: []string{"header", "meta", "parties", "lines", "totals", "footer"},
		SidebarLeft:  true,
	}
	return doc, nil
}
