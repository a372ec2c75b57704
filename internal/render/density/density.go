package density

import (
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// Styling is the pair of tokens the density engine hands a layout: the body
// font size and the cell padding, both in points for the given context.
type Styling struct {
	FontSizePt float64 `json:"font_size_pt"`
	PaddingPt  float64 `json:"padding_pt"`
}

// PrintScreenScaleRatio converts screen-large preview tokens into print
// tokens so that the physical page matches what the user approved on
// screen. The live preview viewport is smaller than an A4 page; scaling the
// approved tokens by this fixed ratio keeps the export visually faithful.
const PrintScreenScaleRatio = 1.75

// lineThresholds are shared across every render context: more lines push
// the layout into the next (smaller) bucket so the rows still fit the fixed
// page height.
var lineThresholds = [5]int{6, 12, 18, 24, 30}

func bucketFor(lineCount int) int {
	for i, limit := range lineThresholds {
		if lineCount <= limit {
			return i
		}
	}
	return len(lineThresholds)
}

// Absolute token values per context. Within each row the values are
// non-increasing, which keeps the engine monotonic in the line count.
var fontTable = map[types.RenderContext][6]float64{
	types.RenderContextScreenSmall:   {4.5, 4.2, 3.9, 3.6, 3.3, 3.0},
	types.RenderContextScreenMedium:  {7.5, 7.0, 6.5, 6.0, 5.5, 5.0},
	types.RenderContextScreenLarge:   {11.0, 10.0, 9.2, 8.4, 7.6, 7.0},
	types.RenderContextPrintFullPage: {16.0, 15.0, 14.0, 13.0, 12.0, 11.0},
}

var paddingTable = map[types.RenderContext][6]float64{
	types.RenderContextScreenSmall:   {2.0, 1.8, 1.6, 1.4, 1.2, 1.0},
	types.RenderContextScreenMedium:  {4.0, 3.6, 3.2, 2.8, 2.4, 2.0},
	types.RenderContextScreenLarge:   {6.0, 5.4, 4.8, 4.2, 3.6, 3.0},
	types.RenderContextPrintFullPage: {10.0, 9.0, 8.0, 7.0, 6.0, 5.0},
}

// The sidebar template shares its horizontal space with a sidebar column,
// so its content column is narrower and gets smaller tokens at the same
// thresholds.
var sidebarFontDelta = map[types.RenderContext]float64{
	types.RenderContextScreenSmall:   0.3,
	types.RenderContextScreenMedium:  0.6,
	types.RenderContextScreenLarge:   1.0,
	types.RenderContextPrintFullPage: 1.5,
}

// Select returns the styling tokens for a document with the given number of
// line items, rendered with the given template in the given context.
//
// RenderContextPrintScreenLarge is derived from the screen-large tokens by
// the fixed PrintScreenScaleRatio, never tabulated independently, so the
// faithful-export property holds by construction.
func Select(lineCount int, style types.TemplateStyle, renderCtx types.RenderContext) Styling {
	if renderCtx == types.RenderContextPrintScreenLarge {
		base := Select(lineCount, style, types.RenderContextScreenLarge)
		return Styling{
			FontSizePt: base.FontSizePt * PrintScreenScaleRatio,
			PaddingPt:  base.PaddingPt * PrintScreenScaleRatio,
		}
	}

	fonts, ok := fontTable[renderCtx]
	if !ok {
		fonts = fontTable[types.RenderContextScreenLarge]
	}
	paddings, ok := paddingTable[renderCtx]
	if !ok {
		paddings = paddingTable[types.RenderContextScreenLarge]
	}

	bucket := bucketFor(lineCount)
	styling := Styling{
		FontSizePt: fonts[bucket],
		PaddingPt:  paddings[bucket],
	}

	if style == types.TemplateStyleSidebar {
		styling.FontSizePt -= sidebarFontDelta[renderCtx]
	}

	return styling
}
