package render

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factuurlijk/factuurlijk/internal/domain/invoice"
	"github.com/factuurlijk/factuurlijk/internal/domain/profile"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

var allStyles = []types.TemplateStyle{
	types.TemplateStyleMinimalist,
	types.TemplateStyleCorporate,
	types.TemplateStyleCreative,
	types.TemplateStyleSidebar,
	types.TemplateStyleElegant,
	types.TemplateStyleWave,
}

func testInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ID:            "inv_test",
		InvoiceNumber: "FACT-001",
		InvoiceDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		InvoiceStatus: types.InvoiceStatusOpen,
		VATPercentage: decimal.NewFromInt(21),
		Lines: []invoice.Line{
			{
				ID:          "line_1",
				Description: "Consultancy",
				Quantity:    decimal.NewFromInt(10),
				UnitPrice:   decimal.NewFromInt(75),
				Discount:    invoice.NoDiscount(),
			},
		},
		Customer: invoice.CustomerSnapshot{
			Name:  "Bakkerij de Vries",
			Email: "info@bakkerijdevries.nl",
		},
	}
}

func testProfile(style types.TemplateStyle) *profile.Profile {
	return &profile.Profile{
		ID:            "prof_test",
		CompanyName:   "Jansen Webdesign",
		Email:         "post@jansenwebdesign.nl",
		IBAN:          "NL91ABNA0417164300",
		TemplateStyle: style,
		Plan:          types.PlanFree,
	}
}

func TestRegistry_AllStylesRegistered(t *testing.T) {
	registry := NewRegistry()

	for _, style := range allStyles {
		renderer, err := registry.Get(style)
		require.NoError(t, err, "%s", style)
		assert.Equal(t, style, renderer.Style())
	}
}

func TestRegistry_UnknownStyle(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.Get(types.TemplateStyle("polkadot"))
	assert.Error(t, err)
}

func TestRender_EveryStyleProducesDocument(t *testing.T) {
	registry := NewRegistry()

	for _, style := range allStyles {
		in := Input{
			Invoice:       testInvoice(),
			Profile:       testProfile(style),
			RenderContext: types.RenderContextScreenLarge,
		}

		doc, err := registry.Render(in)
		require.NoError(t, err, "%s", style)

		assert.Equal(t, string(style), doc.TemplateStyle)
		assert.NotEmpty(t, doc.Page.AccentColor, "%s", style)
		assert.NotEmpty(t, doc.Page.FontFamily, "%s", style)
		assert.Positive(t, doc.Page.FontSizePt, "%s", style)
		assert.NotEmpty(t, doc.Layout.SectionOrder, "%s", style)
		assert.Equal(t, "footer", doc.Layout.SectionOrder[len(doc.Layout.SectionOrder)-1],
			"%s: footer must close the document", style)
		require.Len(t, doc.Lines.Rows, 1)
		assert.Equal(t, "€ 750,00", doc.Lines.Rows[0].Total)
	}
}

func TestRender_Deterministic(t *testing.T) {
	registry := NewRegistry()
	in := Input{
		Invoice:       testInvoice(),
		Profile:       testProfile(types.TemplateStyleElegant),
		RenderContext: types.RenderContextPrintFullPage,
	}

	first, err := registry.Render(in)
	require.NoError(t, err)
	second, err := registry.Render(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRender_DiscountColumn(t *testing.T) {
	registry := NewRegistry()

	in := Input{
		Invoice:       testInvoice(),
		Profile:       testProfile(types.TemplateStyleMinimalist),
		RenderContext: types.RenderContextScreenLarge,
	}
	doc, err := registry.Render(in)
	require.NoError(t, err)
	assert.False(t, doc.Lines.ShowDiscountColumn)

	inv := testInvoice()
	inv.Lines = append(inv.Lines, invoice.Line{
		ID:          "line_2",
		Description: "Hosting",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(120),
		Discount:    invoice.PercentageDiscount(decimal.NewFromInt(10)),
	})
	in.Invoice = inv

	doc, err = registry.Render(in)
	require.NoError(t, err)
	assert.True(t, doc.Lines.ShowDiscountColumn)
	// Undiscounted rows show a dash in the shared column.
	assert.Equal(t, "-", doc.Lines.Rows[0].Discount)
	assert.Equal(t, "10%", doc.Lines.Rows[1].Discount)
}

func TestRender_VATInclusiveTotals(t *testing.T) {
	registry := NewRegistry()

	inv := testInvoice()
	inv.VATIncluded = true
	inv.Lines = []invoice.Line{
		{
			ID:        "line_1",
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: decimal.NewFromInt(121),
		},
	}

	doc, err := registry.Render(Input{
		Invoice:       inv,
		Profile:       testProfile(types.TemplateStyleMinimalist),
		RenderContext: types.RenderContextScreenLarge,
	})
	require.NoError(t, err)

	assert.Equal(t, "€ 100,00", doc.Totals.Subtotal)
	assert.Contains(t, doc.Totals.VATLabel, "Waarvan")
	assert.Equal(t, "€ 121,00", doc.Totals.Total)
}

func TestRender_FooterPlaceholders(t *testing.T) {
	registry := NewRegistry()

	prof := testProfile(types.TemplateStyleMinimalist)
	prof.InvoiceFooterText = "Betaal op {iban} t.n.v. {name}"

	doc, err := registry.Render(Input{
		Invoice:       testInvoice(),
		Profile:       prof,
		RenderContext: types.RenderContextScreenLarge,
	})
	require.NoError(t, err)

	assert.Equal(t, "Betaal op NL91ABNA0417164300 t.n.v. Jansen Webdesign", doc.Footer.Text)
}

func TestRender_CustomizationOverride(t *testing.T) {
	registry := NewRegistry()

	in := Input{
		Invoice:       testInvoice(),
		Profile:       testProfile(types.TemplateStyleCorporate),
		RenderContext: types.RenderContextScreenLarge,
		Customizations: &profile.TemplateCustomizations{
			PrimaryColor: "#ff0000",
			Font:         "Courier New",
		},
	}

	doc, err := registry.Render(in)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", doc.Page.AccentColor)
	assert.Equal(t, "Courier New", doc.Page.FontFamily)
}

func TestRender_LogoFallsBackToSenderName(t *testing.T) {
	registry := NewRegistry()

	in := Input{
		Invoice:       testInvoice(),
		Profile:       testProfile(types.TemplateStyleMinimalist),
		RenderContext: types.RenderContextScreenLarge,
	}
	doc, err := registry.Render(in)
	require.NoError(t, err)
	assert.False(t, doc.Header.ShowLogo)
	assert.Equal(t, "Jansen Webdesign", doc.Header.SenderName)

	in.LogoURL = "data:image/png;base64,aGVsbG8="
	doc, err = registry.Render(in)
	require.NoError(t, err)
	assert.True(t, doc.Header.ShowLogo)
	assert.Equal(t, in.LogoURL, doc.Header.LogoURL)
}

func TestRender_MissingInputs(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Render(Input{
		Profile:       testProfile(types.TemplateStyleMinimalist),
		RenderContext: types.RenderContextScreenLarge,
	})
	assert.Error(t, err)

	_, err = registry.Render(Input{
		Invoice:       testInvoice(),
		RenderContext: types.RenderContextScreenLarge,
	})
	assert.Error(t, err)

	_, err = registry.Render(Input{
		Invoice:       testInvoice(),
		Profile:       testProfile(types.TemplateStyleMinimalist),
		RenderContext: types.RenderContext("billboard"),
	})
	assert.Error(t, err)
}

func TestRender_LayoutHintsPerStyle(t *testing.T) {
	registry := NewRegistry()

	render := func(style types.TemplateStyle) *LayoutProbe {
		doc, err := registry.Render(Input{
			Invoice:       testInvoice(),
			Profile:       testProfile(style),
			RenderContext: types.RenderContextScreenLarge,
		})
		require.NoError(t, err, "%s", style)
		return &LayoutProbe{
			HeaderBand:  doc.Layout.HeaderBand,
			SidebarLeft: doc.Layout.SidebarLeft,
			WaveBand:    doc.Layout.WaveBand,
		}
	}

	assert.True(t, render(types.TemplateStyleCorporate).HeaderBand)
	assert.True(t, render(types.TemplateStyleSidebar).SidebarLeft)
	assert.True(t, render(types.TemplateStyleWave).WaveBand)

	plain := render(types.TemplateStyleMinimalist)
	assert.False(t, plain.HeaderBand)
	assert.False(t, plain.SidebarLeft)
	assert.False(t, plain.WaveBand)
}

type LayoutProbe struct {
	HeaderBand  bool
	SidebarLeft bool
	WaveBand    bool
}
