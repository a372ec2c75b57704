package render

import (
	"strings"

	"github.com/factuurlijk/factuurlijk/internal/domain/document"
	"github.com/factuurlijk/factuurlijk/internal/domain/invoice"
	"github.com/factuurlijk/factuurlijk/internal/domain/profile"
	"github.com/factuurlijk/factuurlijk/internal/render/density"
	"github.com/factuurlijk/factuurlijk/internal/render/format"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// theme is a layout strategy's default accent color and font. Explicit
// profile customizations override both.
type theme struct {
	accentColor string
	fontFamily  string
}

// buildBase assembles the sections every layout shares: page tokens from
// the density engine, header, parties, metadata strip, line table, totals
// and footer. Strategies then set their layout hints on the result.
func buildBase(in Input, th theme) *document.Document {
	inv := in.Invoice
	prof := in.Profile

	accent := th.accentColor
	font := th.fontFamily
	if in.Customizations != nil {
		if in.Customizations.PrimaryColor != "" {
			accent = in.Customizations.PrimaryColor
		}
		if in.Customizations.Font != "" {
			font = in.Customizations.Font
		}
	}

	styling := density.Select(len(inv.Lines), prof.TemplateStyle, in.RenderContext)

	doc := &document.Document{
		TemplateStyle: prof.TemplateStyle.String(),
		RenderContext: in.RenderContext.String(),
		Page: document.PageStyle{
			AccentColor: accent,
			FontFamily:  font,
			FontSizePt:  styling.FontSizePt,
			PaddingPt:   styling.PaddingPt,
		},
		Header:  buildHeader(in),
		Parties: buildParties(inv, prof),
		Meta:    buildMeta(inv, prof),
		Lines:   buildLineTable(inv.Lines),
		Totals:  buildTotals(inv),
		Footer:  buildFooter(prof),
	}

	return doc
}

func buildHeader(in Input) document.Header {
	return document.Header{
		LogoURL:    in.LogoURL,
		SenderName: in.Profile.CompanyName,
		ShowLogo:   in.LogoURL != "",
	}
}

func buildParties(inv *invoice.Invoice, prof *profile.Profile) document.PartiesBlock {
	from := document.Party{
		Name:       prof.CompanyName,
		Address:    prof.Address,
		City:       prof.City,
		PostalCode: prof.PostalCode,
		Email:      prof.Email,
	}
	to := document.Party{
		Name:       inv.Customer.Name,
		Address:    inv.Customer.Address,
		City:       inv.Customer.City,
		PostalCode: inv.Customer.PostalCode,
		Country:    inv.Customer.Country,
		Email:      inv.Customer.Email,
	}

	// the email addresses are the widest fields in the block
	longest := from.Email
	if len(to.Email) > len(longest) {
		longest = to.Email
	}

	return document.PartiesBlock{
		From:        from,
		To:          to,
		ScaleFactor: format.PartyScale(longest),
	}
}

func buildMeta(inv *invoice.Invoice, prof *profile.Profile) document.MetaBlock {
	invoiceDate := format.DocumentDate(inv.InvoiceDate)
	dueDate := format.DocumentDate(inv.DueDate)

	return document.MetaBlock{
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		VATNumber:     prof.VATNumber,
		KvKNumber:     prof.KvKNumber,
		IBAN:          prof.IBAN,
		ScaleFactor:   format.DateScale(invoiceDate + "  " + dueDate),
	}
}

func buildLineTable(lines []invoice.Line) document.LineTable {
	showDiscounts := invoice.HasDiscounts(lines)

	rows := make([]document.LineRow, len(lines))
	for i, line := range lines {
		row := document.LineRow{
			Description: line.Description,
			Quantity:    format.Quantity(line.Quantity),
			UnitPrice:   format.Currency(line.UnitPrice),
			Total:       format.Currency(line.Net()),
		}
		if showDiscounts {
			row.Discount = formatDiscount(line.Discount)
		}
		rows[i] = row
	}

	return document.LineTable{
		ShowDiscountColumn: showDiscounts,
		Rows:               rows,
	}
}

func formatDiscount(d invoice.Discount) string {
	if d.IsZero() {
		return "-"
	}
	if d.Type == types.DiscountTypePercentage {
		return format.Percentage(d.Value)
	}
	return format.Currency(d.Value)
}

func buildTotals(inv *invoice.Invoice) document.TotalsBlock {
	totals := invoice.ComputeTotals(inv.Lines, inv.VATPercentage, inv.VATIncluded)

	subtotal := totals.Subtotal
	vatLabel := "BTW " + format.Percentage(inv.VATPercentage)
	if inv.VATIncluded {
		subtotal = totals.SubtotalExclVAT()
		vatLabel = "Waarvan BTW " + format.Percentage(inv.VATPercentage)
	}

	total := format.Currency(totals.Total)

	return document.TotalsBlock{
		SubtotalLabel: "Subtotaal",
		Subtotal:      format.Currency(subtotal),
		VATLabel:      vatLabel,
		VATAmount:     format.Currency(totals.VATAmount),
		TotalLabel:    "Totaal",
		Total:         total,
		AmountScale:   format.AmountScale(total),
	}
}

func buildFooter(prof *profile.Profile) document.FooterBlock {
	text := prof.InvoiceFooterText
	if text == "" {
		return document.FooterBlock{}
	}
	replacer := strings.NewReplacer(
		"{iban}", prof.IBAN,
		"{name}", prof.CompanyName,
	)
	return document.FooterBlock{Text: replacer.Replace(text)}
}
