package invoice

import (
	"github.com/shopspring/decimal"
)

// Totals holds the derived monetary amounts of an invoice. Values are exact;
// rounding to two decimals happens only at display time.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	VATAmount decimal.Decimal `json:"vat_amount"`
	Total     decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, VAT amount and grand total from the lines.
//
// With VAT-exclusive pricing (the default) VAT is added on top of the
// discounted subtotal. With VAT-inclusive pricing the entered prices already
// contain VAT, so the VAT share is backed out and the total equals the
// subtotal. Line nets are summed without intermediate rounding so large
// invoices do not accumulate penny drift.
func ComputeTotals(lines []Line, vatPercentage decimal.Decimal, vatIncluded bool) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Net())
	}

	hundred := decimal.NewFromInt(100)
	if vatIncluded {
		divisor := decimal.NewFromInt(1).Add(vatPercentage.Div(hundred))
		vatAmount := subtotal.Sub(subtotal.DivRound(divisor, 16))
		return Totals{
			Subtotal:  subtotal,
			VATAmount: vatAmount,
			Total:     subtotal,
		}
	}

	vatAmount := subtotal.Mul(vatPercentage).Div(hundred)
	return Totals{
		Subtotal:  subtotal,
		VATAmount: vatAmount,
		Total:     subtotal.Add(vatAmount),
	}
}

// SubtotalExclVAT returns the subtotal with VAT backed out. Only meaningful
// for VAT-inclusive invoices, where the stored subtotal still contains VAT.
func (t Totals) SubtotalExclVAT() decimal.Decimal {
	return t.Subtotal.Sub(t.VATAmount)
}

// ExceedsLimit reports whether the grand total breaches the save ceiling.
func (t Totals) ExceedsLimit() bool {
	return t.Total.GreaterThan(MaxInvoiceTotal)
}

// HasDiscounts reports whether at least one line carries a non-zero discount
// in either representation. All template layouts share this predicate to
// decide whether the discount column is rendered.
func HasDiscounts(lines []Line) bool {
	for _, line := range lines {
		if !line.Discount.IsZero() {
			return true
		}
	}
	return false
}
