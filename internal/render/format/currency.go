package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var dutchPrinter = message.NewPrinter(language.Dutch)

// Currency formats an amount under Dutch locale conventions: thousands
// separator ".", decimal comma, euro sign prefixed ("€ 1.234,56"). This is
// the only place monetary values are rounded to two decimals.
func Currency(amount decimal.Decimal) string {
	value, _ := amount.Round(2).Float64()
	return "€ " + dutchPrinter.Sprint(number.Decimal(value,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// Quantity formats a line quantity without trailing zeros, Dutch decimal comma.
func Quantity(quantity decimal.Decimal) string {
	value, _ := quantity.Float64()
	return dutchPrinter.Sprint(number.Decimal(value,
		number.MaxFractionDigits(2),
	))
}

// Percentage formats a percentage value for the discount column ("10%").
func Percentage(pct decimal.Decimal) string {
	value, _ := pct.Float64()
	return dutchPrinter.Sprint(number.Decimal(value,
		number.MaxFractionDigits(2),
	)) + "%"
}
