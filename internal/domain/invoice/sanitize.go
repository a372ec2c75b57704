package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumericInput converts free-form field input into a decimal. Anything
// that is not a plain number (after normalizing a decimal comma) becomes
// zero instead of an error, matching how the form treats invalid keystrokes.
func ParseNumericInput(raw string) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero
	}
	trimmed = strings.ReplaceAll(trimmed, ",", ".")
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// ClampUnitPrice truncates the integer part of a unit price to nine digits.
// The fractional part is preserved.
func ClampUnitPrice(price decimal.Decimal) decimal.Decimal {
	if price.IsNegative() {
		return decimal.Zero
	}
	intPart := price.Truncate(0)
	digits := intPart.String()
	if len(digits) <= MaxUnitPriceIntegerDigits {
		return price
	}
	truncated, err := decimal.NewFromString(digits[:MaxUnitPriceIntegerDigits])
	if err != nil {
		return decimal.Zero
	}
	return truncated.Add(price.Sub(intPart))
}

// ClampDescription cuts a description down to the UI limit. The limit counts
// characters, not bytes, so accented text is never split mid-rune.
func ClampDescription(description string) string {
	runes := []rune(description)
	if len(runes) <= MaxDescriptionLength {
		return description
	}
	return string(runes[:MaxDescriptionLength])
}

// SanitizeLine normalizes one line the way the form does on every edit:
// description clamped, negative or invalid numerics reset to zero, unit
// price truncated to nine integer digits.
func SanitizeLine(line Line) Line {
	line.Description = ClampDescription(line.Description)
	if line.Quantity.IsNegative() {
		line.Quantity = decimal.Zero
	}
	line.UnitPrice = ClampUnitPrice(line.UnitPrice)
	return line
}
