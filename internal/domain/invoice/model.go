package invoice

import (
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

const (
	// MaxDescriptionLength is the UI truncation limit for line descriptions.
	MaxDescriptionLength = 30
	// MaxUnitPriceIntegerDigits caps the integer part of a unit price.
	MaxUnitPriceIntegerDigits = 9
	// DefaultDueDays is the payment term preset on a new invoice.
	DefaultDueDays = 14
)

// DefaultVATPercentage is the standard Dutch VAT rate preset on new invoices.
var DefaultVATPercentage = decimal.NewFromInt(21)

// MaxInvoiceTotal is the hard ceiling above which an invoice may not be saved.
var MaxInvoiceTotal = decimal.NewFromInt(999_999_999)

// Discount is the single resolved representation of the two discount forms a
// line can carry on the wire: a percentage of the line gross or a fixed euro
// amount.
type Discount struct {
	Type  types.DiscountType `json:"type"`
	Value decimal.Decimal    `json:"value"`
}

// NoDiscount returns the zero discount variant.
func NoDiscount() Discount {
	return Discount{Type: types.DiscountTypeNone}
}

// PercentageDiscount returns a percentage discount variant.
func PercentageDiscount(pct decimal.Decimal) Discount {
	return Discount{Type: types.DiscountTypePercentage, Value: pct}
}

// EuroDiscount returns a fixed euro amount discount variant.
func EuroDiscount(amount decimal.Decimal) Discount {
	return Discount{Type: types.DiscountTypeEuros, Value: amount}
}

// IsZero reports whether the discount has no effect on the line.
func (d Discount) IsZero() bool {
	return d.Type == types.DiscountTypeNone || d.Value.IsZero()
}

// ResolvedAmount converts the discount into a euro amount against the gross
// line value. No rounding is applied here.
func (d Discount) ResolvedAmount(gross decimal.Decimal) decimal.Decimal {
	switch d.Type {
	case types.DiscountTypePercentage:
		return gross.Mul(d.Value).Div(decimal.NewFromInt(100))
	case types.DiscountTypeEuros:
		return d.Value
	default:
		return decimal.Zero
	}
}

func (d Discount) Validate() error {
	if err := d.Type.Validate(); err != nil {
		return err
	}
	if d.Type == types.DiscountTypePercentage {
		if d.Value.IsNegative() || d.Value.GreaterThan(decimal.NewFromInt(100)) {
			return ierr.NewError("discount percentage out of range").
				WithHint("Discount percentage must be between 0 and 100").
				WithReportableDetails(map[string]any{
					"value": d.Value.String(),
				}).
				Mark(ierr.ErrValidation)
		}
	}
	if d.Type == types.DiscountTypeEuros && d.Value.IsNegative() {
		return ierr.NewError("discount amount must be non-negative").
			WithHint("Discount amount must be non-negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Line is a single row of an invoice.
type Line struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    Discount        `json:"discount"`
}

// EmptyLine returns the blank row a new invoice starts with: no description,
// quantity one, zero price, no discount.
func EmptyLine() Line {
	return Line{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE),
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.Zero,
		Discount:  NoDiscount(),
	}
}

// Gross is quantity times unit price before any discount.
func (l Line) Gross() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Net is the line value after the discount is applied.
func (l Line) Net() decimal.Decimal {
	gross := l.Gross()
	return gross.Sub(l.Discount.ResolvedAmount(gross))
}

func (l Line) Validate() error {
	if l.Quantity.IsNegative() {
		return ierr.NewError("line quantity must be non-negative").
			WithHint("Quantity must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if l.UnitPrice.IsNegative() {
		return ierr.NewError("line unit price must be non-negative").
			WithHint("Unit price must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if utf8.RuneCountInString(l.Description) > MaxDescriptionLength {
		return ierr.NewError("line description too long").
			WithHintf("Description is limited to %d characters", MaxDescriptionLength).
			Mark(ierr.ErrValidation)
	}
	return l.Discount.Validate()
}

// CustomerSnapshot is the denormalized copy of a customer embedded into each
// invoice at save time. Later edits to the customer record do not change
// past invoices.
type CustomerSnapshot struct {
	CustomerID string `json:"customer_id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Invoice represents the invoice domain model. Subtotal, VAT amount and total
// are never stored; they are recomputed from the lines on every read.
type Invoice struct {
	ID            string              `json:"id"`
	InvoiceNumber string              `json:"invoice_number"`
	InvoiceDate   time.Time           `json:"invoice_date"`
	DueDate       time.Time           `json:"due_date"`
	InvoiceStatus types.InvoiceStatus `json:"status"`
	VATPercentage decimal.Decimal     `json:"btw_percentage"`
	VATIncluded   bool                `json:"vat_included"`
	Lines         []Line              `json:"lines"`
	Customer      CustomerSnapshot    `json:"customer"`
	PdfObjectKey  *string             `json:"pdf_object_key,omitempty"`
	types.BaseModel
}

func (i *Invoice) Validate() error {
	if i.InvoiceNumber == "" {
		return ierr.NewError("invoice number is required").
			WithHint("Invoice number is required").
			Mark(ierr.ErrValidation)
	}
	if len(i.Lines) == 0 {
		return ierr.NewError("invoice must have at least one line").
			WithHint("An invoice needs at least one line").
			Mark(ierr.ErrValidation)
	}
	if err := i.InvoiceStatus.Validate(); err != nil {
		return err
	}
	for _, line := range i.Lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsOverdue reports whether an open invoice's due date lies strictly before
// the given day. The comparison is date-only.
func (i *Invoice) IsOverdue(today time.Time) bool {
	if i.InvoiceStatus != types.InvoiceStatusOpen {
		return false
	}
	return types.DateOnly(i.DueDate).Before(types.DateOnly(today))
}
