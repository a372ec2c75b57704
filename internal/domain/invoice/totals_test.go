package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name          string
		lines         []Line
		vatPercentage decimal.Decimal
		vatIncluded   bool
		wantSubtotal  string
		wantVAT       string
		wantTotal     string
	}{
		{
			name: "exclusive_vat_added_on_top",
			lines: []Line{
				{Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(75)},
				{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(250)},
			},
			vatPercentage: decimal.NewFromInt(21),
			wantSubtotal:  "1000",
			wantVAT:       "210",
			wantTotal:     "1210",
		},
		{
			name: "inclusive_vat_backed_out",
			lines: []Line{
				{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(121)},
			},
			vatPercentage: decimal.NewFromInt(21),
			vatIncluded:   true,
			wantSubtotal:  "121",
			wantVAT:       "21",
			wantTotal:     "121",
		},
		{
			name:          "empty_lines",
			lines:         nil,
			vatPercentage: decimal.NewFromInt(21),
			wantSubtotal:  "0",
			wantVAT:       "0",
			wantTotal:     "0",
		},
		{
			name: "zero_vat_percentage",
			lines: []Line{
				{Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(50)},
			},
			vatPercentage: decimal.Zero,
			wantSubtotal:  "150",
			wantVAT:       "0",
			wantTotal:     "150",
		},
		{
			name: "nine_percent_rate",
			lines: []Line{
				{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
			},
			vatPercentage: decimal.NewFromInt(9),
			wantSubtotal:  "200",
			wantVAT:       "18",
			wantTotal:     "218",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(tt.lines, tt.vatPercentage, tt.vatIncluded)
			assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString(tt.wantSubtotal)),
				"subtotal: got %s", totals.Subtotal)
			assert.True(t, totals.VATAmount.Round(2).Equal(decimal.RequireFromString(tt.wantVAT)),
				"vat: got %s", totals.VATAmount)
			assert.True(t, totals.Total.Equal(decimal.RequireFromString(tt.wantTotal)),
				"total: got %s", totals.Total)
		})
	}
}

func TestComputeTotals_Discounts(t *testing.T) {
	lines := []Line{
		{
			Quantity:  decimal.NewFromInt(4),
			UnitPrice: decimal.NewFromInt(100),
			Discount:  PercentageDiscount(decimal.NewFromInt(25)),
		},
		{
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: decimal.NewFromInt(200),
			Discount:  EuroDiscount(decimal.NewFromInt(50)),
		},
	}

	totals := ComputeTotals(lines, decimal.NewFromInt(21), false)

	// 400 - 100 + 200 - 50 = 450
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(450)), "got %s", totals.Subtotal)
	assert.True(t, totals.VATAmount.Equal(decimal.RequireFromString("94.5")), "got %s", totals.VATAmount)
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("544.5")), "got %s", totals.Total)
}

func TestComputeTotals_NoIntermediateRounding(t *testing.T) {
	// 100 lines of 0.015 each sum to 1.50 exactly; rounding per line
	// would yield 2.00.
	lines := make([]Line, 100)
	for i := range lines {
		lines[i] = Line{
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: decimal.RequireFromString("0.015"),
		}
	}

	totals := ComputeTotals(lines, decimal.Zero, false)
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("1.5")), "got %s", totals.Subtotal)
}

func TestSubtotalExclVAT(t *testing.T) {
	lines := []Line{
		{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(121)},
	}
	totals := ComputeTotals(lines, decimal.NewFromInt(21), true)
	assert.True(t, totals.SubtotalExclVAT().Round(2).Equal(decimal.NewFromInt(100)),
		"got %s", totals.SubtotalExclVAT())
}

func TestTotalsExceedsLimit(t *testing.T) {
	atLimit := Totals{Total: MaxInvoiceTotal}
	assert.False(t, atLimit.ExceedsLimit())

	overLimit := Totals{Total: MaxInvoiceTotal.Add(decimal.RequireFromString("0.01"))}
	assert.True(t, overLimit.ExceedsLimit())
}

func TestHasDiscounts(t *testing.T) {
	assert.False(t, HasDiscounts(nil))
	assert.False(t, HasDiscounts([]Line{{Discount: NoDiscount()}}))
	assert.False(t, HasDiscounts([]Line{{Discount: PercentageDiscount(decimal.Zero)}}))
	assert.True(t, HasDiscounts([]Line{
		{Discount: NoDiscount()},
		{Discount: EuroDiscount(decimal.NewFromInt(5))},
	}))
}

func TestLineNet(t *testing.T) {
	line := Line{
		Quantity:  decimal.NewFromInt(2),
		UnitPrice: decimal.NewFromInt(100),
		Discount:  PercentageDiscount(decimal.NewFromInt(10)),
	}
	assert.True(t, line.Gross().Equal(decimal.NewFromInt(200)))
	assert.True(t, line.Net().Equal(decimal.NewFromInt(180)), "got %s", line.Net())
}

func TestDiscountValidate(t *testing.T) {
	assert.NoError(t, NoDiscount().Validate())
	assert.NoError(t, PercentageDiscount(decimal.NewFromInt(100)).Validate())
	assert.Error(t, PercentageDiscount(decimal.NewFromInt(101)).Validate())
	assert.Error(t, PercentageDiscount(decimal.NewFromInt(-1)).Validate())
	assert.NoError(t, EuroDiscount(decimal.NewFromInt(50)).Validate())
	assert.Error(t, EuroDiscount(decimal.NewFromInt(-50)).Validate())
}
