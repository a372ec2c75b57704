package invoice

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func numbered(numbers ...string) []*Invoice {
	invoices := make([]*Invoice, len(numbers))
	for i, n := range numbers {
		invoices[i] = &Invoice{InvoiceNumber: n}
	}
	return invoices
}

func TestNextInvoiceNumber(t *testing.T) {
	tests := []struct {
		name     string
		existing []*Invoice
		want     string
	}{
		{
			name:     "simple_increment",
			existing: numbered("FACT-001", "FACT-002"),
			want:     "FACT-003",
		},
		{
			name:     "padding_preserved",
			existing: numbered("2024-0007"),
			want:     "2024-0008",
		},
		{
			name:     "largest_run_wins_not_latest",
			existing: numbered("FACT-010", "FACT-002"),
			want:     "FACT-011",
		},
		{
			name:     "last_digit_run_counts",
			existing: numbered("2024-FACT-15"),
			want:     "2024-FACT-16",
		},
		{
			name:     "tie_keeps_first_winner",
			existing: numbered("A-07", "B-7"),
			want:     "A-08",
		},
		{
			name:     "mixed_formats",
			existing: numbered("concept", "FACT-3", "offerte-9"),
			want:     "offerte-10",
		},
		{
			name:     "digits_only",
			existing: numbered("41"),
			want:     "42",
		},
		{
			name:     "width_overflow_grows",
			existing: numbered("FACT-999"),
			want:     "FACT-1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextInvoiceNumber(tt.existing))
		})
	}
}

func TestNextInvoiceNumber_Fallback(t *testing.T) {
	want := fmt.Sprintf("%d-001", time.Now().Year())

	assert.Equal(t, want, NextInvoiceNumber(nil))
	assert.Equal(t, want, NextInvoiceNumber(numbered("concept", "draft")))
}

func TestNextInvoiceNumber_SkipsUnparseableRuns(t *testing.T) {
	// A digit run longer than an int64 is skipped, not an error.
	existing := numbered("FACT-99999999999999999999999999", "FACT-5")
	assert.Equal(t, "FACT-6", NextInvoiceNumber(existing))
}

func TestNextInvoiceNumber_NilEntries(t *testing.T) {
	existing := []*Invoice{nil, {InvoiceNumber: "FACT-1"}}
	assert.Equal(t, "FACT-2", NextInvoiceNumber(existing))
}
