package types

import (
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus represents the current state of an invoice in its lifecycle.
// The Dutch labels are the wire values the rest of the product uses.
type InvoiceStatus string

const (
	// InvoiceStatusOpen indicates the invoice is sent and awaiting payment
	InvoiceStatusOpen InvoiceStatus = "open"
	// InvoiceStatusPaid indicates the invoice has been paid ("betaald")
	InvoiceStatusPaid InvoiceStatus = "betaald"
	// InvoiceStatusExpired indicates the due date passed while the invoice was open ("verlopen")
	InvoiceStatusExpired InvoiceStatus = "verlopen"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusOpen,
		InvoiceStatusPaid,
		InvoiceStatusExpired,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CanTransitionTo reports whether a status change is a normal transition.
// open -> betaald, betaald -> open, open -> verlopen (automatic) and
// verlopen -> betaald are allowed. verlopen -> open only happens through an
// explicit mark-open, which callers opt into with the explicit flag.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus, explicit bool) bool {
	switch s {
	case InvoiceStatusOpen:
		return target == InvoiceStatusPaid || target == InvoiceStatusExpired
	case InvoiceStatusPaid:
		return target == InvoiceStatusOpen
	case InvoiceStatusExpired:
		if target == InvoiceStatusPaid {
			return true
		}
		return target == InvoiceStatusOpen && explicit
	}
	return false
}

// DiscountType discriminates the two discount representations a line can carry.
type DiscountType string

const (
	DiscountTypeNone       DiscountType = "none"
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeEuros      DiscountType = "euros"
)

func (d DiscountType) String() string {
	return string(d)
}

func (d DiscountType) Validate() error {
	allowed := []DiscountType{
		DiscountTypeNone,
		DiscountTypePercentage,
		DiscountTypeEuros,
	}
	if !lo.Contains(allowed, d) {
		return ierr.NewError("invalid discount type").
			WithHint("Please provide a valid discount type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
