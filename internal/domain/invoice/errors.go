package invoice

import (
	"errors"
)

var (
	// ErrInvoiceNotFound is returned when an invoice is not found
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvalidStatusTransition is returned when a status change is not allowed
	ErrInvalidStatusTransition = errors.New("invalid invoice status transition")
)

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrInvoiceNotFound)
}
