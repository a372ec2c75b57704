package customer

import (
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// Customer is the standalone master record. Invoices embed a snapshot of it
// at save time rather than referencing it, so later edits never change past
// invoices.
type Customer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
	KvKNumber  string `json:"kvk_number,omitempty"`
	VATNumber  string `json:"vat_number,omitempty"`
	Phone      string `json:"phone,omitempty"`
	types.BaseModel
}

func (c *Customer) Validate() error {
	if c.Name == "" {
		return ierr.NewError("customer name is required").
			WithHint("Customer name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
