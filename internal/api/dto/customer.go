package dto

import (
	"context"

	"github.com/factuurlijk/factuurlijk/internal/domain/customer"
	"github.com/factuurlijk/factuurlijk/internal/types"
	"github.com/factuurlijk/factuurlijk/internal/validator"
)

type CreateCustomerRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Email      string `json:"email" validate:"omitempty,email"`
	Address    string `json:"address" validate:"omitempty,max=255"`
	City       string `json:"city" validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code" validate:"omitempty,max=20"`
	Country    string `json:"country" validate:"omitempty,max=100"`
	KvKNumber  string `json:"kvk_number" validate:"omitempty,max=20"`
	VATNumber  string `json:"vat_number" validate:"omitempty,max=30"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
}

func (r *CreateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateCustomerRequest) ToCustomer(ctx context.Context) *customer.Customer {
	return &customer.Customer{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:       r.Name,
		Email:      r.Email,
		Address:    r.Address,
		City:       r.City,
		PostalCode: r.PostalCode,
		Country:    r.Country,
		KvKNumber:  r.KvKNumber,
		VATNumber:  r.VATNumber,
		Phone:      r.Phone,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

type UpdateCustomerRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=255"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Address    *string `json:"address" validate:"omitempty,max=255"`
	City       *string `json:"city" validate:"omitempty,max=100"`
	PostalCode *string `json:"postal_code" validate:"omitempty,max=20"`
	Country    *string `json:"country" validate:"omitempty,max=100"`
	KvKNumber  *string `json:"kvk_number" validate:"omitempty,max=20"`
	VATNumber  *string `json:"vat_number" validate:"omitempty,max=30"`
	Phone      *string `json:"phone" validate:"omitempty,max=30"`
}

func (r *UpdateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply writes the provided fields onto the customer.
func (r *UpdateCustomerRequest) Apply(c *customer.Customer) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Address != nil {
		c.Address = *r.Address
	}
	if r.City != nil {
		c.City = *r.City
	}
	if r.PostalCode != nil {
		c.PostalCode = *r.PostalCode
	}
	if r.Country != nil {
		c.Country = *r.Country
	}
	if r.KvKNumber != nil {
		c.KvKNumber = *r.KvKNumber
	}
	if r.VATNumber != nil {
		c.VATNumber = *r.VATNumber
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
}

type CustomerResponse struct {
	*customer.Customer
}

type ListCustomersResponse struct {
	Items []*CustomerResponse `json:"items"`
	Total int                 `json:"total"`
}
