package dto

import (
	"github.com/factuurlijk/factuurlijk/internal/domain/payment"
	"github.com/factuurlijk/factuurlijk/internal/validator"
)

type CreatePaymentClaimRequest struct {
	// Source names the place the upgrade was initiated from, e.g.
	// "settings" or "limit_prompt".
	Source string `json:"source" validate:"required,max=50"`
}

func (r *CreatePaymentClaimRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type PaymentClaimResponse struct {
	*payment.Claim
}

// ConfirmPaymentClaimRequest is what the payment provider webhook delivers:
// the claim reference plus whether the payment went through.
type ConfirmPaymentClaimRequest struct {
	Reference string `json:"reference" validate:"required"`
	Approved  bool   `json:"approved"`
}

func (r *ConfirmPaymentClaimRequest) Validate() error {
	return validator.ValidateRequest(r)
}
