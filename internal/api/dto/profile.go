package dto

import (
	"context"

	"github.com/factuurlijk/factuurlijk/internal/domain/profile"
	"github.com/factuurlijk/factuurlijk/internal/types"
	"github.com/factuurlijk/factuurlijk/internal/validator"
)

type CreateProfileRequest struct {
	CompanyName       string              `json:"company_name" validate:"required,max=255"`
	Email             string              `json:"email" validate:"required,email"`
	Address           string              `json:"address" validate:"omitempty,max=255"`
	City              string              `json:"city" validate:"omitempty,max=100"`
	PostalCode        string              `json:"postal_code" validate:"omitempty,max=20"`
	IBAN              string              `json:"iban" validate:"omitempty,max=34"`
	KvKNumber         string              `json:"kvk_number" validate:"omitempty,max=20"`
	VATNumber         string              `json:"btw_number" validate:"omitempty,max=30"`
	TemplateStyle     types.TemplateStyle `json:"template_style"`
	InvoiceFooterText string              `json:"invoice_footer_text" validate:"omitempty,max=500"`
}

func (r *CreateProfileRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.TemplateStyle != "" {
		return r.TemplateStyle.Validate()
	}
	return nil
}

func (r *CreateProfileRequest) ToProfile(ctx context.Context) *profile.Profile {
	style := r.TemplateStyle
	if style == "" {
		style = types.TemplateStyleMinimalist
	}

	return &profile.Profile{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROFILE),
		CompanyName:   r.CompanyName,
		Email:         r.Email,
		Address:       r.Address,
		City:          r.City,
		PostalCode:    r.PostalCode,
		IBAN:          r.IBAN,
		KvKNumber:     r.KvKNumber,
		VATNumber:     r.VATNumber,
		TemplateStyle: style,
		Plan:          types.PlanFree,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

type UpdateProfileRequest struct {
	CompanyName       *string                         `json:"company_name" validate:"omitempty,max=255"`
	Email             *string                         `json:"email" validate:"omitempty,email"`
	Address           *string                         `json:"address" validate:"omitempty,max=255"`
	City              *string                         `json:"city" validate:"omitempty,max=100"`
	PostalCode        *string                         `json:"postal_code" validate:"omitempty,max=20"`
	IBAN              *string                         `json:"iban" validate:"omitempty,max=34"`
	KvKNumber         *string                         `json:"kvk_number" validate:"omitempty,max=20"`
	VATNumber         *string                         `json:"btw_number" validate:"omitempty,max=30"`
	LogoURL           *string                         `json:"logo_url" validate:"omitempty,max=2048"`
	TemplateStyle     *types.TemplateStyle            `json:"template_style"`
	Customizations    *profile.TemplateCustomizations `json:"template_customizations"`
	InvoiceFooterText *string                         `json:"invoice_footer_text" validate:"omitempty,max=500"`
}

func (r *UpdateProfileRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.TemplateStyle != nil {
		return r.TemplateStyle.Validate()
	}
	return nil
}

// Apply writes the provided fields onto the profile.
func (r *UpdateProfileRequest) Apply(p *profile.Profile) {
	if r.CompanyName != nil {
		p.CompanyName = *r.CompanyName
	}
	if r.Email != nil {
		p.Email = *r.Email
	}
	if r.Address != nil {
		p.Address = *r.Address
	}
	if r.City != nil {
		p.City = *r.City
	}
	if r.PostalCode != nil {
		p.PostalCode = *r.PostalCode
	}
	if r.IBAN != nil {
		p.IBAN = *r.IBAN
	}
	if r.KvKNumber != nil {
		p.KvKNumber = *r.KvKNumber
	}
	if r.VATNumber != nil {
		p.VATNumber = *r.VATNumber
	}
	if r.LogoURL != nil {
		p.LogoURL = *r.LogoURL
	}
	if r.TemplateStyle != nil {
		p.TemplateStyle = *r.TemplateStyle
	}
	if r.Customizations != nil {
		p.Customizations = r.Customizations
	}
	if r.InvoiceFooterText != nil {
		p.InvoiceFooterText = *r.InvoiceFooterText
	}
}

type LogoResponse struct {
	Url string `json:"url"`
}

type ProfileResponse struct {
	*profile.Profile

	// RemainingFreeInvoices is how many more invoices a free profile may
	// create; nil for pro profiles.
	RemainingFreeInvoices *int `json:"remaining_free_invoices,omitempty"`
}

func NewProfileResponse(p *profile.Profile) *ProfileResponse {
	resp := &ProfileResponse{Profile: p}
	if p.Plan == types.PlanFree {
		remaining := types.FreePlanInvoiceLimit - p.InvoiceCreationCount
		if remaining < 0 {
			remaining = 0
		}
		resp.RemainingFreeInvoices = &remaining
	}
	return resp
}
