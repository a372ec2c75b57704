package profile

import (
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// TemplateCustomizations overrides a template's default accent color and
// font. A nil customization keeps each template's own defaults.
type TemplateCustomizations struct {
	PrimaryColor string `json:"primary_color,omitempty"`
	Font         string `json:"font,omitempty"`
}

// Profile is the company profile of the invoicing user: sender identity on
// every rendered document plus the plan state that gates invoice creation.
type Profile struct {
	ID                   string                  `json:"id"`
	CompanyName          string                  `json:"company_name"`
	Email                string                  `json:"email"`
	Address              string                  `json:"address,omitempty"`
	City                 string                  `json:"city,omitempty"`
	PostalCode           string                  `json:"postal_code,omitempty"`
	IBAN                 string                  `json:"iban,omitempty"`
	KvKNumber            string                  `json:"kvk_number,omitempty"`
	VATNumber            string                  `json:"btw_number,omitempty"`
	LogoURL              string                  `json:"logo_url,omitempty"`
	TemplateStyle        types.TemplateStyle     `json:"template_style"`
	Customizations       *TemplateCustomizations `json:"template_customizations,omitempty"`
	InvoiceFooterText    string                  `json:"invoice_footer_text,omitempty"`
	Plan                 types.Plan              `json:"plan"`
	InvoiceCreationCount int                     `json:"invoice_creation_count"`
	types.BaseModel
}

func (p *Profile) Validate() error {
	if p.CompanyName == "" {
		return ierr.NewError("company name is required").
			WithHint("Company name is required").
			Mark(ierr.ErrValidation)
	}
	if err := p.TemplateStyle.Validate(); err != nil {
		return err
	}
	return p.Plan.Validate()
}

// CanCreateInvoice reports whether the plan allows creating one more invoice.
// The authoritative count lives server-side; this is the same rule applied
// before the persistence call as a fast path.
func (p *Profile) CanCreateInvoice() bool {
	if p.Plan == types.PlanPro {
		return true
	}
	return p.InvoiceCreationCount < types.FreePlanInvoiceLimit
}
