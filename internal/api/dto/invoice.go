package dto

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/factuurlijk/factuurlijk/internal/domain/invoice"
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/types"
	"github.com/factuurlijk/factuurlijk/internal/validator"
)

// InvoiceLineRequest carries one line as the form submits it: quantity,
// price and discount value arrive as raw field input, decimal comma
// included.
type InvoiceLineRequest struct {
	ID            string             `json:"id,omitempty"`
	Description   string             `json:"description"`
	Quantity      string             `json:"quantity"`
	UnitPrice     string             `json:"unit_price"`
	DiscountType  types.DiscountType `json:"discount_type,omitempty"`
	DiscountValue string             `json:"discount_value,omitempty"`
}

// ToLine parses and sanitizes the raw field input into a domain line.
func (r InvoiceLineRequest) ToLine() invoice.Line {
	discountType := r.DiscountType
	if discountType == "" {
		discountType = types.DiscountTypeNone
	}

	line := invoice.Line{
		ID:          r.ID,
		Description: r.Description,
		Quantity:    invoice.ParseNumericInput(r.Quantity),
		UnitPrice:   invoice.ParseNumericInput(r.UnitPrice),
		Discount: invoice.Discount{
			Type:  discountType,
			Value: invoice.ParseNumericInput(r.DiscountValue),
		},
	}
	if line.ID == "" {
		line.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE)
	}
	return invoice.SanitizeLine(line)
}

type CustomerSnapshotRequest struct {
	CustomerID string `json:"customer_id,omitempty"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

func (r CustomerSnapshotRequest) ToSnapshot() invoice.CustomerSnapshot {
	return invoice.CustomerSnapshot{
		CustomerID: r.CustomerID,
		Name:       r.Name,
		Email:      r.Email,
		Address:    r.Address,
		City:       r.City,
		PostalCode: r.PostalCode,
		Country:    r.Country,
	}
}

type CreateInvoiceRequest struct {
	// InvoiceNumber is optional; when empty the next sequential number is
	// derived from the existing invoices.
	InvoiceNumber string                  `json:"invoice_number,omitempty"`
	InvoiceDate   time.Time               `json:"invoice_date" validate:"required"`
	DueDate       time.Time               `json:"due_date" validate:"required"`
	VATPercentage decimal.Decimal         `json:"btw_percentage"`
	VATIncluded   bool                    `json:"vat_included"`
	Customer      CustomerSnapshotRequest `json:"customer" validate:"required"`
	Lines         []InvoiceLineRequest    `json:"lines" validate:"required,min=1,dive"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.VATPercentage.IsNegative() {
		return ierr.NewError("vat percentage must be non-negative").
			WithHint("VAT percentage must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if r.DueDate.Before(r.InvoiceDate) {
		return ierr.NewError("due date before invoice date").
			WithHint("Due date may not lie before the invoice date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateInvoiceRequest) ToInvoice(ctx context.Context) *invoice.Invoice {
	lines := make([]invoice.Line, len(r.Lines))
	for i, lr := range r.Lines {
		lines[i] = lr.ToLine()
	}

	return &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceNumber: r.InvoiceNumber,
		InvoiceDate:   r.InvoiceDate,
		DueDate:       r.DueDate,
		InvoiceStatus: types.InvoiceStatusOpen,
		VATPercentage: r.VATPercentage,
		VATIncluded:   r.VATIncluded,
		Lines:         lines,
		Customer:      r.Customer.ToSnapshot(),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

type UpdateInvoiceRequest struct {
	InvoiceNumber string                  `json:"invoice_number" validate:"required"`
	InvoiceDate   time.Time               `json:"invoice_date" validate:"required"`
	DueDate       time.Time               `json:"due_date" validate:"required"`
	VATPercentage decimal.Decimal         `json:"btw_percentage"`
	VATIncluded   bool                    `json:"vat_included"`
	Customer      CustomerSnapshotRequest `json:"customer" validate:"required"`
	Lines         []InvoiceLineRequest    `json:"lines" validate:"required,min=1,dive"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.VATPercentage.IsNegative() {
		return ierr.NewError("vat percentage must be non-negative").
			WithHint("VAT percentage must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if r.DueDate.Before(r.InvoiceDate) {
		return ierr.NewError("due date before invoice date").
			WithHint("Due date may not lie before the invoice date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Apply writes the request onto an existing invoice, leaving identity and
// audit fields alone.
func (r *UpdateInvoiceRequest) Apply(ctx context.Context, inv *invoice.Invoice) {
	lines := make([]invoice.Line, len(r.Lines))
	for i, lr := range r.Lines {
		lines[i] = lr.ToLine()
	}

	inv.InvoiceNumber = r.InvoiceNumber
	inv.InvoiceDate = r.InvoiceDate
	inv.DueDate = r.DueDate
	inv.VATPercentage = r.VATPercentage
	inv.VATIncluded = r.VATIncluded
	inv.Lines = lines
	inv.Customer = r.Customer.ToSnapshot()
	inv.UpdatedAt = time.Now().UTC()
	inv.UpdatedBy = types.GetUserID(ctx)
}

// InvoiceResponse is an invoice plus its derived totals. Totals are never
// stored, so every response recomputes them from the lines.
type InvoiceResponse struct {
	*invoice.Invoice
	Totals invoice.Totals `json:"totals"`
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		Invoice: inv,
		Totals:  invoice.ComputeTotals(inv.Lines, inv.VATPercentage, inv.VATIncluded),
	}
}

// ListInvoicesResponse represents the response for listing invoices
type ListInvoicesResponse = types.ListResponse[*InvoiceResponse]

// SelectAllState is the tri-state of the list's select-all checkbox.
type SelectAllState string

const (
	SelectAllStateNone SelectAllState = "none"
	SelectAllStateSome SelectAllState = "some"
	SelectAllStateAll  SelectAllState = "all"
)

type BulkStatusUpdateRequest struct {
	InvoiceIDs []string            `json:"invoice_ids" validate:"required,min=1"`
	Status     types.InvoiceStatus `json:"status" validate:"required"`
}

func (r *BulkStatusUpdateRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Status.Validate()
}

type BulkDeleteRequest struct {
	InvoiceIDs []string `json:"invoice_ids" validate:"required,min=1"`
}

func (r *BulkDeleteRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type BulkExportRequest struct {
	InvoiceIDs    []string            `json:"invoice_ids" validate:"required,min=1"`
	RenderContext types.RenderContext `json:"render_context" validate:"required"`
}

func (r *BulkExportRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.RenderContext.Validate()
}

// BulkOperationResponse reports which invoices a sequential bulk operation
// finished before it either completed or aborted. On abort FailedID names
// the invoice the operation stopped at; completed work is kept.
type BulkOperationResponse struct {
	CompletedIDs []string `json:"completed_ids"`
	FailedID     string   `json:"failed_id,omitempty"`
	Error        string   `json:"error,omitempty"`
}

type ExportInvoiceRequest struct {
	RenderContext types.RenderContext `json:"render_context" validate:"required"`
}

func (r *ExportInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if !r.RenderContext.IsPrint() {
		return ierr.NewError("export requires a print render context").
			WithHint("Use a print render context for PDF export").
			Mark(ierr.ErrValidation)
	}
	return r.RenderContext.Validate()
}

type ExportInvoiceResponse struct {
	InvoiceID    string `json:"invoice_id"`
	PdfObjectKey string `json:"pdf_object_key"`
	Url          string `json:"url,omitempty"`
}
