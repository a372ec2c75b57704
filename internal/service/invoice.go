package service

import (
	"context"
	"sync"
	"time"

	"github.com/factuurlijk/factuurlijk/internal/api/dto"
	"github.com/factuurlijk/factuurlijk/internal/domain/invoice"
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/render/format"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// InvoiceService owns the invoice lifecycle: creation under the plan cap,
// edits, manual status changes, and the automatic open -> verlopen
// expiration that runs on every read.
type InvoiceService interface {
	DraftInvoice(ctx context.Context) (*dto.InvoiceResponse, error)
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	UpdateInvoice(ctx context.Context, id string, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
	MarkPaid(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	MarkOpen(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	NextInvoiceNumber(ctx context.Context) (string, error)
}

type invoiceService struct {
	ServiceParams

	// inFlight guards each invoice against concurrent mutations, the same
	// way the form disables its save button while a submit is running.
	inFlight sync.Map
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

// acquire marks an operation as in flight. The release func must be called
// when the operation finishes, also on error paths.
func (s *invoiceService) acquire(key string) (func(), error) {
	if _, loaded := s.inFlight.LoadOrStore(key, struct{}{}); loaded {
		return nil, ierr.NewError("operation already in progress").
			WithHint("A previous save for this invoice is still running").
			Mark(ierr.ErrInvalidOperation)
	}
	return func() { s.inFlight.Delete(key) }, nil
}

// DraftInvoice synthesizes the defaults a new, unsaved invoice opens with: a
// fresh id, the next sequential number, today's date with the due date two
// weeks out, the standard VAT rate and one empty line. Nothing is persisted.
func (s *invoiceService) DraftInvoice(ctx context.Context) (*dto.InvoiceResponse, error) {
	number, err := s.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	today := types.DateOnly(time.Now().UTC())
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceNumber: number,
		InvoiceDate:   today,
		DueDate:       today.AddDate(0, 0, invoice.DefaultDueDays),
		InvoiceStatus: types.InvoiceStatusOpen,
		VATPercentage: invoice.DefaultVATPercentage,
		Lines:         []invoice.Line{invoice.EmptyLine()},
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	release, err := s.acquire("create:" + types.GetTenantID(ctx))
	if err != nil {
		return nil, err
	}
	defer release()

	prof, err := s.ProfileRepo.GetByOwner(ctx)
	if err != nil {
		return nil, err
	}

	if !prof.CanCreateInvoice() {
		return nil, ierr.NewError("free plan invoice limit reached").
			WithHintf("The free plan allows %d invoices. Upgrade to keep invoicing.", types.FreePlanInvoiceLimit).
			Mark(ierr.ErrPermissionDenied)
	}

	inv := req.ToInvoice(ctx)

	if inv.InvoiceNumber == "" {
		number, err := s.NextInvoiceNumber(ctx)
		if err != nil {
			return nil, err
		}
		inv.InvoiceNumber = number
	}

	if err := s.checkTotalLimit(inv); err != nil {
		return nil, err
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.InvoiceRepo.Create(txCtx, inv); err != nil {
			return err
		}
		return s.ProfileRepo.IncrementInvoiceCount(txCtx, prof.ID)
	}); err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID, "invoice_number", inv.InvoiceNumber)

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.expireIfOverdue(ctx, inv); err != nil {
		return nil, err
	}

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	release, err := s.acquire(id)
	if err != nil {
		return nil, err
	}
	defer release()

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(ctx, inv)

	if err := s.checkTotalLimit(inv); err != nil {
		return nil, err
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	release, err := s.acquire(id)
	if err != nil {
		return err
	}
	defer release()

	if _, err := s.InvoiceRepo.Get(ctx, id); err != nil {
		return err
	}

	return s.InvoiceRepo.Delete(ctx, id)
}

func (s *invoiceService) MarkPaid(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	return s.transition(ctx, id, types.InvoiceStatusPaid)
}

func (s *invoiceService) MarkOpen(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	return s.transition(ctx, id, types.InvoiceStatusOpen)
}

func (s *invoiceService) transition(ctx context.Context, id string, target types.InvoiceStatus) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.expireIfOverdue(ctx, inv); err != nil {
		return nil, err
	}

	if !inv.InvoiceStatus.CanTransitionTo(target, true) {
		return nil, ierr.NewError("invalid status transition").
			WithHintf("Cannot change an invoice from %s to %s", inv.InvoiceStatus, target).
			Mark(ierr.ErrInvalidOperation)
	}

	inv.InvoiceStatus = target
	inv.UpdatedAt = time.Now().UTC()
	inv.UpdatedBy = types.GetUserID(ctx)

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	return dto.NewInvoiceResponse(inv), nil
}

// NextInvoiceNumber suggests the next sequential number from the existing
// invoice set.
func (s *invoiceService) NextInvoiceNumber(ctx context.Context) (string, error) {
	existing, err := s.InvoiceRepo.List(ctx, types.NewNoLimitInvoiceFilter())
	if err != nil {
		return "", err
	}
	return invoice.NextInvoiceNumber(existing), nil
}

// expireIfOverdue performs the automatic open -> verlopen transition and
// persists it. Reads surface the expired status without a background job.
func (s *invoiceService) expireIfOverdue(ctx context.Context, inv *invoice.Invoice) error {
	if !inv.IsOverdue(time.Now().UTC()) {
		return nil
	}
	if !inv.InvoiceStatus.CanTransitionTo(types.InvoiceStatusExpired, false) {
		return nil
	}

	inv.InvoiceStatus = types.InvoiceStatusExpired
	inv.UpdatedAt = time.Now().UTC()

	if err := s.InvoiceRepo.UpdateStatus(ctx, []string{inv.ID}, types.InvoiceStatusExpired); err != nil {
		return err
	}

	s.Logger.Infow("invoice expired", "invoice_id", inv.ID)
	return nil
}

// checkTotalLimit refuses to save an invoice whose grand total breaches the
// ceiling, reporting the offending total the way it would be displayed.
func (s *invoiceService) checkTotalLimit(inv *invoice.Invoice) error {
	totals := invoice.ComputeTotals(inv.Lines, inv.VATPercentage, inv.VATIncluded)
	if totals.ExceedsLimit() {
		return ierr.NewError("invoice total exceeds the maximum").
			WithHintf("The total %s exceeds the maximum of %s",
				format.Currency(totals.Total), format.Currency(invoice.MaxInvoiceTotal)).
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}
