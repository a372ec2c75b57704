package service

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/factuurlijk/factuurlijk/internal/api/dto"
	"github.com/factuurlijk/factuurlijk/internal/domain/invoice"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// InvoiceListService coordinates the invoice overview: filtered listing
// with locale-aware sorting, the tri-state selection model, and the
// sequential bulk operations over a selection.
type InvoiceListService interface {
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	SelectAllState(selected, listed []string) dto.SelectAllState
	BulkUpdateStatus(ctx context.Context, req *dto.BulkStatusUpdateRequest) (*dto.BulkOperationResponse, error)
	BulkDelete(ctx context.Context, req *dto.BulkDeleteRequest) (*dto.BulkOperationResponse, error)
	BulkExport(ctx context.Context, req *dto.BulkExportRequest) (*dto.BulkOperationResponse, error)
}

type invoiceListService struct {
	ServiceParams

	invoiceService InvoiceService
	exportService  ExportService

	// Numeric collation sorts "FACT-2" before "FACT-10" the way a human
	// reads invoice numbers.
	collator *collate.Collator
}

func NewInvoiceListService(params ServiceParams, invoiceService InvoiceService, exportService ExportService) InvoiceListService {
	return &invoiceListService{
		ServiceParams:  params,
		invoiceService: invoiceService,
		exportService:  exportService,
		collator:       collate.New(language.Dutch, collate.Numeric, collate.IgnoreCase),
	}
}

func (s *invoiceListService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	// Sorting on derived totals or collated text cannot be pushed into the
	// store, so fetch the filtered set unpaginated and page after sorting.
	fetchFilter := &types.InvoiceFilter{
		QueryFilter:   types.NewNoLimitQueryFilter(),
		Search:        filter.Search,
		InvoiceStatus: filter.InvoiceStatus,
	}

	invoices, err := s.InvoiceRepo.List(ctx, fetchFilter)
	if err != nil {
		return nil, err
	}

	if err := s.expireOverdue(ctx, invoices); err != nil {
		return nil, err
	}

	responses := lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
		return dto.NewInvoiceResponse(inv)
	})

	s.sortResponses(responses, filter)

	total := len(responses)
	if !filter.IsUnlimited() {
		start := filter.GetOffset()
		if start > total {
			start = total
		}
		end := start + filter.GetLimit()
		if end > total {
			end = total
		}
		responses = responses[start:end]
	}

	resp := types.NewListResponse(responses, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// expireOverdue applies the automatic open -> verlopen transition to every
// overdue invoice in the list in one store call.
func (s *invoiceListService) expireOverdue(ctx context.Context, invoices []*invoice.Invoice) error {
	now := time.Now().UTC()

	var expired []string
	for _, inv := range invoices {
		if inv.IsOverdue(now) && inv.InvoiceStatus.CanTransitionTo(types.InvoiceStatusExpired, false) {
			inv.InvoiceStatus = types.InvoiceStatusExpired
			expired = append(expired, inv.ID)
		}
	}

	if len(expired) == 0 {
		return nil
	}

	if err := s.InvoiceRepo.UpdateStatus(ctx, expired, types.InvoiceStatusExpired); err != nil {
		return err
	}

	s.Logger.Infow("expired overdue invoices", "count", len(expired))
	return nil
}

func (s *invoiceListService) sortResponses(responses []*dto.InvoiceResponse, filter *types.InvoiceFilter) {
	column := types.InvoiceSortDate
	if filter.SortColumn != nil {
		column = *filter.SortColumn
	}
	ascending := filter.GetOrder() == types.OrderAsc

	sort.SliceStable(responses, func(i, j int) bool {
		a, b := responses[i], responses[j]
		if !ascending {
			a, b = b, a
		}

		switch column {
		case types.InvoiceSortNumber:
			return s.collator.CompareString(a.InvoiceNumber, b.InvoiceNumber) < 0
		case types.InvoiceSortCustomer:
			return s.collator.CompareString(a.Customer.Name, b.Customer.Name) < 0
		case types.InvoiceSortTotal:
			return a.Totals.Total.LessThan(b.Totals.Total)
		default:
			return a.InvoiceDate.Before(b.InvoiceDate)
		}
	})
}

// SelectAllState derives the tri-state of the select-all checkbox from the
// current selection and the listed ids.
func (s *invoiceListService) SelectAllState(selected, listed []string) dto.SelectAllState {
	if len(listed) == 0 || len(selected) == 0 {
		return dto.SelectAllStateNone
	}

	listedSet := lo.SliceToMap(listed, func(id string) (string, struct{}) {
		return id, struct{}{}
	})

	matched := 0
	for _, id := range selected {
		if _, ok := listedSet[id]; ok {
			matched++
		}
	}

	switch {
	case matched == 0:
		return dto.SelectAllStateNone
	case matched == len(listed):
		return dto.SelectAllStateAll
	default:
		return dto.SelectAllStateSome
	}
}

func (s *invoiceListService) BulkUpdateStatus(ctx context.Context, req *dto.BulkStatusUpdateRequest) (*dto.BulkOperationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.runSequential(ctx, req.InvoiceIDs, 0, func(ctx context.Context, id string) error {
		inv, err := s.InvoiceRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if !inv.InvoiceStatus.CanTransitionTo(req.Status, true) {
			return invoice.ErrInvalidStatusTransition
		}
		return s.InvoiceRepo.UpdateStatus(ctx, []string{id}, req.Status)
	}), nil
}

func (s *invoiceListService) BulkDelete(ctx context.Context, req *dto.BulkDeleteRequest) (*dto.BulkOperationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.runSequential(ctx, req.InvoiceIDs, 0, func(ctx context.Context, id string) error {
		return s.InvoiceRepo.Delete(ctx, id)
	}), nil
}

func (s *invoiceListService) BulkExport(ctx context.Context, req *dto.BulkExportRequest) (*dto.BulkOperationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	delay := time.Duration(s.Config.Export.InterItemDelayMs) * time.Millisecond

	return s.runSequential(ctx, req.InvoiceIDs, delay, func(ctx context.Context, id string) error {
		_, err := s.exportService.ExportInvoicePdf(ctx, id, req.RenderContext)
		return err
	}), nil
}

// runSequential processes ids strictly one at a time with an optional pause
// between items. The first failure aborts the run; work already done stays
// done and the response names the invoice it stopped at.
func (s *invoiceListService) runSequential(ctx context.Context, ids []string, delay time.Duration, op func(context.Context, string) error) *dto.BulkOperationResponse {
	resp := &dto.BulkOperationResponse{CompletedIDs: []string{}}

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			resp.FailedID = id
			resp.Error = err.Error()
			return resp
		}

		if err := op(ctx, id); err != nil {
			s.Logger.Errorw("bulk operation aborted",
				"invoice_id", id, "completed", len(resp.CompletedIDs), "error", err)
			resp.FailedID = id
			resp.Error = err.Error()
			return resp
		}
		resp.CompletedIDs = append(resp.CompletedIDs, id)

		if delay > 0 && i < len(ids)-1 {
			time.Sleep(delay)
		}
	}

	return resp
}
