package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/factuurlijk/factuurlijk/internal/api/dto"
	"github.com/factuurlijk/factuurlijk/internal/domain/invoice"
	"github.com/factuurlijk/factuurlijk/internal/testutil"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

type InvoiceListServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceListService
}

func TestInvoiceListService(t *testing.T) {
	suite.Run(t, new(InvoiceListServiceSuite))
}

func (s *InvoiceListServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	invoiceService := NewInvoiceService(params)
	exportService := NewExportService(params)
	s.service = NewInvoiceListService(params, invoiceService, exportService)
}

func (s *InvoiceListServiceSuite) seedSet() map[string]*invoice.Invoice {
	future := time.Now().UTC().AddDate(0, 1, 0)

	invoices := map[string]*invoice.Invoice{}
	for _, spec := range []struct {
		number   string
		customer string
		price    int64
		daysAgo  int
	}{
		{"FACT-2", "Bakkerij de Vries", 500, 3},
		{"FACT-10", "Aannemer Jansen", 1200, 2},
		{"FACT-3", "Ébène Interieur", 90, 1},
	} {
		inv := seedInvoice(&s.BaseServiceTestSuite, spec.number, types.InvoiceStatusOpen, future)
		inv.InvoiceDate = time.Now().UTC().AddDate(0, 0, -spec.daysAgo)
		inv.Customer = invoice.CustomerSnapshot{Name: spec.customer}
		inv.Lines = []invoice.Line{
			{
				ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE),
				Quantity:  decimal.NewFromInt(1),
				UnitPrice: decimal.NewFromInt(spec.price),
			},
		}
		s.Require().NoError(s.GetStores().InvoiceRepo.Update(s.GetContext(), inv))
		invoices[spec.number] = inv
	}
	return invoices
}

func numbers(resp *dto.ListInvoicesResponse) []string {
	return lo.Map(resp.Items, func(item *dto.InvoiceResponse, _ int) string {
		return item.InvoiceNumber
	})
}

func (s *InvoiceListServiceSuite) TestListInvoices_DefaultSortDateDesc() {
	s.seedSet()

	resp, err := s.service.ListInvoices(s.GetContext(), types.NewInvoiceFilter())
	s.NoError(err)
	s.Equal(3, resp.Pagination.Total)
	s.Equal([]string{"FACT-3", "FACT-10", "FACT-2"}, numbers(resp))
}

func (s *InvoiceListServiceSuite) TestListInvoices_NumericCollation() {
	s.seedSet()

	filter := types.NewInvoiceFilter()
	filter.SortColumn = lo.ToPtr(types.InvoiceSortNumber)
	filter.Order = lo.ToPtr(types.OrderAsc)

	resp, err := s.service.ListInvoices(s.GetContext(), filter)
	s.NoError(err)
	// Numeric collation puts FACT-2 and FACT-3 before FACT-10.
	s.Equal([]string{"FACT-2", "FACT-3", "FACT-10"}, numbers(resp))
}

func (s *InvoiceListServiceSuite) TestListInvoices_CustomerCollation() {
	s.seedSet()

	filter := types.NewInvoiceFilter()
	filter.SortColumn = lo.ToPtr(types.InvoiceSortCustomer)
	filter.Order = lo.ToPtr(types.OrderAsc)

	resp, err := s.service.ListInvoices(s.GetContext(), filter)
	s.NoError(err)
	// Dutch collation sorts É with the E's, not after Z.
	s.Equal([]string{"FACT-10", "FACT-2", "FACT-3"}, numbers(resp))
}

func (s *InvoiceListServiceSuite) TestListInvoices_SortByTotal() {
	s.seedSet()

	filter := types.NewInvoiceFilter()
	filter.SortColumn = lo.ToPtr(types.InvoiceSortTotal)
	filter.Order = lo.ToPtr(types.OrderDesc)

	resp, err := s.service.ListInvoices(s.GetContext(), filter)
	s.NoError(err)
	s.Equal([]string{"FACT-10", "FACT-2", "FACT-3"}, numbers(resp))
}

func (s *InvoiceListServiceSuite) TestListInvoices_Search() {
	s.seedSet()

	filter := types.NewInvoiceFilter()
	filter.Search = "bakkerij"

	resp, err := s.service.ListInvoices(s.GetContext(), filter)
	s.NoError(err)
	s.Equal([]string{"FACT-2"}, numbers(resp))
}

func (s *InvoiceListServiceSuite) TestListInvoices_PaginationAfterSorting() {
	s.seedSet()

	filter := &types.InvoiceFilter{
		QueryFilter: &types.QueryFilter{
			Limit:  lo.ToPtr(2),
			Offset: lo.ToPtr(1),
			Order:  lo.ToPtr(types.OrderAsc),
		},
		SortColumn: lo.ToPtr(types.InvoiceSortNumber),
	}

	resp, err := s.service.ListInvoices(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(3, resp.Pagination.Total)
	s.Equal([]string{"FACT-3", "FACT-10"}, numbers(resp))
}

func (s *InvoiceListServiceSuite) TestListInvoices_ExpiresOverdueBatch() {
	future := time.Now().UTC().AddDate(0, 1, 0)
	past := time.Now().UTC().AddDate(0, 0, -3)

	seedInvoice(&s.BaseServiceTestSuite, "FACT-1", types.InvoiceStatusOpen, past)
	seedInvoice(&s.BaseServiceTestSuite, "FACT-2", types.InvoiceStatusOpen, future)
	paid := seedInvoice(&s.BaseServiceTestSuite, "FACT-3", types.InvoiceStatusPaid, past)

	resp, err := s.service.ListInvoices(s.GetContext(), types.NewInvoiceFilter())
	s.NoError(err)

	byNumber := lo.SliceToMap(resp.Items, func(item *dto.InvoiceResponse) (string, types.InvoiceStatus) {
		return item.InvoiceNumber, item.InvoiceStatus
	})
	s.Equal(types.InvoiceStatusExpired, byNumber["FACT-1"])
	s.Equal(types.InvoiceStatusOpen, byNumber["FACT-2"])
	s.Equal(types.InvoiceStatusPaid, byNumber["FACT-3"])

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), paid.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, stored.InvoiceStatus)
}

func (s *InvoiceListServiceSuite) TestListInvoices_StatusFilter() {
	future := time.Now().UTC().AddDate(0, 1, 0)
	seedInvoice(&s.BaseServiceTestSuite, "FACT-1", types.InvoiceStatusOpen, future)
	seedInvoice(&s.BaseServiceTestSuite, "FACT-2", types.InvoiceStatusPaid, future)

	filter := types.NewInvoiceFilter()
	filter.InvoiceStatus = lo.ToPtr(types.InvoiceStatusPaid)

	resp, err := s.service.ListInvoices(s.GetContext(), filter)
	s.NoError(err)
	s.Equal([]string{"FACT-2"}, numbers(resp))
}

func (s *InvoiceListServiceSuite) TestSelectAllState() {
	listed := []string{"a", "b", "c"}

	s.Equal(dto.SelectAllStateNone, s.service.SelectAllState(nil, listed))
	s.Equal(dto.SelectAllStateNone, s.service.SelectAllState([]string{"x"}, listed))
	s.Equal(dto.SelectAllStateSome, s.service.SelectAllState([]string{"a"}, listed))
	s.Equal(dto.SelectAllStateAll, s.service.SelectAllState([]string{"a", "b", "c"}, listed))
	// Selection surviving from a previous filter does not count.
	s.Equal(dto.SelectAllStateAll, s.service.SelectAllState([]string{"a", "b", "c", "x"}, listed))
	s.Equal(dto.SelectAllStateNone, s.service.SelectAllState([]string{"a"}, nil))
}

func (s *InvoiceListServiceSuite) TestBulkUpdateStatus() {
	future := time.Now().UTC().AddDate(0, 1, 0)
	one := seedInvoice(&s.BaseServiceTestSuite, "FACT-1", types.InvoiceStatusOpen, future)
	two := seedInvoice(&s.BaseServiceTestSuite, "FACT-2", types.InvoiceStatusOpen, future)

	resp, err := s.service.BulkUpdateStatus(s.GetContext(), &dto.BulkStatusUpdateRequest{
		InvoiceIDs: []string{one.ID, two.ID},
		Status:     types.InvoiceStatusPaid,
	})
	s.NoError(err)
	s.Equal([]string{one.ID, two.ID}, resp.CompletedIDs)
	s.Empty(resp.FailedID)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), two.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, stored.InvoiceStatus)
}

func (s *InvoiceListServiceSuite) TestBulkUpdateStatus_AbortsKeepingCompleted() {
	future := time.Now().UTC().AddDate(0, 1, 0)
	one := seedInvoice(&s.BaseServiceTestSuite, "FACT-1", types.InvoiceStatusOpen, future)
	blocked := seedInvoice(&s.BaseServiceTestSuite, "FACT-2", types.InvoiceStatusPaid, future)
	three := seedInvoice(&s.BaseServiceTestSuite, "FACT-3", types.InvoiceStatusOpen, future)

	resp, err := s.service.BulkUpdateStatus(s.GetContext(), &dto.BulkStatusUpdateRequest{
		InvoiceIDs: []string{one.ID, blocked.ID, three.ID},
		Status:     types.InvoiceStatusPaid,
	})
	s.NoError(err)
	s.Equal([]string{one.ID}, resp.CompletedIDs)
	s.Equal(blocked.ID, resp.FailedID)
	s.NotEmpty(resp.Error)

	// Work before the failure sticks; work after it never ran.
	first, _ := s.GetStores().InvoiceRepo.Get(s.GetContext(), one.ID)
	s.Equal(types.InvoiceStatusPaid, first.InvoiceStatus)
	last, _ := s.GetStores().InvoiceRepo.Get(s.GetContext(), three.ID)
	s.Equal(types.InvoiceStatusOpen, last.InvoiceStatus)
}

func (s *InvoiceListServiceSuite) TestBulkDelete() {
	future := time.Now().UTC().AddDate(0, 1, 0)
	one := seedInvoice(&s.BaseServiceTestSuite, "FACT-1", types.InvoiceStatusOpen, future)
	two := seedInvoice(&s.BaseServiceTestSuite, "FACT-2", types.InvoiceStatusOpen, future)

	resp, err := s.service.BulkDelete(s.GetContext(), &dto.BulkDeleteRequest{
		InvoiceIDs: []string{one.ID, two.ID},
	})
	s.NoError(err)
	s.Len(resp.CompletedIDs, 2)

	_, err = s.GetStores().InvoiceRepo.Get(s.GetContext(), one.ID)
	s.Error(err)
}

func (s *InvoiceListServiceSuite) TestBulkDelete_AbortsOnMissing() {
	future := time.Now().UTC().AddDate(0, 1, 0)
	one := seedInvoice(&s.BaseServiceTestSuite, "FACT-1", types.InvoiceStatusOpen, future)
	two := seedInvoice(&s.BaseServiceTestSuite, "FACT-2", types.InvoiceStatusOpen, future)

	resp, err := s.service.BulkDelete(s.GetContext(), &dto.BulkDeleteRequest{
		InvoiceIDs: []string{one.ID, "inv_missing", two.ID},
	})
	s.NoError(err)
	s.Equal([]string{one.ID}, resp.CompletedIDs)
	s.Equal("inv_missing", resp.FailedID)

	// The invoice after the failure is untouched.
	_, err = s.GetStores().InvoiceRepo.Get(s.GetContext(), two.ID)
	s.NoError(err)
}

func (s *InvoiceListServiceSuite) TestBulkExport() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanPro, 0)
	future := time.Now().UTC().AddDate(0, 1, 0)
	one := seedInvoice(&s.BaseServiceTestSuite, "FACT-1", types.InvoiceStatusOpen, future)
	two := seedInvoice(&s.BaseServiceTestSuite, "FACT-2", types.InvoiceStatusOpen, future)

	s.GetConfig().Export.InterItemDelayMs = 0

	resp, err := s.service.BulkExport(s.GetContext(), &dto.BulkExportRequest{
		InvoiceIDs:    []string{one.ID, two.ID},
		RenderContext: types.RenderContextPrintFullPage,
	})
	s.NoError(err)
	s.Equal([]string{one.ID, two.ID}, resp.CompletedIDs)
	s.Len(s.GetPDFGenerator().Rendered, 2)
}

func (s *InvoiceListServiceSuite) TestBulkExport_RequiresPrintContext() {
	future := time.Now().UTC().AddDate(0, 1, 0)
	one := seedInvoice(&s.BaseServiceTestSuite, "FACT-1", types.InvoiceStatusOpen, future)

	// A screen context is a valid render context, so the request passes
	// validation and the run aborts on the first item instead.
	resp, err := s.service.BulkExport(s.GetContext(), &dto.BulkExportRequest{
		InvoiceIDs:    []string{one.ID},
		RenderContext: types.RenderContextScreenLarge,
	})
	s.NoError(err)
	s.Empty(resp.CompletedIDs)
	s.Equal(one.ID, resp.FailedID)
}
