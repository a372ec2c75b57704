package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/factuurlijk/factuurlijk/internal/api/dto"
	"github.com/factuurlijk/factuurlijk/internal/domain/invoice"
	"github.com/factuurlijk/factuurlijk/internal/domain/profile"
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/render"
	"github.com/factuurlijk/factuurlijk/internal/testutil"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// newTestServiceParams wires ServiceParams against the in-memory stores and
// mocks. Shared by every service suite in this package.
func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           testutil.NewMockPostgresClient(s.GetLogger()),
		PDFGenerator: s.GetPDFGenerator(),
		BlobStore:    s.GetBlobStore(),
		Renderer:     render.NewRegistry(),
		InvoiceRepo:  stores.InvoiceRepo,
		CustomerRepo: stores.CustomerRepo,
		ProfileRepo:  stores.ProfileRepo,
		PaymentRepo:  stores.PaymentRepo,
	}
}

func seedProfile(s *testutil.BaseServiceTestSuite, plan types.Plan, invoiceCount int) *profile.Profile {
	prof := &profile.Profile{
		ID:                   types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROFILE),
		CompanyName:          "Jansen Webdesign",
		Email:                "post@jansenwebdesign.nl",
		IBAN:                 "NL91ABNA0417164300",
		TemplateStyle:        types.TemplateStyleMinimalist,
		Plan:                 plan,
		InvoiceCreationCount: invoiceCount,
		BaseModel:            types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().ProfileRepo.Create(s.GetContext(), prof))
	return prof
}

func seedInvoice(s *testutil.BaseServiceTestSuite, number string, status types.InvoiceStatus, dueDate time.Time) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceNumber: number,
		InvoiceDate:   dueDate.AddDate(0, -1, 0),
		DueDate:       dueDate,
		InvoiceStatus: status,
		VATPercentage: decimal.NewFromInt(21),
		Lines: []invoice.Line{
			{
				ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE),
				Description: "Consultancy",
				Quantity:    decimal.NewFromInt(10),
				UnitPrice:   decimal.NewFromInt(75),
				Discount:    invoice.NoDiscount(),
			},
		},
		Customer:  invoice.CustomerSnapshot{Name: "Bakkerij de Vries"},
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))
	return inv
}

func validCreateRequest() *dto.CreateInvoiceRequest {
	return &dto.CreateInvoiceRequest{
		InvoiceDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		VATPercentage: decimal.NewFromInt(21),
		Customer:      dto.CustomerSnapshotRequest{Name: "Bakkerij de Vries"},
		Lines: []dto.InvoiceLineRequest{
			{Description: "Consultancy", Quantity: "10", UnitPrice: "75"},
		},
	}
}

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInvoiceService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)

	resp, err := s.service.CreateInvoice(s.GetContext(), validCreateRequest())
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal(types.InvoiceStatusOpen, resp.InvoiceStatus)
	s.True(resp.Totals.Total.Equal(decimal.RequireFromString("907.5")), "got %s", resp.Totals.Total)

	prof, err := s.GetStores().ProfileRepo.GetByOwner(s.GetContext())
	s.NoError(err)
	s.Equal(1, prof.InvoiceCreationCount)
}

func (s *InvoiceServiceSuite) TestCreateInvoice_NumberFallback() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)

	resp, err := s.service.CreateInvoice(s.GetContext(), validCreateRequest())
	s.NoError(err)
	s.Equal(fmt.Sprintf("%d-001", time.Now().Year()), resp.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestCreateInvoice_SequentialNumber() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 1)
	seedInvoice(&s.BaseServiceTestSuite, "FACT-041", types.InvoiceStatusOpen,
		time.Now().UTC().AddDate(0, 1, 0))

	resp, err := s.service.CreateInvoice(s.GetContext(), validCreateRequest())
	s.NoError(err)
	s.Equal("FACT-042", resp.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestCreateInvoice_ExplicitNumberKept() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)

	req := validCreateRequest()
	req.InvoiceNumber = "OFFERTE-9"

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.Equal("OFFERTE-9", resp.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestCreateInvoice_FreePlanLimit() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, types.FreePlanInvoiceLimit)

	resp, err := s.service.CreateInvoice(s.GetContext(), validCreateRequest())
	s.Nil(resp)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoice_ProPlanUncapped() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanPro, 250)

	_, err := s.service.CreateInvoice(s.GetContext(), validCreateRequest())
	s.NoError(err)
}

func (s *InvoiceServiceSuite) TestCreateInvoice_TotalCeiling() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)

	req := validCreateRequest()
	req.Lines = []dto.InvoiceLineRequest{
		{Description: "Megaklus", Quantity: "2", UnitPrice: "999999999"},
	}

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Nil(resp)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoice_DueDateBeforeInvoiceDate() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)

	req := validCreateRequest()
	req.DueDate = req.InvoiceDate.AddDate(0, 0, -1)

	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoice_SanitizesRawInput() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)

	req := validCreateRequest()
	req.Lines = []dto.InvoiceLineRequest{
		{Description: "Uurtarief", Quantity: "2,5", UnitPrice: "80,00"},
	}

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	// 2.5 * 80 = 200, plus 21% VAT
	s.True(resp.Totals.Total.Equal(decimal.NewFromInt(242)), "got %s", resp.Totals.Total)
}

func (s *InvoiceServiceSuite) TestGetInvoice_ExpiresOverdue() {
	inv := seedInvoice(&s.BaseServiceTestSuite, "FACT-001", types.InvoiceStatusOpen,
		time.Now().UTC().AddDate(0, 0, -2))

	resp, err := s.service.GetInvoice(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusExpired, resp.InvoiceStatus)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusExpired, stored.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestGetInvoice_PaidNeverExpires() {
	inv := seedInvoice(&s.BaseServiceTestSuite, "FACT-001", types.InvoiceStatusPaid,
		time.Now().UTC().AddDate(0, 0, -30))

	resp, err := s.service.GetInvoice(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, resp.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestGetInvoice_NotFound() {
	_, err := s.service.GetInvoice(s.GetContext(), "inv_missing")
	s.Error(err)
}

func (s *InvoiceServiceSuite) TestMarkPaidAndReopen() {
	inv := seedInvoice(&s.BaseServiceTestSuite, "FACT-001", types.InvoiceStatusOpen,
		time.Now().UTC().AddDate(0, 1, 0))

	resp, err := s.service.MarkPaid(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, resp.InvoiceStatus)

	resp, err = s.service.MarkOpen(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusOpen, resp.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestMarkOpen_FromExpired() {
	// Reopening an expired invoice is only reachable through the explicit
	// mark-open action, which is exactly what MarkOpen is.
	inv := seedInvoice(&s.BaseServiceTestSuite, "FACT-001", types.InvoiceStatusExpired,
		time.Now().UTC().AddDate(0, 1, 0))

	resp, err := s.service.MarkOpen(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusOpen, resp.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestMarkPaid_FromExpired() {
	inv := seedInvoice(&s.BaseServiceTestSuite, "FACT-001", types.InvoiceStatusExpired,
		time.Now().UTC().AddDate(0, 1, 0))

	resp, err := s.service.MarkPaid(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, resp.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestMarkPaid_AlreadyPaid() {
	inv := seedInvoice(&s.BaseServiceTestSuite, "FACT-001", types.InvoiceStatusPaid,
		time.Now().UTC().AddDate(0, 1, 0))

	_, err := s.service.MarkPaid(s.GetContext(), inv.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestMarkPaid_OverdueExpiresFirst() {
	// An overdue open invoice expires on read, then verlopen -> betaald is
	// still a legal transition.
	inv := seedInvoice(&s.BaseServiceTestSuite, "FACT-001", types.InvoiceStatusOpen,
		time.Now().UTC().AddDate(0, 0, -2))

	resp, err := s.service.MarkPaid(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, resp.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestUpdateInvoice() {
	inv := seedInvoice(&s.BaseServiceTestSuite, "FACT-001", types.InvoiceStatusOpen,
		time.Now().UTC().AddDate(0, 1, 0))

	req := &dto.UpdateInvoiceRequest{
		InvoiceNumber: "FACT-001-B",
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		VATPercentage: decimal.NewFromInt(9),
		Customer:      dto.CustomerSnapshotRequest{Name: "Slagerij Smit"},
		Lines: []dto.InvoiceLineRequest{
			{Description: "Bezorging", Quantity: "1", UnitPrice: "100"},
		},
	}

	resp, err := s.service.UpdateInvoice(s.GetContext(), inv.ID, req)
	s.NoError(err)
	s.Equal("FACT-001-B", resp.InvoiceNumber)
	s.Equal("Slagerij Smit", resp.Customer.Name)
	s.True(resp.Totals.Total.Equal(decimal.NewFromInt(109)), "got %s", resp.Totals.Total)
}

func (s *InvoiceServiceSuite) TestDeleteInvoice() {
	inv := seedInvoice(&s.BaseServiceTestSuite, "FACT-001", types.InvoiceStatusOpen,
		time.Now().UTC().AddDate(0, 1, 0))

	s.NoError(s.service.DeleteInvoice(s.GetContext(), inv.ID))

	_, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.Error(err)
}

func (s *InvoiceServiceSuite) TestNextInvoiceNumber() {
	seedInvoice(&s.BaseServiceTestSuite, "2024-0007", types.InvoiceStatusOpen,
		time.Now().UTC().AddDate(0, 1, 0))

	number, err := s.service.NextInvoiceNumber(s.GetContext())
	s.NoError(err)
	s.Equal("2024-0008", number)
}

func (s *InvoiceServiceSuite) TestDraftInvoice() {
	seedInvoice(&s.BaseServiceTestSuite, "FACT-041", types.InvoiceStatusOpen,
		time.Now().UTC().AddDate(0, 1, 0))

	draft, err := s.service.DraftInvoice(s.GetContext())
	s.NoError(err)
	s.NotEmpty(draft.ID)
	s.Equal("FACT-042", draft.InvoiceNumber)
	s.Equal(types.InvoiceStatusOpen, draft.InvoiceStatus)
	s.True(draft.VATPercentage.Equal(decimal.NewFromInt(21)))
	s.False(draft.VATIncluded)

	s.Equal(types.DateOnly(time.Now().UTC()), draft.InvoiceDate)
	s.Equal(draft.InvoiceDate.AddDate(0, 0, 14), draft.DueDate)

	s.Require().Len(draft.Lines, 1)
	s.Empty(draft.Lines[0].Description)
	s.True(draft.Lines[0].Quantity.Equal(decimal.NewFromInt(1)))
	s.True(draft.Lines[0].UnitPrice.IsZero())
	s.True(draft.Totals.Total.IsZero())

	// The draft is a suggestion, not a record.
	_, err = s.GetStores().InvoiceRepo.Get(s.GetContext(), draft.ID)
	s.Error(err)
}
