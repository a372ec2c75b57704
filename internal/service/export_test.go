package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/factuurlijk/factuurlijk/internal/domain/profile"
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/s3"
	"github.com/factuurlijk/factuurlijk/internal/testutil"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

type ExportServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ExportService
}

func TestExportService(t *testing.T) {
	suite.Run(t, new(ExportServiceSuite))
}

func (s *ExportServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewExportService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *ExportServiceSuite) TestExportInvoicePdf() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)
	inv := seedInvoice(&s.BaseServiceTestSuite, "FACT-001", types.InvoiceStatusOpen,
		time.Now().UTC().AddDate(0, 1, 0))

	resp, err := s.service.ExportInvoicePdf(s.GetContext(), inv.ID, types.RenderContextPrintFullPage)
	s.NoError(err)
	s.Equal(inv.ID, resp.InvoiceID)
	s.NotEmpty(resp.PdfObjectKey)
	s.Contains(resp.Url, "https://blob.test/")

	// The stored pdf and the recorded object key line up.
	data, err := s.GetBlobStore().GetObject(s.GetContext(), inv.ID, s3.ObjectTypeInvoicePdf)
	s.NoError(err)
	s.Contains(string(data), inv.ID)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Require().NotNil(stored.PdfObjectKey)
	s.Equal(resp.PdfObjectKey, *stored.PdfObjectKey)
}

func (s *ExportServiceSuite) TestExportInvoicePdf_PrintScreenLarge() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)
	inv := seedInvoice(&s.BaseServiceTestSuite, "FACT-001", types.InvoiceStatusOpen,
		time.Now().UTC().AddDate(0, 1, 0))

	_, err := s.service.ExportInvoicePdf(s.GetContext(), inv.ID, types.RenderContextPrintScreenLarge)
	s.NoError(err)
	s.Require().Len(s.GetPDFGenerator().Rendered, 1)
	s.Equal(types.RenderContextPrintScreenLarge.String(), s.GetPDFGenerator().Rendered[0].RenderContext)
}

func (s *ExportServiceSuite) TestExportInvoicePdf_RejectsScreenContext() {
	_, err := s.service.ExportInvoicePdf(s.GetContext(), "inv_1", types.RenderContextScreenLarge)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ExportServiceSuite) TestExportInvoicePdf_MissingInvoice() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)

	_, err := s.service.ExportInvoicePdf(s.GetContext(), "inv_missing", types.RenderContextPrintFullPage)
	s.Error(err)
}

func (s *ExportServiceSuite) TestExportInvoicePdf_UploadFailure() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)
	inv := seedInvoice(&s.BaseServiceTestSuite, "FACT-001", types.InvoiceStatusOpen,
		time.Now().UTC().AddDate(0, 1, 0))

	s.GetBlobStore().UploadErr = errors.New("bucket unavailable")

	_, err := s.service.ExportInvoicePdf(s.GetContext(), inv.ID, types.RenderContextPrintFullPage)
	s.Error(err)

	// The object key is only recorded on a successful upload.
	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Nil(stored.PdfObjectKey)
}

func (s *ExportServiceSuite) TestRenderDocument_MissingLogoDegrades() {
	prof := seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)
	prof.LogoURL = "https://example.test/logo.png"
	s.Require().NoError(s.GetStores().ProfileRepo.Update(s.GetContext(), prof))

	inv := seedInvoice(&s.BaseServiceTestSuite, "FACT-001", types.InvoiceStatusOpen,
		time.Now().UTC().AddDate(0, 1, 0))

	// No resolver wired: the render input carries an empty logo and the
	// export still succeeds with the sender name in the header.
	in, err := s.service.RenderDocument(s.GetContext(), inv.ID, types.RenderContextPrintFullPage)
	s.NoError(err)
	s.Empty(in.LogoURL)

	resp, err := s.service.ExportInvoicePdf(s.GetContext(), inv.ID, types.RenderContextPrintFullPage)
	s.NoError(err)
	s.NotEmpty(resp.PdfObjectKey)
	s.Require().Len(s.GetPDFGenerator().Rendered, 1)
	s.False(s.GetPDFGenerator().Rendered[0].Header.ShowLogo)
}

func (s *ExportServiceSuite) TestRenderDocument_CarriesCustomizations() {
	prof := seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)
	prof.Customizations = &profile.TemplateCustomizations{PrimaryColor: "#ff0000"}
	s.Require().NoError(s.GetStores().ProfileRepo.Update(s.GetContext(), prof))

	inv := seedInvoice(&s.BaseServiceTestSuite, "FACT-001", types.InvoiceStatusOpen,
		time.Now().UTC().AddDate(0, 1, 0))

	in, err := s.service.RenderDocument(s.GetContext(), inv.ID, types.RenderContextPrintFullPage)
	s.NoError(err)
	s.Require().NotNil(in.Customizations)
	s.Equal("#ff0000", in.Customizations.PrimaryColor)
}
