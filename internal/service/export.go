package service

import (
	"context"
	"sync"

	"github.com/factuurlijk/factuurlijk/internal/api/dto"
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/render"
	"github.com/factuurlijk/factuurlijk/internal/s3"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// ExportService runs the PDF snapshot pipeline for one invoice: resolve the
// logo, build the document tree with the profile's template, rasterize it
// and store the result.
type ExportService interface {
	ExportInvoicePdf(ctx context.Context, invoiceID string, renderCtx types.RenderContext) (*dto.ExportInvoiceResponse, error)
	RenderDocument(ctx context.Context, invoiceID string, renderCtx types.RenderContext) (*render.Input, error)
}

type exportService struct {
	ServiceParams

	// exporting guards each invoice against a second export starting while
	// one is already running.
	exporting sync.Map
}

func NewExportService(params ServiceParams) ExportService {
	return &exportService{
		ServiceParams: params,
	}
}

// RenderDocument assembles the render input for an invoice: the invoice,
// the owning profile and the resolved logo. Logo resolution degrades
// gracefully; a missing or unreachable logo never fails the render.
func (s *exportService) RenderDocument(ctx context.Context, invoiceID string, renderCtx types.RenderContext) (*render.Input, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	prof, err := s.ProfileRepo.GetByOwner(ctx)
	if err != nil {
		return nil, err
	}

	var logoURL string
	if s.LogoResolver != nil {
		logoURL = s.LogoResolver.Resolve(ctx, prof.LogoURL)
	}

	return &render.Input{
		Invoice:        inv,
		Profile:        prof,
		Customizations: prof.Customizations,
		RenderContext:  renderCtx,
		LogoURL:        logoURL,
	}, nil
}

func (s *exportService) ExportInvoicePdf(ctx context.Context, invoiceID string, renderCtx types.RenderContext) (*dto.ExportInvoiceResponse, error) {
	if !renderCtx.IsPrint() {
		return nil, ierr.NewError("export requires a print render context").
			WithHint("Use a print render context for PDF export").
			Mark(ierr.ErrValidation)
	}

	if _, loaded := s.exporting.LoadOrStore(invoiceID, struct{}{}); loaded {
		return nil, ierr.NewError("export already in progress").
			WithHint("A PDF export for this invoice is still running").
			Mark(ierr.ErrInvalidOperation)
	}
	defer s.exporting.Delete(invoiceID)

	in, err := s.RenderDocument(ctx, invoiceID, renderCtx)
	if err != nil {
		return nil, err
	}

	doc, err := s.Renderer.Render(*in)
	if err != nil {
		return nil, err
	}

	pdfBytes, err := s.PDFGenerator.RenderInvoicePdf(ctx, invoiceID, doc)
	if err != nil {
		return nil, err
	}

	resp := &dto.ExportInvoiceResponse{InvoiceID: invoiceID}

	if s.BlobStore != nil {
		key, err := s.BlobStore.UploadObject(ctx, s3.NewPdfObject(invoiceID, pdfBytes))
		if err != nil {
			return nil, err
		}

		inv := in.Invoice
		inv.PdfObjectKey = &key
		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return nil, err
		}

		url, err := s.BlobStore.GetPresignedUrl(ctx, invoiceID, s3.ObjectTypeInvoicePdf)
		if err != nil {
			s.Logger.Warnw("failed to presign pdf url", "invoice_id", invoiceID, "error", err)
		}

		resp.PdfObjectKey = key
		resp.Url = url
	}

	s.Logger.Infow("exported invoice pdf",
		"invoice_id", invoiceID, "render_context", renderCtx, "bytes", len(pdfBytes))

	return resp, nil
}
