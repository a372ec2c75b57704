package pdf

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/factuurlijk/factuurlijk/internal/domain/document"
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/typst"
)

// Generator defines the interface for PDF generation operations
type Generator interface {
	RenderInvoicePdf(ctx context.Context, invoiceID string, doc *document.Document) ([]byte, error)
}

type service struct {
	typst typst.Compiler
}

// NewGenerator creates a new PDF service
func NewGenerator(compiler typst.Compiler) Generator {
	return &service{
		typst: compiler,
	}
}

// RenderInvoicePdf rasterizes a laid-out document tree into a PDF. All
// layout decisions were made upstream; the template only places the
// pre-formatted strings.
func (s *service) RenderInvoicePdf(ctx context.Context, invoiceID string, doc *document.Document) ([]byte, error) {
	templateName := "invoice.typ"

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to marshal document tree").
			Mark(ierr.ErrSystem)
	}

	pdfBytes, err := s.typst.CompileTemplate(
		templateName,
		jsonData,
		typst.WithOutputFile(fmt.Sprintf("invoice-%s.pdf", invoiceID)),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to compile invoice template").
			Mark(ierr.ErrSystem)
	}

	return pdfBytes, nil
}
