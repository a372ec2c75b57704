package testutil

import (
	"context"

	"github.com/factuurlijk/factuurlijk/internal/domain/document"
	"github.com/factuurlijk/factuurlijk/internal/logger"
	"github.com/factuurlijk/factuurlijk/internal/pdf"
)

var _ pdf.Generator = (*MockPDFGenerator)(nil)

// MockPDFGenerator returns a fixed byte stamp instead of shelling out to the
// typst binary.
type MockPDFGenerator struct {
	logger *logger.Logger

	// Err, when set, is returned from every render call.
	Err error
	// Rendered records the document trees handed to the generator.
	Rendered []*document.Document
}

func NewMockPDFGenerator(logger *logger.Logger) *MockPDFGenerator {
	return &MockPDFGenerator{logger: logger}
}

// RenderInvoicePdf implements pdf.Generator.
func (m *MockPDFGenerator) RenderInvoicePdf(ctx context.Context, invoiceID string, doc *document.Document) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Rendered = append(m.Rendered, doc)
	return []byte("%PDF-1.7 " + invoiceID), nil
}

func (m *MockPDFGenerator) Clear() {
	m.Err = nil
	m.Rendered = nil
}
