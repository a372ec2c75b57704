package invoice

import (
	"context"

	"github.com/factuurlijk/factuurlijk/internal/types"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Create creates a new invoice with its lines
	Create(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// Update updates an existing invoice
	Update(ctx context.Context, invoice *Invoice) error

	// Delete removes an invoice
	Delete(ctx context.Context, id string) error

	// DeleteMany removes a set of invoices by id
	DeleteMany(ctx context.Context, ids []string) error

	// List retrieves invoices based on filter criteria
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)

	// Count returns the total count of invoices based on filter criteria
	Count(ctx context.Context, filter *types.InvoiceFilter) (int, error)

	// UpdateStatus sets the invoice status for a set of invoices
	UpdateStatus(ctx context.Context, ids []string, status types.InvoiceStatus) error
}
