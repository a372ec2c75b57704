package testutil

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/factuurlijk/factuurlijk/internal/domain/invoice"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}

	cp := *inv
	cp.Lines = make([]invoice.Line, len(inv.Lines))
	copy(cp.Lines, inv.Lines)
	if inv.PdfObjectKey != nil {
		key := *inv.PdfObjectKey
		cp.PdfObjectKey = &key
	}
	return &cp
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, invoice.ErrInvoiceNotFound
	}
	if inv.Status == types.StatusDeleted || inv.TenantID != types.GetTenantID(ctx) {
		return nil, invoice.ErrInvoiceNotFound
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if _, err := s.Get(ctx, inv.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	return s.DeleteMany(ctx, []string{id})
}

func (s *InMemoryInvoiceStore) DeleteMany(ctx context.Context, ids []string) error {
	for _, id := range ids {
		inv, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		inv.Status = types.StatusDeleted
		if err := s.InMemoryStore.Update(ctx, id, inv); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	items, err := s.InMemoryStore.List(ctx, filter, invoiceFilterFn, invoiceSortFn)
	if err != nil {
		return nil, err
	}

	return lo.Map(items, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, invoiceFilterFn)
}

func (s *InMemoryInvoiceStore) UpdateStatus(ctx context.Context, ids []string, status types.InvoiceStatus) error {
	for _, id := range ids {
		inv, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		inv.InvoiceStatus = status
		if err := s.InMemoryStore.Update(ctx, id, inv); err != nil {
			return err
		}
	}
	return nil
}

func invoiceFilterFn(ctx context.Context, inv *invoice.Invoice, filter interface{}) bool {
	if inv.Status == types.StatusDeleted {
		return false
	}
	if inv.TenantID != types.GetTenantID(ctx) {
		return false
	}

	f, ok := filter.(*types.InvoiceFilter)
	if !ok || f == nil {
		return true
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(inv.InvoiceNumber), needle) &&
			!strings.Contains(strings.ToLower(inv.Customer.Name), needle) {
			return false
		}
	}
	if f.InvoiceStatus != nil && inv.InvoiceStatus != *f.InvoiceStatus {
		return false
	}
	return true
}

func invoiceSortFn(i, j *invoice.Invoice) bool {
	if !i.InvoiceDate.Equal(j.InvoiceDate) {
		return i.InvoiceDate.After(j.InvoiceDate)
	}
	return i.ID > j.ID
}
