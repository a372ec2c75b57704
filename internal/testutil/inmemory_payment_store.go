package testutil

import (
	"context"

	"github.com/factuurlijk/factuurlijk/internal/domain/payment"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// InMemoryPaymentStore implements payment.Repository
type InMemoryPaymentStore struct {
	*InMemoryStore[*payment.Claim]
}

// NewInMemoryPaymentStore creates a new in-memory payment claim store
func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		InMemoryStore: NewInMemoryStore[*payment.Claim](),
	}
}

func copyClaim(c *payment.Claim) *payment.Claim {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (s *InMemoryPaymentStore) Create(ctx context.Context, c *payment.Claim) error {
	return s.InMemoryStore.Create(ctx, c.ID, copyClaim(c))
}

func (s *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.Claim, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, payment.ErrClaimNotFound
	}
	if c.Status == types.StatusDeleted || c.TenantID != types.GetTenantID(ctx) {
		return nil, payment.ErrClaimNotFound
	}
	return copyClaim(c), nil
}

func (s *InMemoryPaymentStore) GetByReference(ctx context.Context, reference string) (*payment.Claim, error) {
	filterFn := func(ctx context.Context, c *payment.Claim, _ interface{}) bool {
		return c.Status != types.StatusDeleted && c.Reference == reference
	}

	claims, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}
	if len(claims) == 0 {
		return nil, payment.ErrClaimNotFound
	}
	return copyClaim(claims[0]), nil
}

func (s *InMemoryPaymentStore) Update(ctx context.Context, c *payment.Claim) error {
	if _, err := s.Get(ctx, c.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, c.ID, copyClaim(c))
}
