package testutil

import (
	"context"

	"github.com/factuurlijk/factuurlijk/internal/domain/profile"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// InMemoryProfileStore implements profile.Repository
type InMemoryProfileStore struct {
	*InMemoryStore[*profile.Profile]
}

// NewInMemoryProfileStore creates a new in-memory profile store
func NewInMemoryProfileStore() *InMemoryProfileStore {
	return &InMemoryProfileStore{
		InMemoryStore: NewInMemoryStore[*profile.Profile](),
	}
}

func copyProfile(p *profile.Profile) *profile.Profile {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Customizations != nil {
		c := *p.Customizations
		cp.Customizations = &c
	}
	return &cp
}

func (s *InMemoryProfileStore) Create(ctx context.Context, p *profile.Profile) error {
	return s.InMemoryStore.Create(ctx, p.ID, copyProfile(p))
}

func (s *InMemoryProfileStore) Get(ctx context.Context, id string) (*profile.Profile, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, profile.ErrProfileNotFound
	}
	if p.Status == types.StatusDeleted || p.TenantID != types.GetTenantID(ctx) {
		return nil, profile.ErrProfileNotFound
	}
	return copyProfile(p), nil
}

func (s *InMemoryProfileStore) GetByOwner(ctx context.Context) (*profile.Profile, error) {
	filterFn := func(ctx context.Context, p *profile.Profile, _ interface{}) bool {
		return p.Status != types.StatusDeleted && p.TenantID == types.GetTenantID(ctx)
	}

	profiles, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, profile.ErrProfileNotFound
	}
	return copyProfile(profiles[0]), nil
}

func (s *InMemoryProfileStore) Update(ctx context.Context, p *profile.Profile) error {
	if _, err := s.Get(ctx, p.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, p.ID, copyProfile(p))
}

func (s *InMemoryProfileStore) UpdatePlan(ctx context.Context, id string, plan types.Plan) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	p.Plan = plan
	return s.InMemoryStore.Update(ctx, id, p)
}

func (s *InMemoryProfileStore) IncrementInvoiceCount(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	p.InvoiceCreationCount++
	return s.InMemoryStore.Update(ctx, id, p)
}
