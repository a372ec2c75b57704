package profile

import (
	"context"
	"errors"

	"github.com/factuurlijk/factuurlijk/internal/types"
)

// ErrProfileNotFound is returned when a profile is not found
var ErrProfileNotFound = errors.New("profile not found")

// Repository defines the interface for profile persistence operations
type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	Get(ctx context.Context, id string) (*Profile, error)
	// GetByOwner returns the single profile of the current tenant
	GetByOwner(ctx context.Context) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
	// UpdatePlan mutates only the plan field; used by the payment authority
	UpdatePlan(ctx context.Context, id string, plan types.Plan) error
	// IncrementInvoiceCount bumps the lifetime invoice creation counter
	IncrementInvoiceCount(ctx context.Context, id string) error
}
