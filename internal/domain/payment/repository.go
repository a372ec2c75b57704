package payment

import (
	"context"
	"errors"
)

// ErrClaimNotFound is returned when a payment claim is not found
var ErrClaimNotFound = errors.New("payment claim not found")

// Repository defines the interface for payment claim persistence
type Repository interface {
	Create(ctx context.Context, claim *Claim) error
	Get(ctx context.Context, id string) (*Claim, error)
	GetByReference(ctx context.Context, reference string) (*Claim, error)
	Update(ctx context.Context, claim *Claim) error
}
