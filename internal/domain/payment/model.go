package payment

import (
	"time"

	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// ClaimTTL is how long a pending payment claim stays confirmable.
const ClaimTTL = 24 * time.Hour

// ClaimStatus tracks the lifecycle of a pending payment claim.
type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "pending"
	ClaimStatusConfirmed ClaimStatus = "confirmed"
	ClaimStatusRejected  ClaimStatus = "rejected"
	ClaimStatusExpired   ClaimStatus = "expired"
)

// Claim is an explicit pending-payment record. It replaces ambient browser
// state for carrying payment intent across the provider redirect: the claim
// is persisted before the redirect and confirmed by the webhook afterwards.
type Claim struct {
	ID          string      `json:"id"`
	Reference   string      `json:"reference"` // short code shared with the payment provider
	OwnerID     string      `json:"owner_id"`  // profile id the upgrade applies to
	Source      string      `json:"source"`    // where the claim was initiated (e.g. "settings", "limit_prompt")
	ClaimStatus ClaimStatus `json:"claim_status"`
	ExpiresAt   time.Time   `json:"expires_at"`
	types.BaseModel
}

func (c *Claim) Validate() error {
	if c.OwnerID == "" {
		return ierr.NewError("claim owner is required").
			WithHint("Payment claim must reference a profile").
			Mark(ierr.ErrValidation)
	}
	if c.Reference == "" {
		return ierr.NewError("claim reference is required").
			WithHint("Payment claim must carry a provider reference").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsExpired reports whether the claim can no longer be confirmed.
func (c *Claim) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
