package types

import (
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/samber/lo"
)

// Plan is the subscription tier of a profile.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// FreePlanInvoiceLimit caps the total number of invoices a free profile may create.
const FreePlanInvoiceLimit = 3

func (p Plan) String() string {
	return string(p)
}

func (p Plan) Validate() error {
	allowed := []Plan{PlanFree, PlanPro}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid plan").
			WithHint("Please provide a valid plan").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
