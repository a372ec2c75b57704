package service

import (
	"context"
	"time"

	"github.com/factuurlijk/factuurlijk/internal/api/dto"
	"github.com/factuurlijk/factuurlijk/internal/domain/payment"
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

// PaymentService manages the plan upgrade flow. A claim is persisted before
// the user is sent to the payment provider; the provider's webhook confirms
// or rejects it by reference. Only a confirmed claim upgrades the plan.
type PaymentService interface {
	CreateClaim(ctx context.Context, req *dto.CreatePaymentClaimRequest) (*dto.PaymentClaimResponse, error)
	GetClaim(ctx context.Context, id string) (*dto.PaymentClaimResponse, error)
	ConfirmClaim(ctx context.Context, req *dto.ConfirmPaymentClaimRequest) (*dto.PaymentClaimResponse, error)
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		ServiceParams: params,
	}
}

func (s *paymentService) CreateClaim(ctx context.Context, req *dto.CreatePaymentClaimRequest) (*dto.PaymentClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prof, err := s.ProfileRepo.GetByOwner(ctx)
	if err != nil {
		return nil, err
	}

	if prof.Plan == types.PlanPro {
		return nil, ierr.NewError("profile is already on the pro plan").
			WithHint("This profile already has an active pro plan").
			Mark(ierr.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	claim := &payment.Claim{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT_CLAIM),
		Reference:   types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_PAYMENT_CLAIM),
		OwnerID:     prof.ID,
		Source:      req.Source,
		ClaimStatus: payment.ClaimStatusPending,
		ExpiresAt:   now.Add(payment.ClaimTTL),
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}

	if err := claim.Validate(); err != nil {
		return nil, err
	}

	if err := s.PaymentRepo.Create(ctx, claim); err != nil {
		return nil, err
	}

	s.Logger.Infow("created payment claim",
		"claim_id", claim.ID, "reference", claim.Reference, "source", claim.Source)

	return &dto.PaymentClaimResponse{Claim: claim}, nil
}

func (s *paymentService) GetClaim(ctx context.Context, id string) (*dto.PaymentClaimResponse, error) {
	claim, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.expireIfNeeded(ctx, claim); err != nil {
		return nil, err
	}

	return &dto.PaymentClaimResponse{Claim: claim}, nil
}

// ConfirmClaim settles a pending claim from the provider webhook. Approval
// upgrades the owning profile to the pro plan in the same transaction.
func (s *paymentService) ConfirmClaim(ctx context.Context, req *dto.ConfirmPaymentClaimRequest) (*dto.PaymentClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claim, err := s.PaymentRepo.GetByReference(ctx, req.Reference)
	if err != nil {
		return nil, err
	}

	// The webhook arrives without tenant context; adopt the claim's.
	ctx = types.SetTenantID(ctx, claim.TenantID)

	if err := s.expireIfNeeded(ctx, claim); err != nil {
		return nil, err
	}

	if claim.ClaimStatus != payment.ClaimStatusPending {
		return nil, ierr.NewError("claim is not pending").
			WithHintf("This payment claim is already %s", claim.ClaimStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	claim.UpdatedAt = now

	if !req.Approved {
		claim.ClaimStatus = payment.ClaimStatusRejected
		if err := s.PaymentRepo.Update(ctx, claim); err != nil {
			return nil, err
		}
		return &dto.PaymentClaimResponse{Claim: claim}, nil
	}

	claim.ClaimStatus = payment.ClaimStatusConfirmed

	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.PaymentRepo.Update(txCtx, claim); err != nil {
			return err
		}
		return s.ProfileRepo.UpdatePlan(txCtx, claim.OwnerID, types.PlanPro)
	}); err != nil {
		return nil, err
	}

	s.Logger.Infow("confirmed payment claim",
		"claim_id", claim.ID, "owner_id", claim.OwnerID)

	return &dto.PaymentClaimResponse{Claim: claim}, nil
}

// expireIfNeeded settles a pending claim whose TTL ran out.
func (s *paymentService) expireIfNeeded(ctx context.Context, claim *payment.Claim) error {
	if claim.ClaimStatus != payment.ClaimStatusPending || !claim.IsExpired(time.Now().UTC()) {
		return nil
	}

	claim.ClaimStatus = payment.ClaimStatusExpired
	claim.UpdatedAt = time.Now().UTC()
	return s.PaymentRepo.Update(ctx, claim)
}
