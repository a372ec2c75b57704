package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/factuurlijk/factuurlijk/internal/domain/payment"
	"github.com/factuurlijk/factuurlijk/internal/logger"
	"github.com/factuurlijk/factuurlijk/internal/postgres"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

type paymentRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewPaymentRepository(db postgres.IClient, logger *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

const claimColumns = `
	id, tenant_id, reference, owner_id, source, claim_status, expires_at,
	created_at, updated_at, created_by, updated_by, status
`

func (r *paymentRepository) Create(ctx context.Context, c *payment.Claim) error {
	query := `
	INSERT INTO payment_claims (` + claimColumns + `
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
	)
	`

	_, err := r.db.Querier(ctx).ExecContext(ctx, query,
		c.ID,
		c.TenantID,
		c.Reference,
		c.OwnerID,
		c.Source,
		c.ClaimStatus,
		c.ExpiresAt,
		c.CreatedAt,
		c.UpdatedAt,
		c.CreatedBy,
		c.UpdatedBy,
		c.Status,
	)
	if err != nil {
		return fmt.Errorf("insert payment claim: %w", err)
	}

	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Claim, error) {
	query := `
	SELECT ` + claimColumns + `
	FROM payment_claims
	WHERE id = $1 AND tenant_id = $2 AND status = $3
	`

	return r.scanOne(r.db.Querier(ctx).QueryRowxContext(ctx, query,
		id, types.GetTenantID(ctx), types.StatusPublished))
}

func (r *paymentRepository) GetByReference(ctx context.Context, reference string) (*payment.Claim, error) {
	query := `
	SELECT ` + claimColumns + `
	FROM payment_claims
	WHERE reference = $1 AND status = $2
	`

	return r.scanOne(r.db.Querier(ctx).QueryRowxContext(ctx, query,
		reference, types.StatusPublished))
}

func (r *paymentRepository) scanOne(row interface{ Scan(...interface{}) error }) (*payment.Claim, error) {
	var c payment.Claim

	err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.Reference,
		&c.OwnerID,
		&c.Source,
		&c.ClaimStatus,
		&c.ExpiresAt,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.CreatedBy,
		&c.UpdatedBy,
		&c.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, payment.ErrClaimNotFound
		}
		return nil, fmt.Errorf("get payment claim: %w", err)
	}

	return &c, nil
}

func (r *paymentRepository) Update(ctx context.Context, c *payment.Claim) error {
	query := `
	UPDATE payment_claims SET
		claim_status = $3, expires_at = $4, updated_at = $5, updated_by = $6
	WHERE id = $1 AND tenant_id = $2 AND status = $7
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query,
		c.ID,
		c.TenantID,
		c.ClaimStatus,
		c.ExpiresAt,
		c.UpdatedAt,
		c.UpdatedBy,
		types.StatusPublished,
	)
	if err != nil {
		return fmt.Errorf("update payment claim: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return payment.ErrClaimNotFound
	}

	return nil
}
