package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/factuurlijk/factuurlijk/internal/domain/profile"
	"github.com/factuurlijk/factuurlijk/internal/logger"
	"github.com/factuurlijk/factuurlijk/internal/postgres"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

type profileRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewProfileRepository(db postgres.IClient, logger *logger.Logger) profile.Repository {
	return &profileRepository{db: db, logger: logger}
}

const profileColumns = `
	id, tenant_id, company_name, email, address, city, postal_code, iban,
	kvk_number, btw_number, logo_url, template_style, template_customizations,
	invoice_footer_text, plan, invoice_creation_count,
	created_at, updated_at, created_by, updated_by, status
`

func (r *profileRepository) Create(ctx context.Context, p *profile.Profile) error {
	query := `
	INSERT INTO profiles (` + profileColumns + `
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		$17, $18, $19, $20, $21
	)
	`

	customizationsJSON, err := json.Marshal(p.Customizations)
	if err != nil {
		return fmt.Errorf("marshal customizations: %w", err)
	}

	_, err = r.db.Querier(ctx).ExecContext(ctx, query,
		p.ID,
		p.TenantID,
		p.CompanyName,
		p.Email,
		p.Address,
		p.City,
		p.PostalCode,
		p.IBAN,
		p.KvKNumber,
		p.VATNumber,
		p.LogoURL,
		p.TemplateStyle,
		customizationsJSON,
		p.InvoiceFooterText,
		p.Plan,
		p.InvoiceCreationCount,
		p.CreatedAt,
		p.UpdatedAt,
		p.CreatedBy,
		p.UpdatedBy,
		p.Status,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	return nil
}

func (r *profileRepository) Get(ctx context.Context, id string) (*profile.Profile, error) {
	query := `
	SELECT ` + profileColumns + `
	FROM profiles
	WHERE id = $1 AND tenant_id = $2 AND status = $3
	`

	return r.scanOne(r.db.Querier(ctx).QueryRowxContext(ctx, query,
		id, types.GetTenantID(ctx), types.StatusPublished))
}

func (r *profileRepository) GetByOwner(ctx context.Context) (*profile.Profile, error) {
	query := `
	SELECT ` + profileColumns + `
	FROM profiles
	WHERE tenant_id = $1 AND status = $2
	LIMIT 1
	`

	return r.scanOne(r.db.Querier(ctx).QueryRowxContext(ctx, query,
		types.GetTenantID(ctx), types.StatusPublished))
}

func (r *profileRepository) scanOne(row interface{ Scan(...interface{}) error }) (*profile.Profile, error) {
	var p profile.Profile
	var customizationsJSON []byte

	err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.CompanyName,
		&p.Email,
		&p.Address,
		&p.City,
		&p.PostalCode,
		&p.IBAN,
		&p.KvKNumber,
		&p.VATNumber,
		&p.LogoURL,
		&p.TemplateStyle,
		&customizationsJSON,
		&p.InvoiceFooterText,
		&p.Plan,
		&p.InvoiceCreationCount,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.CreatedBy,
		&p.UpdatedBy,
		&p.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if len(customizationsJSON) > 0 && string(customizationsJSON) != "null" {
		if err := json.Unmarshal(customizationsJSON, &p.Customizations); err != nil {
			return nil, fmt.Errorf("unmarshal customizations: %w", err)
		}
	}

	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *profile.Profile) error {
	query := `
	UPDATE profiles SET
		company_name = $3, email = $4, address = $5, city = $6,
		postal_code = $7, iban = $8, kvk_number = $9, btw_number = $10,
		logo_url = $11, template_style = $12, template_customizations = $13,
		invoice_footer_text = $14, updated_at = $15, updated_by = $16
	WHERE id = $1 AND tenant_id = $2 AND status = $17
	`

	customizationsJSON, err := json.Marshal(p.Customizations)
	if err != nil {
		return fmt.Errorf("marshal customizations: %w", err)
	}

	result, err := r.db.Querier(ctx).ExecContext(ctx, query,
		p.ID,
		p.TenantID,
		p.CompanyName,
		p.Email,
		p.Address,
		p.City,
		p.PostalCode,
		p.IBAN,
		p.KvKNumber,
		p.VATNumber,
		p.LogoURL,
		p.TemplateStyle,
		customizationsJSON,
		p.InvoiceFooterText,
		p.UpdatedAt,
		p.UpdatedBy,
		types.StatusPublished,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return profile.ErrProfileNotFound
	}

	return nil
}

func (r *profileRepository) UpdatePlan(ctx context.Context, id string, plan types.Plan) error {
	query := `
	UPDATE profiles SET plan = $3, updated_at = NOW()
	WHERE id = $1 AND tenant_id = $2 AND status = $4
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query,
		id, types.GetTenantID(ctx), plan, types.StatusPublished)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return profile.ErrProfileNotFound
	}

	return nil
}

func (r *profileRepository) IncrementInvoiceCount(ctx context.Context, id string) error {
	query := `
	UPDATE profiles SET invoice_creation_count = invoice_creation_count + 1, updated_at = NOW()
	WHERE id = $1 AND tenant_id = $2 AND status = $3
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query,
		id, types.GetTenantID(ctx), types.StatusPublished)
	if err != nil {
		return fmt.Errorf("increment invoice count: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return profile.ErrProfileNotFound
	}

	return nil
}
