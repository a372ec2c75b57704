package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/factuurlijk/factuurlijk/internal/domain/customer"
	"github.com/factuurlijk/factuurlijk/internal/logger"
	"github.com/factuurlijk/factuurlijk/internal/postgres"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

type customerRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewCustomerRepository(db postgres.IClient, logger *logger.Logger) customer.Repository {
	return &customerRepository{db: db, logger: logger}
}

const customerColumns = `
	id, tenant_id, name, email, address, city, postal_code, country,
	kvk_number, vat_number, phone,
	created_at, updated_at, created_by, updated_by, status
`

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
	INSERT INTO customers (` + customerColumns + `
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
	)
	`

	_, err := r.db.Querier(ctx).ExecContext(ctx, query,
		c.ID,
		c.TenantID,
		c.Name,
		c.Email,
		c.Address,
		c.City,
		c.PostalCode,
		c.Country,
		c.KvKNumber,
		c.VATNumber,
		c.Phone,
		c.CreatedAt,
		c.UpdatedAt,
		c.CreatedBy,
		c.UpdatedBy,
		c.Status,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}

	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	query := `
	SELECT ` + customerColumns + `
	FROM customers
	WHERE id = $1 AND tenant_id = $2 AND status = $3
	`

	var c customer.Customer
	err := r.db.Querier(ctx).QueryRowxContext(ctx, query,
		id, types.GetTenantID(ctx), types.StatusPublished).Scan(
		&c.ID,
		&c.TenantID,
		&c.Name,
		&c.Email,
		&c.Address,
		&c.City,
		&c.PostalCode,
		&c.Country,
		&c.KvKNumber,
		&c.VATNumber,
		&c.Phone,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.CreatedBy,
		&c.UpdatedBy,
		&c.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return &c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	query := `
	UPDATE customers SET
		name = $3, email = $4, address = $5, city = $6, postal_code = $7,
		country = $8, kvk_number = $9, vat_number = $10, phone = $11,
		updated_at = $12, updated_by = $13
	WHERE id = $1 AND tenant_id = $2 AND status = $14
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query,
		c.ID,
		c.TenantID,
		c.Name,
		c.Email,
		c.Address,
		c.City,
		c.PostalCode,
		c.Country,
		c.KvKNumber,
		c.VATNumber,
		c.Phone,
		c.UpdatedAt,
		c.UpdatedBy,
		types.StatusPublished,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return customer.ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	query := `
	UPDATE customers SET status = $1, updated_at = NOW()
	WHERE id = $2 AND tenant_id = $3 AND status = $4
	`

	_, err := r.db.Querier(ctx).ExecContext(ctx, query,
		types.StatusDeleted, id, types.GetTenantID(ctx), types.StatusPublished)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	return nil
}

func (r *customerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	query := `
	SELECT ` + customerColumns + `
	FROM customers
	WHERE tenant_id = $1 AND status = $2
	ORDER BY name ASC
	`

	rows, err := r.db.Querier(ctx).QueryxContext(ctx, query,
		types.GetTenantID(ctx), types.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(
			&c.ID,
			&c.TenantID,
			&c.Name,
			&c.Email,
			&c.Address,
			&c.City,
			&c.PostalCode,
			&c.Country,
			&c.KvKNumber,
			&c.VATNumber,
			&c.Phone,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.CreatedBy,
			&c.UpdatedBy,
			&c.Status,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, &c)
	}

	return customers, rows.Err()
}
