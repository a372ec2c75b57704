package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/factuurlijk/factuurlijk/internal/domain/invoice"
	"github.com/factuurlijk/factuurlijk/internal/logger"
	"github.com/factuurlijk/factuurlijk/internal/postgres"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

type invoiceRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewInvoiceRepository(db postgres.IClient, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

const invoiceColumns = `
	id, tenant_id, invoice_number, invoice_date, due_date, invoice_status,
	vat_percentage, vat_included, lines, customer, pdf_object_key,
	created_at, updated_at, created_by, updated_by, status
`

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	query := `
	INSERT INTO invoices (` + invoiceColumns + `
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
	)
	`

	linesJSON, err := json.Marshal(inv.Lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}

	customerJSON, err := json.Marshal(inv.Customer)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}

	_, err = r.db.Querier(ctx).ExecContext(ctx, query,
		inv.ID,
		inv.TenantID,
		inv.InvoiceNumber,
		inv.InvoiceDate,
		inv.DueDate,
		inv.InvoiceStatus,
		inv.VATPercentage,
		inv.VATIncluded,
		linesJSON,
		customerJSON,
		inv.PdfObjectKey,
		inv.CreatedAt,
		inv.UpdatedAt,
		inv.CreatedBy,
		inv.UpdatedBy,
		inv.Status,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	query := `
	SELECT ` + invoiceColumns + `
	FROM invoices
	WHERE id = $1 AND tenant_id = $2 AND status = $3
	`

	row := r.db.Querier(ctx).QueryRowxContext(ctx, query,
		id, types.GetTenantID(ctx), types.StatusPublished)

	inv, err := scanInvoice(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, invoice.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	return inv, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	query := `
	UPDATE invoices SET
		invoice_number = $3,
		invoice_date = $4,
		due_date = $5,
		invoice_status = $6,
		vat_percentage = $7,
		vat_included = $8,
		lines = $9,
		customer = $10,
		pdf_object_key = $11,
		updated_at = $12,
		updated_by = $13
	WHERE id = $1 AND tenant_id = $2 AND status = $14
	`

	linesJSON, err := json.Marshal(inv.Lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}

	customerJSON, err := json.Marshal(inv.Customer)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}

	result, err := r.db.Querier(ctx).ExecContext(ctx, query,
		inv.ID,
		inv.TenantID,
		inv.InvoiceNumber,
		inv.InvoiceDate,
		inv.DueDate,
		inv.InvoiceStatus,
		inv.VATPercentage,
		inv.VATIncluded,
		linesJSON,
		customerJSON,
		inv.PdfObjectKey,
		inv.UpdatedAt,
		inv.UpdatedBy,
		types.StatusPublished,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return invoice.ErrInvoiceNotFound
	}

	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	return r.DeleteMany(ctx, []string{id})
}

func (r *invoiceRepository) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
	UPDATE invoices SET status = $1, updated_at = NOW()
	WHERE id = ANY($2) AND tenant_id = $3 AND status = $4
	`

	_, err := r.db.Querier(ctx).ExecContext(ctx, query,
		types.StatusDeleted, pq.Array(ids), types.GetTenantID(ctx), types.StatusPublished)
	if err != nil {
		return fmt.Errorf("delete invoices: %w", err)
	}

	return nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	query, args := buildListQuery("SELECT "+invoiceColumns+" FROM invoices", ctx, filter, true)

	rows, err := r.db.Querier(ctx).QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	query, args := buildListQuery("SELECT COUNT(*) FROM invoices", ctx, filter, false)

	var count int
	if err := r.db.Querier(ctx).QueryRowxContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}

	return count, nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, ids []string, status types.InvoiceStatus) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
	UPDATE invoices SET invoice_status = $1, updated_at = NOW()
	WHERE id = ANY($2) AND tenant_id = $3 AND status = $4
	`

	_, err := r.db.Querier(ctx).ExecContext(ctx, query,
		status, pq.Array(ids), types.GetTenantID(ctx), types.StatusPublished)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}

	return nil
}

// buildListQuery applies the tenant scope, search and status filters, and
// pagination. Ordering on the computed total and locale-aware text ordering
// happen in the service layer, so only invoice_date is ordered here.
func buildListQuery(selectClause string, ctx context.Context, filter *types.InvoiceFilter, paginate bool) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(selectClause)

	args := []interface{}{types.GetTenantID(ctx), types.StatusPublished}
	sb.WriteString(" WHERE tenant_id = $1 AND status = $2")

	if filter != nil {
		if filter.Search != "" {
			args = append(args, "%"+filter.Search+"%")
			n := len(args)
			sb.WriteString(fmt.Sprintf(
				" AND (invoice_number ILIKE $%d OR customer->>'name' ILIKE $%d)", n, n))
		}
		if filter.InvoiceStatus != nil {
			args = append(args, *filter.InvoiceStatus)
			sb.WriteString(fmt.Sprintf(" AND invoice_status = $%d", len(args)))
		}
	}

	if paginate {
		order := "DESC"
		if filter != nil && filter.GetOrder() == types.OrderAsc {
			order = "ASC"
		}
		sb.WriteString(" ORDER BY invoice_date " + order + ", id " + order)

		if filter != nil && !filter.IsUnlimited() {
			args = append(args, filter.GetLimit())
			sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
			args = append(args, filter.GetOffset())
			sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
		}
	}

	return sb.String(), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvoice(row rowScanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	var linesJSON, customerJSON []byte

	err := row.Scan(
		&inv.ID,
		&inv.TenantID,
		&inv.InvoiceNumber,
		&inv.InvoiceDate,
		&inv.DueDate,
		&inv.InvoiceStatus,
		&inv.VATPercentage,
		&inv.VATIncluded,
		&linesJSON,
		&customerJSON,
		&inv.PdfObjectKey,
		&inv.CreatedAt,
		&inv.UpdatedAt,
		&inv.CreatedBy,
		&inv.UpdatedBy,
		&inv.Status,
	)
	if err != nil {
		return nil, err
	}

	if len(linesJSON) > 0 {
		if err := json.Unmarshal(linesJSON, &inv.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal lines: %w", err)
		}
	}
	if len(customerJSON) > 0 {
		if err := json.Unmarshal(customerJSON, &inv.Customer); err != nil {
			return nil, fmt.Errorf("unmarshal customer: %w", err)
		}
	}

	return &inv, nil
}
