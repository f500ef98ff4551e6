package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/halverson/farmbooks/internal/apperrors"
	"github.com/halverson/farmbooks/internal/core/domain"
	portsrepo "github.com/halverson/farmbooks/internal/core/ports/repositories"
	"github.com/halverson/farmbooks/internal/models"
	"github.com/halverson/farmbooks/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const billColumns = `bill_id, entity_id, vendor_id, amount_cents, paid_cents, due_date, status, journal_id, memo, created_at, created_by, last_updated_at, last_updated_by`
const invoiceColumns = `invoice_id, entity_id, customer_id, amount_cents, paid_cents, due_date, status, journal_id, memo, created_at, created_by, last_updated_at, last_updated_by`

type PgxPayableRepository struct {
	BaseRepository
}

// newPgxPayableRepository creates a new repository for AP/AR documents.
func newPgxPayableRepository(pool *pgxpool.Pool) portsrepo.PayableRepositoryFacade {
	return &PgxPayableRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PayableRepositoryFacade = (*PgxPayableRepository)(nil)

// SaveBill inserts a new bill row.
func (r *PgxPayableRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	m := mapping.ToModelBill(bill)
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BillID, m.EntityID, m.VendorID, m.AmountCents, m.PaidCents, m.DueDate,
		m.Status, m.JournalID, m.Memo, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert bill "+m.BillID, err)
	}
	return nil
}

// FindBillByID retrieves a bill by its ID.
func (r *PgxPayableRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE bill_id = $1;`
	var m models.Bill
	err := r.Pool.QueryRow(ctx, query, billID).Scan(
		&m.BillID, &m.EntityID, &m.VendorID, &m.AmountCents, &m.PaidCents, &m.DueDate,
		&m.Status, &m.JournalID, &m.Memo, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bill "+billID, err)
	}
	bill := mapping.ToDomainBill(m)
	return &bill, nil
}

// ListOpenBills returns not-fully-paid bills recorded on or before asOf,
// oldest first.
func (r *PgxPayableRepository) ListOpenBills(ctx context.Context, entityID string, asOf time.Time) ([]domain.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE entity_id = $1 AND status != 'PAID' AND created_at <= $2
		ORDER BY due_date, bill_id;
	`
	rows, err := r.Pool.Query(ctx, query, entityID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open bills for entity "+entityID, err)
	}
	defer rows.Close()

	bills := []domain.Bill{}
	for rows.Next() {
		var m models.Bill
		if err := rows.Scan(
			&m.BillID, &m.EntityID, &m.VendorID, &m.AmountCents, &m.PaidCents, &m.DueDate,
			&m.Status, &m.JournalID, &m.Memo, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bill row", err)
		}
		bills = append(bills, mapping.ToDomainBill(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bill rows", err)
	}
	return bills, nil
}

// ApplyBillPayment increments paid_cents and rolls the status forward. The
// guard in the WHERE clause rejects overpayment at the database even if the
// service-level check raced.
func (r *PgxPayableRepository) ApplyBillPayment(ctx context.Context, billID string, amountCents int64, userID string, at time.Time) error {
	query := `
		UPDATE bills
		SET paid_cents = paid_cents + $2,
		    status = CASE WHEN paid_cents + $2 >= amount_cents THEN 'PAID' ELSE 'PARTIAL' END,
		    last_updated_at = $3, last_updated_by = $4
		WHERE bill_id = $1 AND paid_cents + $2 <= amount_cents;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, billID, amountCents, at, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply payment to bill "+billID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrValidation
	}
	return nil
}

// SaveInvoice inserts a new invoice row.
func (r *PgxPayableRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID, m.EntityID, m.CustomerID, m.AmountCents, m.PaidCents, m.DueDate,
		m.Status, m.JournalID, m.Memo, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxPayableRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	var m models.Invoice
	err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(
		&m.InvoiceID, &m.EntityID, &m.CustomerID, &m.AmountCents, &m.PaidCents, &m.DueDate,
		&m.Status, &m.JournalID, &m.Memo, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice "+invoiceID, err)
	}
	invoice := mapping.ToDomainInvoice(m)
	return &invoice, nil
}

// ListOpenInvoices returns not-fully-paid invoices recorded on or before
// asOf, oldest first.
func (r *PgxPayableRepository) ListOpenInvoices(ctx context.Context, entityID string, asOf time.Time) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE entity_id = $1 AND status != 'PAID' AND created_at <= $2
		ORDER BY due_date, invoice_id;
	`
	rows, err := r.Pool.Query(ctx, query, entityID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open invoices for entity "+entityID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		var m models.Invoice
		if err := rows.Scan(
			&m.InvoiceID, &m.EntityID, &m.CustomerID, &m.AmountCents, &m.PaidCents, &m.DueDate,
			&m.Status, &m.JournalID, &m.Memo, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}
	return invoices, nil
}

// ApplyInvoicePayment increments paid_cents and rolls the status forward.
func (r *PgxPayableRepository) ApplyInvoicePayment(ctx context.Context, invoiceID string, amountCents int64, userID string, at time.Time) error {
	query := `
		UPDATE invoices
		SET paid_cents = paid_cents + $2,
		    status = CASE WHEN paid_cents + $2 >= amount_cents THEN 'PAID' ELSE 'PARTIAL' END,
		    last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1 AND paid_cents + $2 <= amount_cents;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, invoiceID, amountCents, at, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply payment to invoice "+invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrValidation
	}
	return nil
}
