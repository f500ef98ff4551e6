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

const checkColumns = `check_id, entity_id, bank_account_id, check_number, payee, amount_cents, amount_words, micr_line, disbursement_entry_id, status, created_at, created_by, last_updated_at, last_updated_by`
const batchColumns = `batch_id, entity_id, batch_number, effective_date, company_name, company_id, entry_count, entry_hash, total_debit_cents, total_credit_cents, file_contents, created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for checks and ACH batches.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// NextCheckNumber returns the number the bank account would issue next.
func (r *PgxPaymentRepository) NextCheckNumber(ctx context.Context, bankAccountID string) (int64, error) {
	var next int64
	query := `SELECT next_check_number FROM bank_accounts WHERE bank_account_id = $1;`
	if err := r.Pool.QueryRow(ctx, query, bankAccountID).Scan(&next); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, apperrors.NewAppError(500, "failed to read check sequence for bank account "+bankAccountID, err)
	}
	return next, nil
}

// IssueCheck inserts the check and advances the sequence in one transaction.
// The sequence advance is compare-and-set on the expected number: losing a
// race leaves nothing persisted and fails with ErrDuplicateCheckNumber.
func (r *PgxPaymentRepository) IssueCheck(ctx context.Context, check domain.Check) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	seqQuery := `
		UPDATE bank_accounts
		SET next_check_number = next_check_number + 1, last_updated_at = $3, last_updated_by = $4
		WHERE bank_account_id = $1 AND next_check_number = $2;
	`
	cmdTag, err := tx.Exec(ctx, seqQuery, check.BankAccountID, check.CheckNumber, check.LastUpdatedAt, check.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to advance check sequence for bank account "+check.BankAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDuplicateCheckNumber
	}

	m := mapping.ToModelCheck(check)
	insertQuery := `
		INSERT INTO checks (` + checkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.CheckID, m.EntityID, m.BankAccountID, m.CheckNumber, m.Payee, m.AmountCents,
		m.AmountWords, m.MICRLine, m.DisbursementEntryID, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateCheckNumber
		}
		return apperrors.NewAppError(500, "failed to insert check "+m.CheckID, err)
	}
	return r.Commit(ctx, tx)
}

// FindCheckByID retrieves a check by its ID.
func (r *PgxPaymentRepository) FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks WHERE check_id = $1;`
	var m models.Check
	err := r.Pool.QueryRow(ctx, query, checkID).Scan(
		&m.CheckID, &m.EntityID, &m.BankAccountID, &m.CheckNumber, &m.Payee, &m.AmountCents,
		&m.AmountWords, &m.MICRLine, &m.DisbursementEntryID, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find check "+checkID, err)
	}
	check := mapping.ToDomainCheck(m)
	return &check, nil
}

// ListChecks retrieves every check of a bank account, in number order.
func (r *PgxPaymentRepository) ListChecks(ctx context.Context, bankAccountID string) ([]domain.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks WHERE bank_account_id = $1 ORDER BY check_number;`
	rows, err := r.Pool.Query(ctx, query, bankAccountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query checks for bank account "+bankAccountID, err)
	}
	defer rows.Close()

	checks := []domain.Check{}
	for rows.Next() {
		var m models.Check
		if err := rows.Scan(
			&m.CheckID, &m.EntityID, &m.BankAccountID, &m.CheckNumber, &m.Payee, &m.AmountCents,
			&m.AmountWords, &m.MICRLine, &m.DisbursementEntryID, &m.Status,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan check row", err)
		}
		checks = append(checks, mapping.ToDomainCheck(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating check rows", err)
	}
	return checks, nil
}

// VoidCheck marks a printed check VOIDED. The compare-and-set on status
// means a cleared or already-voided check is left untouched.
func (r *PgxPaymentRepository) VoidCheck(ctx context.Context, checkID string, userID string, at time.Time) error {
	query := `
		UPDATE checks
		SET status = 'VOIDED', last_updated_at = $2, last_updated_by = $3
		WHERE check_id = $1 AND status = 'PRINTED';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, checkID, at, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to void check "+checkID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// NextBatchNumber returns the next ACH batch number for an entity.
func (r *PgxPaymentRepository) NextBatchNumber(ctx context.Context, entityID string) (int64, error) {
	var next int64
	query := `SELECT COALESCE(MAX(batch_number), 0) + 1 FROM ach_batches WHERE entity_id = $1;`
	if err := r.Pool.QueryRow(ctx, query, entityID).Scan(&next); err != nil {
		return 0, apperrors.NewAppError(500, "failed to read batch sequence for entity "+entityID, err)
	}
	return next, nil
}

// SaveBatch persists the batch header, its entries and the emitted file
// bytes in one transaction.
func (r *PgxPaymentRepository) SaveBatch(ctx context.Context, batch domain.ACHBatch) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelACHBatch(batch)
	headerQuery := `
		INSERT INTO ach_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.BatchID, m.EntityID, m.BatchNumber, m.EffectiveDate, m.CompanyName, m.CompanyID,
		m.EntryCount, m.EntryHash, m.TotalDebitCents, m.TotalCreditCents, m.FileContents,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert ACH batch "+m.BatchID, err)
	}

	entryBatch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ach_entries (ach_entry_id, batch_id, trace_number, payee_name, routing_number, account_number, amount_cents, is_debit, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, e := range batch.Entries {
		me := mapping.ToModelACHEntry(e)
		entryBatch.Queue(entryQuery,
			me.ACHEntryID, me.BatchID, me.TraceNumber, me.PayeeName, me.RoutingNumber,
			me.AccountNumber, me.AmountCents, me.IsDebit,
			me.CreatedAt, me.CreatedBy, me.LastUpdatedAt, me.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, entryBatch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute entry batch for ACH batch "+m.BatchID, err)
	}
	return r.Commit(ctx, tx)
}

// FindBatchByID retrieves an ACH batch with its entries.
func (r *PgxPaymentRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.ACHBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM ach_batches WHERE batch_id = $1;`
	var m models.ACHBatch
	err := r.Pool.QueryRow(ctx, query, batchID).Scan(
		&m.BatchID, &m.EntityID, &m.BatchNumber, &m.EffectiveDate, &m.CompanyName, &m.CompanyID,
		&m.EntryCount, &m.EntryHash, &m.TotalDebitCents, &m.TotalCreditCents, &m.FileContents,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ACH batch "+batchID, err)
	}
	batch := mapping.ToDomainACHBatch(m)

	entryQuery := `
		SELECT ach_entry_id, batch_id, trace_number, payee_name, routing_number, account_number, amount_cents, is_debit,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ach_entries
		WHERE batch_id = $1
		ORDER BY trace_number;
	`
	rows, err := r.Pool.Query(ctx, entryQuery, batchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for ACH batch "+batchID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var me models.ACHEntry
		if err := rows.Scan(
			&me.ACHEntryID, &me.BatchID, &me.TraceNumber, &me.PayeeName, &me.RoutingNumber,
			&me.AccountNumber, &me.AmountCents, &me.IsDebit,
			&me.CreatedAt, &me.CreatedBy, &me.LastUpdatedAt, &me.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ACH entry row", err)
		}
		batch.Entries = append(batch.Entries, mapping.ToDomainACHEntry(me))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ACH entry rows", err)
	}
	return &batch, nil
}
