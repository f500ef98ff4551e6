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

const bankAccountColumns = `bank_account_id, entity_id, ledger_account_id, name, routing_number, account_number, next_check_number, created_at, created_by, last_updated_at, last_updated_by`
const statementColumns = `statement_id, entity_id, bank_account_id, period_id, beginning_cents, ending_cents, reconciled, reconciled_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxBankRepository struct {
	BaseRepository
}

// newPgxBankRepository creates a new repository for bank reconciliation data.
func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

// FindBankAccountByID retrieves a bank account by its ID.
func (r *PgxBankRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`
	var m models.BankAccount
	err := r.Pool.QueryRow(ctx, query, bankAccountID).Scan(
		&m.BankAccountID, &m.EntityID, &m.LedgerAccountID, &m.Name, &m.RoutingNumber,
		&m.AccountNumber, &m.NextCheckNumber, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account "+bankAccountID, err)
	}
	account := mapping.ToDomainBankAccount(m)
	return &account, nil
}

// SaveBankAccount inserts a new bank account row.
func (r *PgxBankRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BankAccountID, m.EntityID, m.LedgerAccountID, m.Name, m.RoutingNumber,
		m.AccountNumber, m.NextCheckNumber, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert bank account "+m.BankAccountID, err)
	}
	return nil
}

// SaveStatement persists the statement header and its transactions in one
// transaction.
func (r *PgxBankRepository) SaveStatement(ctx context.Context, statement domain.BankStatement, txns []domain.BankTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBankStatement(statement)
	headerQuery := `
		INSERT INTO bank_statements (` + statementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.StatementID, m.EntityID, m.BankAccountID, m.PeriodID, m.BeginningCents, m.EndingCents,
		m.Reconciled, m.ReconciledAt, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert statement "+m.StatementID, err)
	}

	batch := &pgx.Batch{}
	txnQuery := `
		INSERT INTO bank_transactions (bank_txn_id, statement_id, txn_date, amount_cents, description, status, matched_line_ids, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, t := range txns {
		mt := mapping.ToModelBankTransaction(t)
		batch.Queue(txnQuery,
			mt.BankTxnID, mt.StatementID, mt.TxnDate, mt.AmountCents, mt.Description,
			mt.Status, mt.MatchedLineIDs, mt.CreatedAt, mt.CreatedBy, mt.LastUpdatedAt, mt.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute transaction batch for statement "+m.StatementID, err)
	}
	return r.Commit(ctx, tx)
}

// FindStatementByID retrieves a statement by its ID.
func (r *PgxBankRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, error) {
	query := `SELECT ` + statementColumns + ` FROM bank_statements WHERE statement_id = $1;`
	var m models.BankStatement
	err := r.Pool.QueryRow(ctx, query, statementID).Scan(
		&m.StatementID, &m.EntityID, &m.BankAccountID, &m.PeriodID, &m.BeginningCents, &m.EndingCents,
		&m.Reconciled, &m.ReconciledAt, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find statement "+statementID, err)
	}
	statement := mapping.ToDomainBankStatement(m)
	return &statement, nil
}

// ListTransactionsByStatement retrieves every transaction of a statement,
// oldest first.
func (r *PgxBankRepository) ListTransactionsByStatement(ctx context.Context, statementID string) ([]domain.BankTransaction, error) {
	query := `
		SELECT bank_txn_id, statement_id, txn_date, amount_cents, description, status, matched_line_ids,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM bank_transactions
		WHERE statement_id = $1
		ORDER BY txn_date, bank_txn_id;
	`
	rows, err := r.Pool.Query(ctx, query, statementID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for statement "+statementID, err)
	}
	defer rows.Close()

	txns := []domain.BankTransaction{}
	for rows.Next() {
		var m models.BankTransaction
		if err := rows.Scan(
			&m.BankTxnID, &m.StatementID, &m.TxnDate, &m.AmountCents, &m.Description, &m.Status, &m.MatchedLineIDs,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row for statement "+statementID, err)
		}
		txns = append(txns, mapping.ToDomainBankTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows for statement "+statementID, err)
	}
	return txns, nil
}

// UpdateTransactionMatches persists matcher outcomes for a statement's
// transactions in one transaction.
func (r *PgxBankRepository) UpdateTransactionMatches(ctx context.Context, statementID string, txns []domain.BankTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		UPDATE bank_transactions
		SET status = $3, matched_line_ids = $4, last_updated_at = $5, last_updated_by = $6
		WHERE bank_txn_id = $1 AND statement_id = $2;
	`
	for _, t := range txns {
		mt := mapping.ToModelBankTransaction(t)
		batch.Queue(query, mt.BankTxnID, statementID, mt.Status, mt.MatchedLineIDs, mt.LastUpdatedAt, mt.LastUpdatedBy)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to persist match results for statement "+statementID, err)
	}
	return r.Commit(ctx, tx)
}

// FinishReconciliation marks the statement reconciled and flips the cleared
// flag on the matched ledger lines, all in one transaction.
func (r *PgxBankRepository) FinishReconciliation(ctx context.Context, statementID string, reconciledAt time.Time, clearedLineIDs []string, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		UPDATE bank_statements
		SET reconciled = TRUE, reconciled_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE statement_id = $1 AND reconciled = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, headerQuery, statementID, reconciledAt, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark statement "+statementID+" reconciled", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if len(clearedLineIDs) > 0 {
		lineQuery := `
			UPDATE journal_lines
			SET cleared = TRUE, last_updated_at = $2, last_updated_by = $3
			WHERE line_id = ANY($1);
		`
		lineTag, err := tx.Exec(ctx, lineQuery, clearedLineIDs, reconciledAt, userID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to clear ledger lines for statement "+statementID, err)
		}
		if lineTag.RowsAffected() != int64(len(clearedLineIDs)) {
			return apperrors.ErrNotFound
		}
	}
	return r.Commit(ctx, tx)
}
