package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/halverson/farmbooks/internal/apperrors"
	"github.com/halverson/farmbooks/internal/core/domain"
	portsrepo "github.com/halverson/farmbooks/internal/core/ports/repositories"
	"github.com/halverson/farmbooks/internal/models"
	"github.com/halverson/farmbooks/internal/utils/mapping"
	"github.com/halverson/farmbooks/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, entity_id, code, name, account_type, normal_side, parent_account_id, control, description, is_active, balance_cents, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.EntityID, m.Code, m.Name, m.AccountType, m.NormalSide,
		m.ParentAccountID, m.Control, m.Description, m.IsActive, m.BalanceCents,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert account "+m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return r.scanOne(ctx, query, accountID)
}

// FindAccountByCode retrieves an account by its ledger code within an entity.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, entityID string, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE entity_id = $1 AND code = $2;`
	return r.scanOne(ctx, query, entityID, code)
}

// FindControlAccount retrieves the entity's single AP or AR control account.
func (r *PgxAccountRepository) FindControlAccount(ctx context.Context, entityID string, control domain.ControlType) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE entity_id = $1 AND control = $2;`
	return r.scanOne(ctx, query, entityID, string(control))
}

// FindAccountsByIDs retrieves a batch of accounts keyed by ID. Missing IDs
// yield ErrNotFound.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	for _, id := range accountIDs {
		if _, ok := result[id]; !ok {
			return nil, apperrors.ErrNotFound
		}
	}
	return result, nil
}

// ListAccounts retrieves a paginated list of accounts for an entity, ordered
// by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.Account, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE entity_id = $1`
	args := []interface{}{entityID}

	if nextToken != nil && *nextToken != "" {
		fields, decodeErr := pagination.DecodeMultiFieldToken(*nextToken)
		if decodeErr != nil || len(fields) < 1 {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND code > $2`
		args = append(args, fields[0])
	}
	query += ` ORDER BY code LIMIT $` + itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query accounts for entity "+entityID, err)
	}
	defer rows.Close()

	modelAccounts := make([]models.Account, 0, fetchLimit)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		modelAccounts = append(modelAccounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	var nextTokenVal *string
	results := modelAccounts
	if len(modelAccounts) > limit {
		last := modelAccounts[limit-1]
		token := pagination.EncodeMultiFieldToken(last.Code)
		nextTokenVal = &token
		results = modelAccounts[:limit]
	}

	accounts := make([]domain.Account, len(results))
	for i, m := range results {
		accounts[i] = mapping.ToDomainAccount(m)
	}
	return accounts, nextTokenVal, nil
}

// HasChildren reports whether any account references accountID as parent.
func (r *PgxAccountRepository) HasChildren(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE parent_account_id = $1);`
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check children of account "+accountID, err)
	}
	return exists, nil
}

// HasPostingsInOpenPeriod reports whether any posted line touches the
// account with an entry date inside an OPEN period.
func (r *PgxAccountRepository) HasPostingsInOpenPeriod(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM journal_lines l
			JOIN journal_entries e ON l.entry_id = e.entry_id
			JOIN fiscal_periods p ON e.period_id = p.period_id
			WHERE l.account_id = $1 AND e.status = 'POSTED' AND p.status = 'OPEN'
		);
	`
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check open-period postings for account "+accountID, err)
	}
	return exists, nil
}

// DeactivateAccount flips is_active off. The account and its history remain.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, at time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, at, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RebuildBalances re-derives every cached balance for the entity from the
// posted log. The log is authoritative; the cache is a convenience.
func (r *PgxAccountRepository) RebuildBalances(ctx context.Context, entityID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE accounts a
		SET balance_cents = COALESCE(s.net, 0)
		FROM (
			SELECT l.account_id,
			       SUM(CASE WHEN a2.normal_side = 'DEBIT'
			                THEN l.debit_cents - l.credit_cents
			                ELSE l.credit_cents - l.debit_cents END) AS net
			FROM journal_lines l
			JOIN journal_entries e ON l.entry_id = e.entry_id
			JOIN accounts a2 ON l.account_id = a2.account_id
			WHERE e.entity_id = $1 AND e.status = 'POSTED'
			GROUP BY l.account_id
		) s
		WHERE a.account_id = s.account_id AND a.entity_id = $1;
	`
	if _, err := tx.Exec(ctx, query, entityID); err != nil {
		return apperrors.NewAppError(500, "failed to rebuild balances for entity "+entityID, err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) scanOne(ctx context.Context, query string, args ...interface{}) (*domain.Account, error) {
	row := r.Pool.QueryRow(ctx, query, args...)
	m, err := scanAccountRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account", err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccountRow(row rowScanner) (models.Account, error) {
	var m models.Account
	var parentID, control sql.NullString
	err := row.Scan(
		&m.AccountID, &m.EntityID, &m.Code, &m.Name, &m.AccountType, &m.NormalSide,
		&parentID, &control, &m.Description, &m.IsActive, &m.BalanceCents,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if parentID.Valid {
		m.ParentAccountID = parentID.String
	}
	if control.Valid {
		m.Control = control.String
	}
	return m, nil
}

func scanAccount(rows pgx.Rows) (models.Account, error) {
	return scanAccountRow(rows)
}
