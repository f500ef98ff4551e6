package pgsql

import (
	"context"
	"time"

	"github.com/halverson/farmbooks/internal/apperrors"
	"github.com/halverson/farmbooks/internal/core/domain"
	portsrepo "github.com/halverson/farmbooks/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new read-only aggregation repository.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// TrialBalanceRows returns per-account debit and credit sums of posted
// entries within a period, ordered by account code.
func (r *PgxReportingRepository) TrialBalanceRows(ctx context.Context, entityID string, periodID string) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit_cents), 0), COALESCE(SUM(l.credit_cents), 0)
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.entity_id = $1 AND e.period_id = $2 AND e.status = 'POSTED'
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, entityID, periodID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance for period "+periodID, err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.Code, &row.AccountName, &row.AccountType, &row.DebitCents, &row.CreditCents); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return result, nil
}

// NetAmountsByType returns per-account net amounts, signed on the normal
// side, for one account type over a date range.
func (r *PgxReportingRepository) NetAmountsByType(ctx context.Context, entityID string, accountType domain.AccountType, from, to time.Time) ([]domain.AccountAmount, error) {
	query := `
		SELECT a.account_id, a.code, a.name,
		       COALESCE(SUM(CASE WHEN a.normal_side = 'DEBIT'
		                         THEN l.debit_cents - l.credit_cents
		                         ELSE l.credit_cents - l.debit_cents END), 0)
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.entity_id = $1 AND a.account_type = $2 AND e.status = 'POSTED'
		  AND e.entry_date >= $3 AND e.entry_date <= $4
		GROUP BY a.account_id, a.code, a.name
		ORDER BY a.code;
	`
	return r.queryAmounts(ctx, query, entityID, string(accountType), from, to)
}

// BalancesByType returns per-account cumulative balances for one account
// type as of a date.
func (r *PgxReportingRepository) BalancesByType(ctx context.Context, entityID string, accountType domain.AccountType, asOf time.Time) ([]domain.AccountAmount, error) {
	query := `
		SELECT a.account_id, a.code, a.name,
		       CASE WHEN a.normal_side = 'DEBIT' THEN COALESCE(s.raw, 0) ELSE -COALESCE(s.raw, 0) END
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, SUM(l.debit_cents - l.credit_cents) AS raw
			FROM journal_lines l
			JOIN journal_entries e ON l.entry_id = e.entry_id
			WHERE e.status = 'POSTED' AND e.entry_date <= $3
			GROUP BY l.account_id
		) s ON s.account_id = a.account_id
		WHERE a.entity_id = $1 AND a.account_type = $2
		ORDER BY a.code;
	`
	return r.queryAmounts(ctx, query, entityID, string(accountType), asOf)
}

// CashBalanceAsOf returns the total balance across bank-linked cash accounts
// as of a date.
func (r *PgxReportingRepository) CashBalanceAsOf(ctx context.Context, entityID string, asOf time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(l.debit_cents - l.credit_cents), 0)
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.entity_id = $1 AND e.status = 'POSTED' AND e.entry_date <= $2
		  AND l.account_id IN (SELECT ledger_account_id FROM bank_accounts WHERE entity_id = $1);
	`
	var balance int64
	if err := r.Pool.QueryRow(ctx, query, entityID, asOf).Scan(&balance); err != nil {
		return 0, apperrors.NewAppError(500, "failed to compute cash balance for entity "+entityID, err)
	}
	return balance, nil
}

func (r *PgxReportingRepository) queryAmounts(ctx context.Context, query string, args ...interface{}) ([]domain.AccountAmount, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account amounts", err)
	}
	defer rows.Close()

	result := []domain.AccountAmount{}
	for rows.Next() {
		var a domain.AccountAmount
		if err := rows.Scan(&a.AccountID, &a.Code, &a.Name, &a.NetCents); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account amount row", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account amount rows", err)
	}
	return result, nil
}
