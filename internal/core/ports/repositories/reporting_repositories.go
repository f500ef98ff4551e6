package repositories

import (
	"context"
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
)

// ReportingRepositoryFacade defines read-only aggregation over the posted
// entry log. Reads run against a consistent snapshot and never mutate.
type ReportingRepositoryFacade interface {
	// TrialBalanceRows returns per-account debit and credit sums of posted
	// entries within the period.
	TrialBalanceRows(ctx context.Context, entityID string, periodID string) ([]domain.TrialBalanceRow, error)

	// NetAmountsByType returns per-account net amounts (signed on the normal
	// side) for one account type over a date range.
	NetAmountsByType(ctx context.Context, entityID string, accountType domain.AccountType, from, to time.Time) ([]domain.AccountAmount, error)

	// BalancesByType returns per-account cumulative balances for one account
	// type as of a date.
	BalancesByType(ctx context.Context, entityID string, accountType domain.AccountType, asOf time.Time) ([]domain.AccountAmount, error)

	// CashBalanceAsOf returns the total balance across cash accounts (asset
	// accounts flagged as bank-linked) as of a date.
	CashBalanceAsOf(ctx context.Context, entityID string, asOf time.Time) (int64, error)
}
