package repositories

import (
	"context"
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for the chart of
// accounts.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, entityID string, code string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	FindControlAccount(ctx context.Context, entityID string, control domain.ControlType) (*domain.Account, error)
	ListAccounts(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.Account, *string, error)

	// HasChildren reports whether any account references accountID as parent.
	HasChildren(ctx context.Context, accountID string) (bool, error)
	// HasPostingsInOpenPeriod reports whether any posted line references the
	// account with an entry date inside an OPEN period.
	HasPostingsInOpenPeriod(ctx context.Context, accountID string) (bool, error)

	DeactivateAccount(ctx context.Context, accountID string, userID string, at time.Time) error

	// RebuildBalances re-derives every cached account balance for the entity
	// by replaying the posted-entry log.
	RebuildBalances(ctx context.Context, entityID string) error
}
