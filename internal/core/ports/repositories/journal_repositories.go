package repositories

import (
	"context"
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
)

// JournalRepositoryFacade defines persistence for the append-only posted
// entry log. The log is the single source of truth; cached account balances
// are derived and updated in the same atomic unit of work as the entry.
type JournalRepositoryFacade interface {
	// SaveEntry persists entry and its lines and applies balanceChanges to
	// the cached account balances in one database transaction, locking the
	// period row and the affected account rows. No partial state survives a
	// failure.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]int64) error

	// SaveReversal persists the reversal entry and flips the original to
	// REVERSED atomically. A concurrent or repeated reversal of the same
	// entry fails with ErrAlreadyReversed.
	SaveReversal(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, balanceChanges map[string]int64) error

	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindEntryByIdempotencyKey(ctx context.Context, entityID string, key string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
	ListEntries(ctx context.Context, entityID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error)
	ListLinesByAccount(ctx context.Context, entityID string, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error)

	// CountDraftEntries returns the number of DRAFT entries in a period;
	// period close requires zero.
	CountDraftEntries(ctx context.Context, periodID string) (int, error)

	// ListCashLines returns posted, signed cash-account lines for bank
	// reconciliation, oldest first.
	ListCashLines(ctx context.Context, entityID string, ledgerAccountID string, from time.Time, to time.Time, onlyUncleared bool) ([]domain.CashLine, error)

	// ControlBalanceAsOf returns the signed control-account balance derived
	// from the posted log as of the given date.
	ControlBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (int64, error)
}
