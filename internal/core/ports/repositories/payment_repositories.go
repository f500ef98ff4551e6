package repositories

import (
	"context"
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
)

// PaymentRepositoryFacade defines persistence for checks and ACH batches.
type PaymentRepositoryFacade interface {
	// NextCheckNumber returns the number the bank account would issue next.
	NextCheckNumber(ctx context.Context, bankAccountID string) (int64, error)

	// IssueCheck inserts the check and advances the bank account's sequence
	// in one transaction, with compare-and-set on the expected number. A
	// concurrent issue of the same number fails with ErrDuplicateCheckNumber
	// and persists nothing, leaving the sequence auditable.
	IssueCheck(ctx context.Context, check domain.Check) error

	FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error)
	ListChecks(ctx context.Context, bankAccountID string) ([]domain.Check, error)

	// VoidCheck marks a printed check VOIDED. Its number stays consumed.
	VoidCheck(ctx context.Context, checkID string, userID string, at time.Time) error

	NextBatchNumber(ctx context.Context, entityID string) (int64, error)
	// SaveBatch persists the batch header, its entries and the emitted file
	// bytes as an append-only audit artifact.
	SaveBatch(ctx context.Context, batch domain.ACHBatch) error
	FindBatchByID(ctx context.Context, batchID string) (*domain.ACHBatch, error)
}
