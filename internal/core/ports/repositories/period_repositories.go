package repositories

import (
	"context"
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
)

// PeriodRepositoryFacade defines persistence for fiscal periods.
type PeriodRepositoryFacade interface {
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)
	FindPeriodForDate(ctx context.Context, entityID string, date time.Time) (*domain.FiscalPeriod, error)
	ListPeriods(ctx context.Context, entityID string) ([]domain.FiscalPeriod, error)

	// UpdatePeriodStatus transitions a period from one status to another with
	// compare-and-set semantics: it fails with ErrConflict if the period is
	// no longer in the expected status.
	UpdatePeriodStatus(ctx context.Context, periodID string, from, to domain.PeriodStatus, userID string, at time.Time) error
}
