package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/halverson/farmbooks/internal/apperrors"
	"github.com/halverson/farmbooks/internal/core/domain"
	portsrepo "github.com/halverson/farmbooks/internal/core/ports/repositories"
	portssvc "github.com/halverson/farmbooks/internal/core/ports/services"
	"github.com/halverson/farmbooks/internal/dto"
	"github.com/halverson/farmbooks/internal/middleware"
)

// ControlReconciler is the slice of the subledger service the period close
// needs. Late-bound by the service container to avoid a construction cycle
// with the journal engine.
type ControlReconciler interface {
	ReconcileControl(ctx context.Context, entityID string, control domain.ControlType, asOf time.Time) (*domain.ControlReconciliation, error)
}

// IntegrityChecker is the slice of the reporting service the period close
// needs.
type IntegrityChecker interface {
	CheckPeriodIntegrity(ctx context.Context, entityID string, periodID string) error
}

// PeriodService implements the fiscal period lifecycle:
// OPEN -> CLOSED -> LOCKED, with the single privileged CLOSED -> OPEN reopen.
type PeriodService struct {
	periodRepo  portsrepo.PeriodRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	reconciler  ControlReconciler
	integrity   IntegrityChecker
}

// NewPeriodService creates a new period service. The close-gate
// dependencies are attached afterwards with SetCloseCheckers, since they are
// built on top of the journal engine which itself needs the period service.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) *PeriodService {
	return &PeriodService{periodRepo: periodRepo, journalRepo: journalRepo}
}

var _ portssvc.PeriodSvcFacade = (*PeriodService)(nil)

// SetCloseCheckers attaches the reconciliation and integrity gates used by
// ClosePeriod.
func (s *PeriodService) SetCloseCheckers(reconciler ControlReconciler, integrity IntegrityChecker) {
	s.reconciler = reconciler
	s.integrity = integrity
}

// CreatePeriod creates a new OPEN fiscal period. Overlapping an existing
// period is rejected.
func (s *PeriodService) CreatePeriod(ctx context.Context, entityID string, req dto.CreatePeriodRequest, userID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: period end must be after start", apperrors.ErrValidation)
	}
	for _, probe := range []time.Time{req.StartDate, req.EndDate} {
		existing, err := s.periodRepo.FindPeriodForDate(ctx, entityID, probe)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check period overlap: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: overlaps period %s", apperrors.ErrConflict, existing.Name)
		}
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		EntityID:  entityID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		logger.Error("Failed to save period", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save period: %w", err)
	}
	logger.Info("Fiscal period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

// CreateMonthlyPeriods creates one OPEN period per calendar month of a year,
// named "YYYY-MM". A month that overlaps an existing period fails the call;
// months already created stay, so the call can be re-run after fixing the
// overlap.
func (s *PeriodService) CreateMonthlyPeriods(ctx context.Context, entityID string, year int, userID string) ([]domain.FiscalPeriod, error) {
	if year < 1900 || year > 9999 {
		return nil, fmt.Errorf("%w: year %d out of range", apperrors.ErrValidation, year)
	}

	var created []domain.FiscalPeriod
	for month := time.January; month <= time.December; month++ {
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		period, err := s.CreatePeriod(ctx, entityID, dto.CreatePeriodRequest{
			Name:      start.Format("2006-01"),
			StartDate: start,
			EndDate:   end,
		}, userID)
		if err != nil {
			return nil, fmt.Errorf("month %s: %w", start.Format("2006-01"), err)
		}
		created = append(created, *period)
	}
	return created, nil
}

// GetPeriodByID retrieves a period, scoped to the entity.
func (s *PeriodService) GetPeriodByID(ctx context.Context, entityID string, periodID string) (*domain.FiscalPeriod, error) {
	return s.getScopedPeriod(ctx, entityID, periodID)
}

// GetPeriodForDate resolves the period containing a date. The engine passes
// every posting date through here: there is no ambient "current period".
func (s *PeriodService) GetPeriodForDate(ctx context.Context, entityID string, date time.Time) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, entityID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no fiscal period covers %s", apperrors.ErrNotFound, date.Format("2006-01-02"))
		}
		return nil, err
	}
	return period, nil
}

// ListPeriods returns the entity's periods.
func (s *PeriodService) ListPeriods(ctx context.Context, entityID string) ([]domain.FiscalPeriod, error) {
	return s.periodRepo.ListPeriods(ctx, entityID)
}

// ClosePeriod transitions OPEN -> CLOSED. It requires zero draft entries and
// both control accounts reconciling with zero discrepancy; otherwise it
// fails with ErrUnreconciled listing every mismatched control account. The
// balance-sheet identity is verified as part of the close.
func (s *PeriodService) ClosePeriod(ctx context.Context, entityID string, periodID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.getScopedPeriod(ctx, entityID, periodID)
	if err != nil {
		return err
	}
	if period.Status != domain.PeriodOpen {
		return fmt.Errorf("%w: period %s is %s, expected OPEN", apperrors.ErrConflict, period.Name, period.Status)
	}

	drafts, err := s.journalRepo.CountDraftEntries(ctx, periodID)
	if err != nil {
		return fmt.Errorf("failed to count draft entries: %w", err)
	}
	if drafts > 0 {
		return fmt.Errorf("%w: period %s has %d draft entries", apperrors.ErrConflict, period.Name, drafts)
	}

	if s.reconciler != nil {
		var failed []string
		for _, control := range []domain.ControlType{domain.ControlAccountsPayable, domain.ControlAccountsReceivable} {
			rec, err := s.reconciler.ReconcileControl(ctx, entityID, control, period.EndDate)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					continue // Entity has no such control account configured
				}
				return fmt.Errorf("failed to reconcile %s control: %w", control, err)
			}
			if !rec.Balanced() {
				failed = append(failed, fmt.Sprintf("%s (subsidiary %d, control %d, %d mismatches)",
					control, rec.SubsidiaryCents, rec.ControlCents, len(rec.Mismatches)))
			}
		}
		if len(failed) > 0 {
			return fmt.Errorf("%w: %v", apperrors.ErrUnreconciled, failed)
		}
	}

	if s.integrity != nil {
		if err := s.integrity.CheckPeriodIntegrity(ctx, entityID, periodID); err != nil {
			// ErrIntegrity is fatal and already logged by the checker; it is
			// surfaced untouched, never swallowed.
			return err
		}
	}

	if err := s.periodRepo.UpdatePeriodStatus(ctx, periodID, domain.PeriodOpen, domain.PeriodClosed, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to close period: %w", err)
	}
	logger.Info("Fiscal period closed", slog.String("period_id", periodID), slog.String("name", period.Name))
	return nil
}

// ReopenPeriod is the explicit privileged CLOSED -> OPEN transition.
func (s *PeriodService) ReopenPeriod(ctx context.Context, entityID string, periodID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.getScopedPeriod(ctx, entityID, periodID)
	if err != nil {
		return err
	}
	switch period.Status {
	case domain.PeriodLocked:
		return fmt.Errorf("%w: period %s is LOCKED; locking is permanent", apperrors.ErrForbidden, period.Name)
	case domain.PeriodOpen:
		return fmt.Errorf("%w: period %s is already OPEN", apperrors.ErrConflict, period.Name)
	}

	if err := s.periodRepo.UpdatePeriodStatus(ctx, periodID, domain.PeriodClosed, domain.PeriodOpen, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to reopen period: %w", err)
	}
	logger.Info("Fiscal period reopened", slog.String("period_id", periodID), slog.String("name", period.Name))
	return nil
}

// LockPeriod transitions CLOSED -> LOCKED. Irreversible.
func (s *PeriodService) LockPeriod(ctx context.Context, entityID string, periodID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.getScopedPeriod(ctx, entityID, periodID)
	if err != nil {
		return err
	}
	if period.Status != domain.PeriodClosed {
		return fmt.Errorf("%w: period %s is %s; only CLOSED periods can be locked", apperrors.ErrConflict, period.Name, period.Status)
	}

	if err := s.periodRepo.UpdatePeriodStatus(ctx, periodID, domain.PeriodClosed, domain.PeriodLocked, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to lock period: %w", err)
	}
	logger.Info("Fiscal period locked", slog.String("period_id", periodID), slog.String("name", period.Name))
	return nil
}

func (s *PeriodService) getScopedPeriod(ctx context.Context, entityID, periodID string) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}
	return period, nil
}
