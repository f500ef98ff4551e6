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
	"github.com/halverson/farmbooks/internal/utils/accounting"
)

// journalService implements the journal engine: the single posting path for
// every transaction source.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	periodSvc   portssvc.PeriodSvcFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, periodSvc portssvc.PeriodSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		periodSvc:   periodSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// PostEntry validates and atomically posts a balanced journal entry.
// Validation order: line shape, debits == credits, account registry rules,
// period OPEN. On failure no partial state is retained.
func (s *journalService) PostEntry(ctx context.Context, entityID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Memo == "" {
		return nil, fmt.Errorf("%w: memo is required", apperrors.ErrValidation)
	}
	if req.SourceKind == "" {
		req.SourceKind = domain.SourceManual
	}

	// Callers retrying a post must use an idempotency key; a duplicate key
	// returns the original entry and posts nothing.
	if req.IdempotencyKey != "" {
		existing, err := s.journalRepo.FindEntryByIdempotencyKey(ctx, entityID, req.IdempotencyKey)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check idempotency key: %w", err)
		}
		if existing != nil {
			logger.Info("Idempotent replay of journal entry", slog.String("entry_id", existing.EntryID))
			return existing, nil
		}
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lineReq.AccountID,
			DebitCents:  lineReq.DebitCents,
			CreditCents: lineReq.CreditCents,
			ClassTag:    lineReq.ClassTag,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, err
	}

	accounts, err := s.accountSvc.AssertPostable(ctx, entityID, accountIDs)
	if err != nil {
		return nil, err
	}

	period, err := s.periodSvc.GetPeriodForDate(ctx, entityID, req.Date)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %s is %s", apperrors.ErrClosedPeriod, period.Name, period.Status)
	}

	accountTypes := make(map[string]domain.AccountType, len(accounts))
	for id, acc := range accounts {
		accountTypes[id] = acc.AccountType
	}
	balanceChanges, err := accounting.NetChangeCents(lines, accountTypes)
	if err != nil {
		logger.Error("Failed to compute balance changes", slog.String("error", err.Error()))
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	var totalDebits int64
	for _, l := range lines {
		totalDebits += l.DebitCents
	}

	entry := domain.JournalEntry{
		EntryID:          entryID,
		EntityID:         entityID,
		PeriodID:         period.PeriodID,
		EntryDate:        req.Date,
		Memo:             req.Memo,
		Status:           domain.Posted,
		SourceKind:       req.SourceKind,
		SourceRef:        req.SourceRef,
		IdempotencyKey:   req.IdempotencyKey,
		Lines:            lines,
		TotalDebitsCents: totalDebits,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, balanceChanges); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("source", string(entry.SourceKind)),
		slog.Int64("total_debits_cents", totalDebits),
	)
	return &entry, nil
}

// ReverseEntry creates a new entry with every line's debit and credit
// swapped, dated into an OPEN period and linked to the original. The
// original is marked REVERSED but never deleted.
func (s *journalService) ReverseEntry(ctx context.Context, entityID string, entryID string, reversalDate time.Time, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.GetEntryByID(ctx, entityID, entryID)
	if err != nil {
		return nil, err
	}

	if original.Status == domain.Reversed {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, entryID)
	}
	if original.ReversalOfID != nil {
		// A reversal nets an original to zero; reversing it again would
		// re-open a correction chain the audit trail cannot follow.
		return nil, fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrAlreadyReversed, entryID)
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: entry status is %s, expected POSTED", apperrors.ErrConflict, original.Status)
	}

	period, err := s.periodSvc.GetPeriodForDate(ctx, entityID, reversalDate)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: reversal period %s is %s", apperrors.ErrClosedPeriod, period.Name, period.Status)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversedLines := make([]domain.JournalLine, len(original.Lines))
	accountIDs := make([]string, 0, len(original.Lines))
	for i, origLine := range original.Lines {
		reversedLines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     reversalID,
			AccountID:   origLine.AccountID,
			DebitCents:  origLine.CreditCents,
			CreditCents: origLine.DebitCents,
			ClassTag:    origLine.ClassTag,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		accountIDs = append(accountIDs, origLine.AccountID)
	}

	// Reversal must still pass registry rules: a since-deactivated account
	// blocks the reversal rather than silently posting to it.
	accounts, err := s.accountSvc.AssertPostable(ctx, entityID, accountIDs)
	if err != nil {
		return nil, err
	}
	accountTypes := make(map[string]domain.AccountType, len(accounts))
	for id, acc := range accounts {
		accountTypes[id] = acc.AccountType
	}
	balanceChanges, err := accounting.NetChangeCents(reversedLines, accountTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate reversal balance changes: %w", err)
	}

	reversal := domain.JournalEntry{
		EntryID:          reversalID,
		EntityID:         entityID,
		PeriodID:         period.PeriodID,
		EntryDate:        reversalDate,
		Memo:             fmt.Sprintf("Reversal of: %s", original.Memo),
		Status:           domain.Posted,
		SourceKind:       domain.SourceReverse,
		SourceRef:        original.EntryID,
		ReversalOfID:     &original.EntryID,
		Lines:            reversedLines,
		TotalDebitsCents: original.TotalDebitsCents,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveReversal(ctx, reversal, original.EntryID, balanceChanges); err != nil {
		logger.Error("Failed to save reversal", slog.String("error", err.Error()), slog.String("original_entry_id", original.EntryID))
		return nil, err
	}

	logger.Info("Journal entry reversed", slog.String("original_entry_id", original.EntryID), slog.String("reversal_entry_id", reversalID))
	return &reversal, nil
}

// GetEntryByID retrieves an entry with its lines, scoped to the entity.
func (s *journalService) GetEntryByID(ctx context.Context, entityID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.EntityID != entityID {
		return nil, apperrors.ErrNotFound // Obscure existence
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entries for the entity.
func (s *journalService) ListEntries(ctx context.Context, entityID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, entityID, limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{NextToken: nextToken}
	for i := range entries {
		if params.IncludeLines {
			lines, err := s.journalRepo.FindLinesByEntryID(ctx, entries[i].EntryID)
			if err != nil {
				return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entries[i].EntryID, err)
			}
			entries[i].Lines = lines
		}
		resp.Entries = append(resp.Entries, dto.ToEntryResponse(&entries[i]))
	}
	return resp, nil
}

// ListLinesByAccount retrieves a paginated list of lines for one account.
func (s *journalService) ListLinesByAccount(ctx context.Context, entityID string, accountID string, params dto.ListParams) (*dto.ListLinesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	lines, nextToken, err := s.journalRepo.ListLinesByAccount(ctx, entityID, accountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines: %w", err)
	}
	resp := &dto.ListLinesResponse{NextToken: nextToken}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.ToLineResponse(l))
	}
	return resp, nil
}
