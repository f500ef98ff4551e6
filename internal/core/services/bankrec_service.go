package services

import (
	"context"
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
	"github.com/halverson/farmbooks/internal/utils/matching"
)

// cashLineLookback bounds how far back uncleared ledger activity is pulled
// when matching a statement. Stale uncleared items older than this need
// manual attention anyway.
const cashLineLookback = 365 * 24 * time.Hour

type bankRecService struct {
	bankRepo    portsrepo.BankRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	periodSvc   portssvc.PeriodSvcFacade
	matchCfg    matching.Config
}

// NewBankRecService creates a new bank reconciliation service.
func NewBankRecService(
	bankRepo portsrepo.BankRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	periodSvc portssvc.PeriodSvcFacade,
	matchCfg matching.Config,
) portssvc.BankRecSvcFacade {
	return &bankRecService{
		bankRepo:    bankRepo,
		journalRepo: journalRepo,
		periodSvc:   periodSvc,
		matchCfg:    matchCfg,
	}
}

var _ portssvc.BankRecSvcFacade = (*bankRecService)(nil)

// ImportStatement stores a bank statement and its transaction lines under
// the supplied fiscal period; every transaction must fall inside it. Amounts
// are signed from the bank's perspective: deposits positive, withdrawals
// negative.
func (s *bankRecService) ImportStatement(ctx context.Context, entityID string, req dto.ImportStatementRequest, userID string) (*domain.BankStatement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, req.BankAccountID)
	if err != nil {
		return nil, err
	}
	if bankAccount.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}

	period, err := s.periodSvc.GetPeriodByID(ctx, entityID, req.PeriodID)
	if err != nil {
		return nil, err
	}
	for _, t := range req.Transactions {
		if !period.Contains(t.Date) {
			return nil, fmt.Errorf("%w: transaction dated %s falls outside period %s",
				apperrors.ErrValidation, t.Date.Format("2006-01-02"), period.Name)
		}
	}

	now := time.Now().UTC()
	statement := domain.BankStatement{
		StatementID:    uuid.NewString(),
		EntityID:       entityID,
		BankAccountID:  bankAccount.BankAccountID,
		PeriodID:       period.PeriodID,
		BeginningCents: req.BeginningCents,
		EndingCents:    req.EndingCents,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	txns := make([]domain.BankTransaction, len(req.Transactions))
	for i, t := range req.Transactions {
		txns[i] = domain.BankTransaction{
			BankTxnID:   uuid.NewString(),
			StatementID: statement.StatementID,
			TxnDate:     t.Date,
			AmountCents: t.AmountCents,
			Description: t.Description,
			Status:      domain.MatchUnmatched,
			AuditFields: statement.AuditFields,
		}
	}

	if err := s.bankRepo.SaveStatement(ctx, statement, txns); err != nil {
		return nil, fmt.Errorf("failed to save statement: %w", err)
	}

	logger.Info("Bank statement imported",
		slog.String("statement_id", statement.StatementID),
		slog.Int("transaction_count", len(txns)),
	)
	return &statement, nil
}

// RunMatching matches statement transactions against uncleared cash ledger
// lines, first by exact amount within the date window and then by bounded
// combination search for deposits-in-transit style groupings. Ambiguous
// candidates are flagged rather than guessed at.
func (s *bankRecService) RunMatching(ctx context.Context, entityID string, statementID string, userID string) (*dto.MatchingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	statement, err := s.getScopedStatement(ctx, entityID, statementID)
	if err != nil {
		return nil, err
	}
	if statement.Reconciled {
		return nil, fmt.Errorf("%w: statement %s is already reconciled", apperrors.ErrConflict, statementID)
	}

	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, statement.BankAccountID)
	if err != nil {
		return nil, err
	}

	txns, err := s.bankRepo.ListTransactionsByStatement(ctx, statementID)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, fmt.Errorf("%w: statement %s has no transactions", apperrors.ErrValidation, statementID)
	}

	from, to := statementDateRange(txns)
	cashLines, err := s.journalRepo.ListCashLines(ctx, entityID, bankAccount.LedgerAccountID, from.Add(-cashLineLookback), to.AddDate(0, 0, s.matchCfg.DayWindow), true)
	if err != nil {
		return nil, fmt.Errorf("failed to load cash lines: %w", err)
	}

	banks := make([]matching.BankItem, len(txns))
	for i, t := range txns {
		banks[i] = matching.BankItem{ID: t.BankTxnID, Date: t.TxnDate, AmountCents: t.AmountCents}
	}
	lines := make([]matching.LedgerItem, len(cashLines))
	for i, l := range cashLines {
		lines[i] = matching.LedgerItem{ID: l.LineID, Date: l.EntryDate, AmountCents: l.AmountCents}
	}

	matches := matching.Run(banks, lines, s.matchCfg)

	byTxn := make(map[string]matching.Match, len(matches))
	for _, m := range matches {
		byTxn[m.BankID] = m
	}

	result := &dto.MatchingResult{StatementID: statementID}
	for i := range txns {
		m := byTxn[txns[i].BankTxnID]
		if m.Status == "" {
			m.Status = domain.MatchUnmatched
		}
		txns[i].Status = m.Status
		txns[i].MatchedLineIDs = m.LineIDs
		txns[i].LastUpdatedAt = time.Now().UTC()
		txns[i].LastUpdatedBy = userID

		switch m.Status {
		case domain.MatchMatched:
			result.Matched++
		case domain.MatchFlagged:
			result.Flagged++
		default:
			result.Unmatched++
		}
		result.Rows = append(result.Rows, dto.MatchResultRow{
			BankTxnID:      txns[i].BankTxnID,
			Status:         m.Status,
			MatchedLineIDs: m.LineIDs,
		})
	}

	if err := s.bankRepo.UpdateTransactionMatches(ctx, statementID, txns); err != nil {
		return nil, fmt.Errorf("failed to persist match results: %w", err)
	}

	logger.Info("Statement matching completed",
		slog.String("statement_id", statementID),
		slog.Int("matched", result.Matched),
		slog.Int("flagged", result.Flagged),
		slog.Int("unmatched", result.Unmatched),
	)
	return result, nil
}

// FinishReconciliation verifies the arithmetic tie before anything is marked
// cleared: beginning balance plus the sum of matched transactions must equal
// the ending balance to the cent. On mismatch nothing is persisted.
func (s *bankRecService) FinishReconciliation(ctx context.Context, entityID string, statementID string, userID string) (*domain.BankStatement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	statement, err := s.getScopedStatement(ctx, entityID, statementID)
	if err != nil {
		return nil, err
	}
	if statement.Reconciled {
		return nil, fmt.Errorf("%w: statement %s is already reconciled", apperrors.ErrConflict, statementID)
	}

	txns, err := s.bankRepo.ListTransactionsByStatement(ctx, statementID)
	if err != nil {
		return nil, err
	}

	var matchedCents int64
	var clearedLineIDs []string
	for _, t := range txns {
		switch t.Status {
		case domain.MatchMatched:
			matchedCents += t.AmountCents
			clearedLineIDs = append(clearedLineIDs, t.MatchedLineIDs...)
		case domain.MatchFlagged, domain.MatchUnmatched:
			return nil, fmt.Errorf("%w: transaction %s is %s", apperrors.ErrUnreconciled, t.BankTxnID, t.Status)
		}
	}

	computed := statement.BeginningCents + matchedCents
	if computed != statement.EndingCents {
		return nil, fmt.Errorf("%w: beginning %d plus matched %d yields %d, statement ends at %d",
			apperrors.ErrBalanceMismatch, statement.BeginningCents, matchedCents, computed, statement.EndingCents)
	}

	reconciledAt := time.Now().UTC()
	if err := s.bankRepo.FinishReconciliation(ctx, statementID, reconciledAt, clearedLineIDs, userID); err != nil {
		return nil, fmt.Errorf("failed to finish reconciliation: %w", err)
	}

	statement.Reconciled = true
	statement.ReconciledAt = &reconciledAt
	logger.Info("Bank statement reconciled",
		slog.String("statement_id", statementID),
		slog.Int("cleared_lines", len(clearedLineIDs)),
	)
	return statement, nil
}

func (s *bankRecService) getScopedStatement(ctx context.Context, entityID string, statementID string) (*domain.BankStatement, error) {
	statement, err := s.bankRepo.FindStatementByID(ctx, statementID)
	if err != nil {
		return nil, err
	}
	if statement.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}
	return statement, nil
}

func statementDateRange(txns []domain.BankTransaction) (time.Time, time.Time) {
	from, to := txns[0].TxnDate, txns[0].TxnDate
	for _, t := range txns[1:] {
		if t.TxnDate.Before(from) {
			from = t.TxnDate
		}
		if t.TxnDate.After(to) {
			to = t.TxnDate
		}
	}
	return from, to
}
