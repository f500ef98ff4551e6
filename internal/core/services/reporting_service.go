package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/halverson/farmbooks/internal/apperrors"
	"github.com/halverson/farmbooks/internal/core/domain"
	portsrepo "github.com/halverson/farmbooks/internal/core/ports/repositories"
	portssvc "github.com/halverson/farmbooks/internal/core/ports/services"
	"github.com/halverson/farmbooks/internal/middleware"
)

// reportingService derives every report from the posted entry log. Reports
// are computed, never stored, so they can not drift from the journal.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	periodRepo    portsrepo.PeriodRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepositoryFacade,
	periodRepo portsrepo.PeriodRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		periodRepo:    periodRepo,
		accountSvc:    accountSvc,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetTrialBalance returns per-account debit and credit totals for a period.
// For a journal whose entries all balanced, the two grand totals are equal.
func (s *reportingService) GetTrialBalance(ctx context.Context, entityID string, periodID string) (*domain.TrialBalance, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}

	rows, err := s.reportingRepo.TrialBalanceRows(ctx, entityID, periodID)
	if err != nil {
		return nil, err
	}

	tb := &domain.TrialBalance{PeriodID: periodID, Rows: rows}
	for _, r := range rows {
		tb.TotalDebitCents += r.DebitCents
		tb.TotalCreditCents += r.CreditCents
	}
	if tb.TotalDebitCents != tb.TotalCreditCents {
		middleware.GetLoggerFromCtx(ctx).Error("Trial balance does not tie",
			slog.String("period_id", periodID),
			slog.Int64("total_debit_cents", tb.TotalDebitCents),
			slog.Int64("total_credit_cents", tb.TotalCreditCents),
		)
		return nil, fmt.Errorf("%w: trial balance debits %d != credits %d", apperrors.ErrIntegrity, tb.TotalDebitCents, tb.TotalCreditCents)
	}
	return tb, nil
}

// GetProfitAndLoss returns net revenue and expense activity over a range.
func (s *reportingService) GetProfitAndLoss(ctx context.Context, entityID string, from, to time.Time) (*domain.ProfitAndLoss, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report range ends before it starts", apperrors.ErrValidation)
	}

	revenue, err := s.reportingRepo.NetAmountsByType(ctx, entityID, domain.Revenue, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.reportingRepo.NetAmountsByType(ctx, entityID, domain.Expense, from, to)
	if err != nil {
		return nil, err
	}

	pl := &domain.ProfitAndLoss{From: from, To: to, Revenue: revenue, Expenses: expenses}
	pl.NetProfitCents = sumNet(revenue) - sumNet(expenses)
	return pl, nil
}

// GetBalanceSheet returns cumulative balances as of a date. Lifetime net
// profit is folded into equity as retained earnings, so the accounting
// identity Assets = Liabilities + Equity holds on a clean ledger.
func (s *reportingService) GetBalanceSheet(ctx context.Context, entityID string, asOf time.Time) (*domain.BalanceSheet, error) {
	assets, err := s.reportingRepo.BalancesByType(ctx, entityID, domain.Asset, asOf)
	if err != nil {
		return nil, err
	}
	liabilities, err := s.reportingRepo.BalancesByType(ctx, entityID, domain.Liability, asOf)
	if err != nil {
		return nil, err
	}
	equity, err := s.reportingRepo.BalancesByType(ctx, entityID, domain.Equity, asOf)
	if err != nil {
		return nil, err
	}
	revenue, err := s.reportingRepo.NetAmountsByType(ctx, entityID, domain.Revenue, time.Time{}, asOf)
	if err != nil {
		return nil, err
	}
	expenses, err := s.reportingRepo.NetAmountsByType(ctx, entityID, domain.Expense, time.Time{}, asOf)
	if err != nil {
		return nil, err
	}

	bs := &domain.BalanceSheet{
		AsOf:                  asOf,
		Assets:                assets,
		Liabilities:           liabilities,
		Equity:                equity,
		TotalAssetCents:       sumNet(assets),
		TotalLiabilityCents:   sumNet(liabilities),
		RetainedEarningsCents: sumNet(revenue) - sumNet(expenses),
	}
	bs.TotalEquityCents = sumNet(equity) + bs.RetainedEarningsCents
	return bs, nil
}

// GetCashFlow derives the statement from account-type deltas over the range.
// Control account movement stays in operating; other asset movement is
// investing; other liability and direct equity movement is financing.
func (s *reportingService) GetCashFlow(ctx context.Context, entityID string, from, to time.Time) (*domain.CashFlow, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report range ends before it starts", apperrors.ErrValidation)
	}

	pl, err := s.GetProfitAndLoss(ctx, entityID, from, to)
	if err != nil {
		return nil, err
	}
	assetRows, err := s.reportingRepo.NetAmountsByType(ctx, entityID, domain.Asset, from, to)
	if err != nil {
		return nil, err
	}
	liabilityRows, err := s.reportingRepo.NetAmountsByType(ctx, entityID, domain.Liability, from, to)
	if err != nil {
		return nil, err
	}
	equityRows, err := s.reportingRepo.NetAmountsByType(ctx, entityID, domain.Equity, from, to)
	if err != nil {
		return nil, err
	}

	arAccountID, err := s.controlAccountID(ctx, entityID, domain.ControlAccountsReceivable)
	if err != nil {
		return nil, err
	}
	apAccountID, err := s.controlAccountID(ctx, entityID, domain.ControlAccountsPayable)
	if err != nil {
		return nil, err
	}

	openingCash, err := s.reportingRepo.CashBalanceAsOf(ctx, entityID, from.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	closingCash, err := s.reportingRepo.CashBalanceAsOf(ctx, entityID, to)
	if err != nil {
		return nil, err
	}
	deltaCash := closingCash - openingCash

	deltaAR := netFor(assetRows, arAccountID)
	deltaAP := netFor(liabilityRows, apAccountID)
	deltaAssets := sumNet(assetRows)
	deltaLiabilities := sumNet(liabilityRows)
	deltaEquity := sumNet(equityRows)

	cf := &domain.CashFlow{
		From:             from,
		To:               to,
		OperatingCents:   pl.NetProfitCents - deltaAR + deltaAP,
		InvestingCents:   -(deltaAssets - deltaCash - deltaAR),
		FinancingCents:   (deltaLiabilities - deltaAP) + deltaEquity,
		OpeningCashCents: openingCash,
		ClosingCashCents: closingCash,
	}
	cf.NetChangeCents = cf.OperatingCents + cf.InvestingCents + cf.FinancingCents
	return cf, nil
}

// CheckPeriodIntegrity verifies Assets == Liabilities + Equity as of the
// period end. A violation means posted data is corrupt; it is logged and
// surfaced, never adjusted.
func (s *reportingService) CheckPeriodIntegrity(ctx context.Context, entityID string, periodID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return err
	}
	if period.EntityID != entityID {
		return apperrors.ErrNotFound
	}

	bs, err := s.GetBalanceSheet(ctx, entityID, period.EndDate)
	if err != nil {
		return err
	}
	if !bs.Balanced() {
		logger.Error("Accounting identity violated",
			slog.String("period_id", periodID),
			slog.Int64("total_asset_cents", bs.TotalAssetCents),
			slog.Int64("total_liability_cents", bs.TotalLiabilityCents),
			slog.Int64("total_equity_cents", bs.TotalEquityCents),
		)
		return fmt.Errorf("%w: assets %d != liabilities %d + equity %d as of %s",
			apperrors.ErrIntegrity, bs.TotalAssetCents, bs.TotalLiabilityCents, bs.TotalEquityCents, period.EndDate.Format("2006-01-02"))
	}
	return nil
}

// controlAccountID resolves a control account, tolerating entities that have
// not set one up. Missing control means zero subledger movement.
func (s *reportingService) controlAccountID(ctx context.Context, entityID string, control domain.ControlType) (string, error) {
	account, err := s.accountSvc.GetControlAccount(ctx, entityID, control)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return account.AccountID, nil
}

func sumNet(rows []domain.AccountAmount) int64 {
	var total int64
	for _, r := range rows {
		total += r.NetCents
	}
	return total
}

func netFor(rows []domain.AccountAmount, accountID string) int64 {
	if accountID == "" {
		return 0
	}
	for _, r := range rows {
		if r.AccountID == accountID {
			return r.NetCents
		}
	}
	return 0
}
