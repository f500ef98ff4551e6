package services

import (
	"context"
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
	"github.com/halverson/farmbooks/internal/dto"
)

// AccountSvcFacade exposes the chart-of-accounts registry.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, entityID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, entityID string, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, entityID string, params dto.ListParams) (*dto.ListAccountsResponse, error)
	DeactivateAccount(ctx context.Context, entityID string, accountID string, userID string) error
	GetControlAccount(ctx context.Context, entityID string, control domain.ControlType) (*domain.Account, error)

	// RebuildBalances re-derives the entity's cached balances from the
	// posted line log.
	RebuildBalances(ctx context.Context, entityID string) error

	// AssertPostable validates that every account exists, is active, is a
	// leaf and belongs to the entity, returning the accounts keyed by id.
	AssertPostable(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error)
}

// JournalSvcFacade exposes the journal engine: the only mutating path into
// the posted-entry log.
type JournalSvcFacade interface {
	PostEntry(ctx context.Context, entityID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	ReverseEntry(ctx context.Context, entityID string, entryID string, reversalDate time.Time, userID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, entityID string, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, entityID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	ListLinesByAccount(ctx context.Context, entityID string, accountID string, params dto.ListParams) (*dto.ListLinesResponse, error)
}

// PeriodSvcFacade exposes the fiscal period lifecycle.
type PeriodSvcFacade interface {
	CreatePeriod(ctx context.Context, entityID string, req dto.CreatePeriodRequest, userID string) (*domain.FiscalPeriod, error)
	CreateMonthlyPeriods(ctx context.Context, entityID string, year int, userID string) ([]domain.FiscalPeriod, error)
	GetPeriodByID(ctx context.Context, entityID string, periodID string) (*domain.FiscalPeriod, error)
	GetPeriodForDate(ctx context.Context, entityID string, date time.Time) (*domain.FiscalPeriod, error)
	ListPeriods(ctx context.Context, entityID string) ([]domain.FiscalPeriod, error)
	ClosePeriod(ctx context.Context, entityID string, periodID string, userID string) error
	ReopenPeriod(ctx context.Context, entityID string, periodID string, userID string) error
	LockPeriod(ctx context.Context, entityID string, periodID string, userID string) error
}

// SubledgerSvcFacade exposes AP/AR documents and their reconciliation to the
// control accounts.
type SubledgerSvcFacade interface {
	RecordBill(ctx context.Context, entityID string, req dto.RecordBillRequest, userID string) (*domain.Bill, error)
	RecordInvoice(ctx context.Context, entityID string, req dto.RecordInvoiceRequest, userID string) (*domain.Invoice, error)
	GetBillByID(ctx context.Context, entityID string, billID string) (*domain.Bill, error)
	GetInvoiceByID(ctx context.Context, entityID string, invoiceID string) (*domain.Invoice, error)
	ApplyBillPayment(ctx context.Context, entityID string, billID string, amountCents int64, userID string) error
	ApplyInvoicePayment(ctx context.Context, entityID string, invoiceID string, amountCents int64, userID string) error
	ReconcileControl(ctx context.Context, entityID string, control domain.ControlType, asOf time.Time) (*domain.ControlReconciliation, error)
}

// BankRecSvcFacade exposes bank-statement reconciliation.
type BankRecSvcFacade interface {
	ImportStatement(ctx context.Context, entityID string, req dto.ImportStatementRequest, userID string) (*domain.BankStatement, error)
	RunMatching(ctx context.Context, entityID string, statementID string, userID string) (*dto.MatchingResult, error)
	FinishReconciliation(ctx context.Context, entityID string, statementID string, userID string) (*domain.BankStatement, error)
}

// PaymentSvcFacade exposes payment instrument generation.
type PaymentSvcFacade interface {
	PrintCheck(ctx context.Context, entityID string, req dto.PrintCheckRequest, userID string) (*domain.Check, error)
	VoidCheck(ctx context.Context, entityID string, checkID string, userID string) error
	GenerateACHBatch(ctx context.Context, entityID string, req dto.GenerateACHRequest, userID string) (*domain.ACHBatch, error)
	GetBatchByID(ctx context.Context, entityID string, batchID string) (*domain.ACHBatch, error)
}

// PostingSvcFacade is the inbound boundary for domain collaborators: each
// already-validated business intent becomes one canonical journal entry
// through the single engine path.
type PostingSvcFacade interface {
	PostBillPayment(ctx context.Context, entityID string, req dto.BillPaymentRequest, userID string) (*dto.BillPaymentResult, error)
	PostInvoicePayment(ctx context.Context, entityID string, req dto.InvoicePaymentRequest, userID string) (*domain.JournalEntry, error)
	PostPayrollRun(ctx context.Context, entityID string, req dto.PayrollRunRequest, userID string) (*domain.JournalEntry, error)
	PostManualJournalEntry(ctx context.Context, entityID string, req dto.ManualEntryRequest, userID string) (*domain.JournalEntry, error)
}

// ReportingSvcFacade exposes read-only derived reports.
type ReportingSvcFacade interface {
	GetTrialBalance(ctx context.Context, entityID string, periodID string) (*domain.TrialBalance, error)
	GetProfitAndLoss(ctx context.Context, entityID string, from, to time.Time) (*domain.ProfitAndLoss, error)
	GetBalanceSheet(ctx context.Context, entityID string, asOf time.Time) (*domain.BalanceSheet, error)
	GetCashFlow(ctx context.Context, entityID string, from, to time.Time) (*domain.CashFlow, error)

	// CheckPeriodIntegrity verifies Assets == Liabilities + Equity as of the
	// period end. A violation is ErrIntegrity: fatal, always logged, never
	// auto-adjusted.
	CheckPeriodIntegrity(ctx context.Context, entityID string, periodID string) error
}

// ServiceContainer aggregates the service facades for handler wiring.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Period    PeriodSvcFacade
	Subledger SubledgerSvcFacade
	BankRec   BankRecSvcFacade
	Payment   PaymentSvcFacade
	Posting   PostingSvcFacade
	Reporting ReportingSvcFacade
}
