package services_test

import (
	"context"
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
	portsrepo "github.com/halverson/farmbooks/internal/core/ports/repositories"
	portssvc "github.com/halverson/farmbooks/internal/core/ports/services"
	"github.com/halverson/farmbooks/internal/core/services"
	"github.com/halverson/farmbooks/internal/dto"
	"github.com/stretchr/testify/mock"
)

// Shared mocks for the service suites. Every repository facade and the
// collaborating service facades are mocked once here.

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, entityID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, entityID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindControlAccount(ctx context.Context, entityID string, control domain.ControlType) (*domain.Account, error) {
	args := m.Called(ctx, entityID, control)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.Account, *string, error) {
	args := m.Called(ctx, entityID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.Account), token, args.Error(2)
}

func (m *MockAccountRepository) HasChildren(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) HasPostingsInOpenPeriod(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, at time.Time) error {
	args := m.Called(ctx, accountID, userID, at)
	return args.Error(0)
}

func (m *MockAccountRepository) RebuildBalances(ctx context.Context, entityID string) error {
	args := m.Called(ctx, entityID)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]int64) error {
	args := m.Called(ctx, entry, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, balanceChanges map[string]int64) error {
	args := m.Called(ctx, reversal, originalEntryID, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByIdempotencyKey(ctx context.Context, entityID string, key string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, entityID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, entityID, limit, nextToken, includeReversals)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.JournalEntry), token, args.Error(2)
}

func (m *MockJournalRepository) ListLinesByAccount(ctx context.Context, entityID string, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	args := m.Called(ctx, entityID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.JournalLine), token, args.Error(2)
}

func (m *MockJournalRepository) CountDraftEntries(ctx context.Context, periodID string) (int, error) {
	args := m.Called(ctx, periodID)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) ListCashLines(ctx context.Context, entityID string, ledgerAccountID string, from time.Time, to time.Time, onlyUncleared bool) ([]domain.CashLine, error) {
	args := m.Called(ctx, entityID, ledgerAccountID, from, to, onlyUncleared)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashLine), args.Error(1)
}

func (m *MockJournalRepository) ControlBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (int64, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodForDate(ctx context.Context, entityID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, entityID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, entityID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) UpdatePeriodStatus(ctx context.Context, periodID string, from, to domain.PeriodStatus, userID string, at time.Time) error {
	args := m.Called(ctx, periodID, from, to, userID, at)
	return args.Error(0)
}

// --- Mock PayableRepository ---

type MockPayableRepository struct {
	mock.Mock
}

var _ portsrepo.PayableRepositoryFacade = (*MockPayableRepository)(nil)

func (m *MockPayableRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockPayableRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockPayableRepository) ListOpenBills(ctx context.Context, entityID string, asOf time.Time) ([]domain.Bill, error) {
	args := m.Called(ctx, entityID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockPayableRepository) ApplyBillPayment(ctx context.Context, billID string, amountCents int64, userID string, at time.Time) error {
	args := m.Called(ctx, billID, amountCents, userID, at)
	return args.Error(0)
}

func (m *MockPayableRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockPayableRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockPayableRepository) ListOpenInvoices(ctx context.Context, entityID string, asOf time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, entityID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockPayableRepository) ApplyInvoicePayment(ctx context.Context, invoiceID string, amountCents int64, userID string, at time.Time) error {
	args := m.Called(ctx, invoiceID, amountCents, userID, at)
	return args.Error(0)
}

// --- Mock BankRepository ---

type MockBankRepository struct {
	mock.Mock
}

var _ portsrepo.BankRepositoryFacade = (*MockBankRepository)(nil)

func (m *MockBankRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankRepository) SaveStatement(ctx context.Context, statement domain.BankStatement, txns []domain.BankTransaction) error {
	args := m.Called(ctx, statement, txns)
	return args.Error(0)
}

func (m *MockBankRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, error) {
	args := m.Called(ctx, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankStatement), args.Error(1)
}

func (m *MockBankRepository) ListTransactionsByStatement(ctx context.Context, statementID string) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockBankRepository) UpdateTransactionMatches(ctx context.Context, statementID string, txns []domain.BankTransaction) error {
	args := m.Called(ctx, statementID, txns)
	return args.Error(0)
}

func (m *MockBankRepository) FinishReconciliation(ctx context.Context, statementID string, reconciledAt time.Time, clearedLineIDs []string, userID string) error {
	args := m.Called(ctx, statementID, reconciledAt, clearedLineIDs, userID)
	return args.Error(0)
}

// --- Mock PaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) NextCheckNumber(ctx context.Context, bankAccountID string) (int64, error) {
	args := m.Called(ctx, bankAccountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) IssueCheck(ctx context.Context, check domain.Check) error {
	args := m.Called(ctx, check)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error) {
	args := m.Called(ctx, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockPaymentRepository) ListChecks(ctx context.Context, bankAccountID string) ([]domain.Check, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Check), args.Error(1)
}

func (m *MockPaymentRepository) VoidCheck(ctx context.Context, checkID string, userID string, at time.Time) error {
	args := m.Called(ctx, checkID, userID, at)
	return args.Error(0)
}

func (m *MockPaymentRepository) NextBatchNumber(ctx context.Context, entityID string) (int64, error) {
	args := m.Called(ctx, entityID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) SaveBatch(ctx context.Context, batch domain.ACHBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.ACHBatch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ACHBatch), args.Error(1)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) TrialBalanceRows(ctx context.Context, entityID string, periodID string) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, entityID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) NetAmountsByType(ctx context.Context, entityID string, accountType domain.AccountType, from, to time.Time) ([]domain.AccountAmount, error) {
	args := m.Called(ctx, entityID, accountType, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountAmount), args.Error(1)
}

func (m *MockReportingRepository) BalancesByType(ctx context.Context, entityID string, accountType domain.AccountType, asOf time.Time) ([]domain.AccountAmount, error) {
	args := m.Called(ctx, entityID, accountType, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountAmount), args.Error(1)
}

func (m *MockReportingRepository) CashBalanceAsOf(ctx context.Context, entityID string, asOf time.Time) (int64, error) {
	args := m.Called(ctx, entityID, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, entityID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, entityID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, entityID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, entityID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, entityID string, params dto.ListParams) (*dto.ListAccountsResponse, error) {
	args := m.Called(ctx, entityID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccountsResponse), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, entityID string, accountID string, userID string) error {
	args := m.Called(ctx, entityID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) RebuildBalances(ctx context.Context, entityID string) error {
	args := m.Called(ctx, entityID)
	return args.Error(0)
}

func (m *MockAccountService) GetControlAccount(ctx context.Context, entityID string, control domain.ControlType) (*domain.Account, error) {
	args := m.Called(ctx, entityID, control)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) AssertPostable(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, entityID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock JournalService ---

type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) PostEntry(ctx context.Context, entityID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ReverseEntry(ctx context.Context, entityID string, entryID string, reversalDate time.Time, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, entryID, reversalDate, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntryByID(ctx context.Context, entityID string, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, entityID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, entityID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockJournalService) ListLinesByAccount(ctx context.Context, entityID string, accountID string, params dto.ListParams) (*dto.ListLinesResponse, error) {
	args := m.Called(ctx, entityID, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLinesResponse), args.Error(1)
}

// --- Mock PeriodService ---

type MockPeriodService struct {
	mock.Mock
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodService)(nil)

func (m *MockPeriodService) CreatePeriod(ctx context.Context, entityID string, req dto.CreatePeriodRequest, userID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, entityID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodService) CreateMonthlyPeriods(ctx context.Context, entityID string, year int, userID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, entityID, year, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodService) GetPeriodByID(ctx context.Context, entityID string, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, entityID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodService) GetPeriodForDate(ctx context.Context, entityID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, entityID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodService) ListPeriods(ctx context.Context, entityID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodService) ClosePeriod(ctx context.Context, entityID string, periodID string, userID string) error {
	args := m.Called(ctx, entityID, periodID, userID)
	return args.Error(0)
}

func (m *MockPeriodService) ReopenPeriod(ctx context.Context, entityID string, periodID string, userID string) error {
	args := m.Called(ctx, entityID, periodID, userID)
	return args.Error(0)
}

func (m *MockPeriodService) LockPeriod(ctx context.Context, entityID string, periodID string, userID string) error {
	args := m.Called(ctx, entityID, periodID, userID)
	return args.Error(0)
}

// --- Mock SubledgerService ---

type MockSubledgerService struct {
	mock.Mock
}

var _ portssvc.SubledgerSvcFacade = (*MockSubledgerService)(nil)

func (m *MockSubledgerService) RecordBill(ctx context.Context, entityID string, req dto.RecordBillRequest, userID string) (*domain.Bill, error) {
	args := m.Called(ctx, entityID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockSubledgerService) RecordInvoice(ctx context.Context, entityID string, req dto.RecordInvoiceRequest, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, entityID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockSubledgerService) GetBillByID(ctx context.Context, entityID string, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, entityID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockSubledgerService) GetInvoiceByID(ctx context.Context, entityID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, entityID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockSubledgerService) ApplyBillPayment(ctx context.Context, entityID string, billID string, amountCents int64, userID string) error {
	args := m.Called(ctx, entityID, billID, amountCents, userID)
	return args.Error(0)
}

func (m *MockSubledgerService) ApplyInvoicePayment(ctx context.Context, entityID string, invoiceID string, amountCents int64, userID string) error {
	args := m.Called(ctx, entityID, invoiceID, amountCents, userID)
	return args.Error(0)
}

func (m *MockSubledgerService) ReconcileControl(ctx context.Context, entityID string, control domain.ControlType, asOf time.Time) (*domain.ControlReconciliation, error) {
	args := m.Called(ctx, entityID, control, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ControlReconciliation), args.Error(1)
}

// --- Mock PaymentService ---

type MockPaymentService struct {
	mock.Mock
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

func (m *MockPaymentService) PrintCheck(ctx context.Context, entityID string, req dto.PrintCheckRequest, userID string) (*domain.Check, error) {
	args := m.Called(ctx, entityID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockPaymentService) VoidCheck(ctx context.Context, entityID string, checkID string, userID string) error {
	args := m.Called(ctx, entityID, checkID, userID)
	return args.Error(0)
}

func (m *MockPaymentService) GenerateACHBatch(ctx context.Context, entityID string, req dto.GenerateACHRequest, userID string) (*domain.ACHBatch, error) {
	args := m.Called(ctx, entityID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ACHBatch), args.Error(1)
}

func (m *MockPaymentService) GetBatchByID(ctx context.Context, entityID string, batchID string) (*domain.ACHBatch, error) {
	args := m.Called(ctx, entityID, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ACHBatch), args.Error(1)
}

// --- Mock ControlReconciler ---

type MockControlReconciler struct {
	mock.Mock
}

var _ services.ControlReconciler = (*MockControlReconciler)(nil)

func (m *MockControlReconciler) ReconcileControl(ctx context.Context, entityID string, control domain.ControlType, asOf time.Time) (*domain.ControlReconciliation, error) {
	args := m.Called(ctx, entityID, control, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ControlReconciliation), args.Error(1)
}

// --- Mock IntegrityChecker ---

type MockIntegrityChecker struct {
	mock.Mock
}

var _ services.IntegrityChecker = (*MockIntegrityChecker)(nil)

func (m *MockIntegrityChecker) CheckPeriodIntegrity(ctx context.Context, entityID string, periodID string) error {
	args := m.Called(ctx, entityID, periodID)
	return args.Error(0)
}
