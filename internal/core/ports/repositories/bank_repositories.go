package repositories

import (
	"context"
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
)

// BankRepositoryFacade defines persistence for bank accounts, imported
// statements and their reconciliation state.
type BankRepositoryFacade interface {
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// SaveStatement persists the statement header and its transactions in
	// one transaction.
	SaveStatement(ctx context.Context, statement domain.BankStatement, txns []domain.BankTransaction) error
	FindStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, error)
	ListTransactionsByStatement(ctx context.Context, statementID string) ([]domain.BankTransaction, error)

	// UpdateTransactionMatches persists matcher outcomes (status and matched
	// line references) for a statement's transactions.
	UpdateTransactionMatches(ctx context.Context, statementID string, txns []domain.BankTransaction) error

	// FinishReconciliation marks the statement reconciled and flips the
	// cleared flag on the matched ledger lines, all in one transaction.
	// Nothing persists if any part fails.
	FinishReconciliation(ctx context.Context, statementID string, reconciledAt time.Time, clearedLineIDs []string, userID string) error
}
