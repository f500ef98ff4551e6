package domain

import "time"

// BankAccount ties a ledger cash account to the external bank identifiers
// needed for checks and ACH files.
type BankAccount struct {
	BankAccountID   string `json:"bankAccountID"`   // Primary Key (UUID)
	EntityID        string `json:"entityID"`        // FK -> entities.entity_id
	LedgerAccountID string `json:"ledgerAccountID"` // FK -> accounts.account_id (cash account)
	Name            string `json:"name"`
	RoutingNumber   string `json:"routingNumber"` // 9-digit ABA transit number
	AccountNumber   string `json:"accountNumber"`
	NextCheckNumber int64  `json:"nextCheckNumber"` // Monotonic; a consumed number is never reissued
	AuditFields
}

// MatchStatus is the reconciliation state of an imported bank transaction.
type MatchStatus string

const (
	MatchUnmatched MatchStatus = "UNMATCHED"
	MatchMatched   MatchStatus = "MATCHED"
	MatchFlagged   MatchStatus = "FLAGGED" // Multiple equally good candidates; needs review
)

// BankStatement is one imported statement for a cash account and period.
// FinishReconciliation requires beginning + sum(cleared) to equal the ending
// balance exactly before anything is persisted.
type BankStatement struct {
	StatementID    string    `json:"statementID"`   // Primary Key (UUID)
	EntityID       string    `json:"entityID"`      // FK -> entities.entity_id
	BankAccountID  string    `json:"bankAccountID"` // Ledger cash account being reconciled
	PeriodID       string    `json:"periodID"`      // FK -> fiscal_periods.period_id
	BeginningCents int64     `json:"beginningCents"`
	EndingCents    int64     `json:"endingCents"`
	Reconciled     bool      `json:"reconciled"`
	ReconciledAt   *time.Time `json:"reconciledAt,omitempty"`
	AuditFields
}

// CashLine is a read model of one posted cash-account journal line, dated
// and signed from the bank's point of view (deposits positive).
type CashLine struct {
	LineID      string    `json:"lineID"`
	EntryID     string    `json:"entryID"`
	EntryDate   time.Time `json:"entryDate"`
	AmountCents int64     `json:"amountCents"`
	Memo        string    `json:"memo"`
	Cleared     bool      `json:"cleared"`
}

// BankTransaction is one imported statement row. Rows are mutated only by
// the matcher (status and matched line refs) until reconciled.
type BankTransaction struct {
	BankTxnID      string      `json:"bankTxnID"`   // Primary Key (UUID)
	StatementID    string      `json:"statementID"` // FK -> bank_statements.statement_id
	TxnDate        time.Time   `json:"txnDate"`
	AmountCents    int64       `json:"amountCents"` // Signed: deposits positive, withdrawals negative
	Description    string      `json:"description"`
	Status         MatchStatus `json:"status"`
	MatchedLineIDs []string    `json:"matchedLineIDs,omitempty"` // Ledger lines cleared by this row
	AuditFields
}
