package models

import "time"

// BankAccount mirrors the bank_accounts table.
type BankAccount struct {
	BankAccountID   string `json:"bankAccountID"`
	EntityID        string `json:"entityID"`
	LedgerAccountID string `json:"ledgerAccountID"`
	Name            string `json:"name"`
	RoutingNumber   string `json:"routingNumber"`
	AccountNumber   string `json:"accountNumber"`
	NextCheckNumber int64  `json:"nextCheckNumber"`
	AuditFields
}

// BankStatement mirrors the bank_statements table.
type BankStatement struct {
	StatementID    string     `json:"statementID"`
	EntityID       string     `json:"entityID"`
	BankAccountID  string     `json:"bankAccountID"`
	PeriodID       string     `json:"periodID"`
	BeginningCents int64      `json:"beginningCents"`
	EndingCents    int64      `json:"endingCents"`
	Reconciled     bool       `json:"reconciled"`
	ReconciledAt   *time.Time `json:"reconciledAt,omitempty"`
	AuditFields
}

// BankTransaction mirrors the bank_transactions table. AmountCents is signed
// from the bank's perspective: deposits positive, withdrawals negative.
type BankTransaction struct {
	BankTxnID      string    `json:"bankTxnID"`
	StatementID    string    `json:"statementID"`
	TxnDate        time.Time `json:"txnDate"`
	AmountCents    int64     `json:"amountCents"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	MatchedLineIDs []string  `json:"matchedLineIDs,omitempty"`
	AuditFields
}
