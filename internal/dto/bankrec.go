package dto

import (
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
)

// ImportTransactionRequest is one statement row in an import.
type ImportTransactionRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	AmountCents int64     `json:"amountCents" binding:"required"`
	Description string    `json:"description"`
}

// ImportStatementRequest defines the body for importing a bank statement.
type ImportStatementRequest struct {
	BankAccountID  string                     `json:"bankAccountID" binding:"required"`
	PeriodID       string                     `json:"periodID" binding:"required"`
	BeginningCents int64                      `json:"beginningCents"`
	EndingCents    int64                      `json:"endingCents"`
	Transactions   []ImportTransactionRequest `json:"transactions" binding:"required,min=1,dive"`
}

// StatementResponse is the response shape of a bank statement.
type StatementResponse struct {
	StatementID    string     `json:"statementID"`
	BankAccountID  string     `json:"bankAccountID"`
	PeriodID       string     `json:"periodID"`
	BeginningCents int64      `json:"beginningCents"`
	EndingCents    int64      `json:"endingCents"`
	Reconciled     bool       `json:"reconciled"`
	ReconciledAt   *time.Time `json:"reconciledAt,omitempty"`
}

// ToStatementResponse maps a domain statement.
func ToStatementResponse(s *domain.BankStatement) StatementResponse {
	return StatementResponse{
		StatementID:    s.StatementID,
		BankAccountID:  s.BankAccountID,
		PeriodID:       s.PeriodID,
		BeginningCents: s.BeginningCents,
		EndingCents:    s.EndingCents,
		Reconciled:     s.Reconciled,
		ReconciledAt:   s.ReconciledAt,
	}
}

// MatchResultRow is the matching outcome for one bank transaction.
type MatchResultRow struct {
	BankTxnID      string             `json:"bankTxnID"`
	Status         domain.MatchStatus `json:"status"`
	MatchedLineIDs []string           `json:"matchedLineIDs,omitempty"`
}

// MatchingResult summarizes one matcher run over a statement.
type MatchingResult struct {
	StatementID string           `json:"statementID"`
	Matched     int              `json:"matched"`
	Flagged     int              `json:"flagged"`
	Unmatched   int              `json:"unmatched"`
	Rows        []MatchResultRow `json:"rows"`
}
