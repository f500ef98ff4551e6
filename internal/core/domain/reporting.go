package domain

import "time"

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string      `json:"accountID"`
	Code        string      `json:"code"`
	AccountName string      `json:"accountName"`
	AccountType AccountType `json:"accountType"`
	DebitCents  int64       `json:"debitCents"`
	CreditCents int64       `json:"creditCents"`
}

// TrialBalance is the full trial balance for a period. TotalDebitCents must
// equal TotalCreditCents for any ledger whose entries all balanced.
type TrialBalance struct {
	PeriodID         string            `json:"periodID"`
	Rows             []TrialBalanceRow `json:"rows"`
	TotalDebitCents  int64             `json:"totalDebitCents"`
	TotalCreditCents int64             `json:"totalCreditCents"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string `json:"accountID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	NetCents  int64  `json:"netCents"`
}

// ProfitAndLoss represents a profit and loss report over a date range.
type ProfitAndLoss struct {
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	Revenue        []AccountAmount `json:"revenue"`
	Expenses       []AccountAmount `json:"expenses"`
	NetProfitCents int64           `json:"netProfitCents"`
}

// BalanceSheet represents a point-in-time balance sheet.
type BalanceSheet struct {
	AsOf                  time.Time       `json:"asOf"`
	Assets                []AccountAmount `json:"assets"`
	Liabilities           []AccountAmount `json:"liabilities"`
	Equity                []AccountAmount `json:"equity"`
	TotalAssetCents       int64           `json:"totalAssetCents"`
	TotalLiabilityCents   int64           `json:"totalLiabilityCents"`
	TotalEquityCents      int64           `json:"totalEquityCents"`
	RetainedEarningsCents int64           `json:"retainedEarningsCents"` // Current-period revenue minus expense folded into equity
}

// Balanced reports whether the accounting identity holds.
func (b BalanceSheet) Balanced() bool {
	return b.TotalAssetCents == b.TotalLiabilityCents+b.TotalEquityCents
}

// CashFlow is a cash flow statement computed from account-type deltas, not a
// separate ledger.
type CashFlow struct {
	From             time.Time `json:"from"`
	To               time.Time `json:"to"`
	OperatingCents   int64     `json:"operatingCents"`
	InvestingCents   int64     `json:"investingCents"`
	FinancingCents   int64     `json:"financingCents"`
	NetChangeCents   int64     `json:"netChangeCents"`
	OpeningCashCents int64     `json:"openingCashCents"`
	ClosingCashCents int64     `json:"closingCashCents"`
}
