package models

// AccountType distinguishes the five fundamental account categories.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account mirrors the accounts table.
type Account struct {
	AccountID       string      `json:"accountID"`
	EntityID        string      `json:"entityID"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	NormalSide      string      `json:"normalSide"`
	ParentAccountID string      `json:"parentAccountID,omitempty"`
	Control         string      `json:"control,omitempty"` // "" | AP | AR
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"`
	BalanceCents    int64       `json:"balanceCents"` // Cached; the posted log is authoritative
	AuditFields
}
