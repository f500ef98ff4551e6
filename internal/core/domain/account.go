package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalSide is the side on which an account's balance normally sits.
type NormalSide string

const (
	NormalDebit  NormalSide = "DEBIT"
	NormalCredit NormalSide = "CREDIT"
)

// NormalSideFor returns the normal balance side for an account type.
func NormalSideFor(t AccountType) NormalSide {
	if t == Asset || t == Expense {
		return NormalDebit
	}
	return NormalCredit
}

// ControlType names a subsidiary-ledger control account role.
type ControlType string

const (
	ControlAccountsPayable    ControlType = "AP"
	ControlAccountsReceivable ControlType = "AR"
)

// Account represents one row in the chart of accounts.
// The hierarchy is a flat table keyed by id with parent references by id
// only; cycle detection happens at creation by walking the ancestor chain.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	EntityID        string      `json:"entityID"`        // FK -> entities.entity_id (NON-NULL, multi-entity support)
	Code            string      `json:"code"`            // Ledger code, unique per entity (e.g., "1010")
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	NormalSide      NormalSide  `json:"normalSide"`      // Derived from AccountType at creation
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing)
	Control         ControlType `json:"control"`         // Empty unless this is the AP/AR control account
	Description     string      `json:"description"`     // Nullable user description
	IsActive        bool        `json:"isActive"`        // Deactivated accounts reject new postings
	BalanceCents    int64       `json:"balanceCents"`    // Cached balance on the normal side; reconstructible from the entry log
	AuditFields
}
