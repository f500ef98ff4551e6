package models

import "time"

// CheckStatus indicates the lifecycle state of a printed check.
type CheckStatus string

const (
	CheckPrinted CheckStatus = "PRINTED"
	CheckVoided  CheckStatus = "VOIDED"
	CheckCleared CheckStatus = "CLEARED"
)

// Check mirrors the checks table.
type Check struct {
	CheckID             string      `json:"checkID"`
	EntityID            string      `json:"entityID"`
	BankAccountID       string      `json:"bankAccountID"`
	CheckNumber         int64       `json:"checkNumber"`
	Payee               string      `json:"payee"`
	AmountCents         int64       `json:"amountCents"`
	AmountWords         string      `json:"amountWords"`
	MICRLine            string      `json:"micrLine"`
	DisbursementEntryID string      `json:"disbursementEntryID"`
	Status              CheckStatus `json:"status"`
	AuditFields
}

// ACHBatch mirrors the ach_batches table.
type ACHBatch struct {
	BatchID          string    `json:"batchID"`
	EntityID         string    `json:"entityID"`
	BatchNumber      int64     `json:"batchNumber"`
	EffectiveDate    time.Time `json:"effectiveDate"`
	CompanyName      string    `json:"companyName"`
	CompanyID        string    `json:"companyID"`
	EntryCount       int       `json:"entryCount"`
	EntryHash        int64     `json:"entryHash"`
	TotalDebitCents  int64     `json:"totalDebitCents"`
	TotalCreditCents int64     `json:"totalCreditCents"`
	FileContents     []byte    `json:"-"`
	AuditFields
}

// ACHEntry mirrors the ach_entries table.
type ACHEntry struct {
	ACHEntryID    string `json:"achEntryID"`
	BatchID       string `json:"batchID"`
	TraceNumber   string `json:"traceNumber"`
	PayeeName     string `json:"payeeName"`
	RoutingNumber string `json:"routingNumber"`
	AccountNumber string `json:"accountNumber"`
	AmountCents   int64  `json:"amountCents"`
	IsDebit       bool   `json:"isDebit"`
	AuditFields
}
