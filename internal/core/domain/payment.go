package domain

import "time"

// CheckStatus is the lifecycle state of a printed check.
type CheckStatus string

const (
	CheckPrinted CheckStatus = "PRINTED"
	CheckVoided  CheckStatus = "VOIDED"
	CheckCleared CheckStatus = "CLEARED"
)

// Check is a printed payment instrument. Check numbers are sequential per
// bank account and never reused, even when voided.
type Check struct {
	CheckID             string      `json:"checkID"`       // Primary Key (UUID)
	EntityID            string      `json:"entityID"`      // FK -> entities.entity_id
	BankAccountID       string      `json:"bankAccountID"` // Ledger cash account the check draws on
	CheckNumber         int64       `json:"checkNumber"`
	Payee               string      `json:"payee"`
	AmountCents         int64       `json:"amountCents"`
	AmountWords         string      `json:"amountWords"` // Written amount line
	MICRLine            string      `json:"micrLine"`    // E-13B transit/account/check-number encoding
	DisbursementEntryID string      `json:"disbursementEntryID"` // Posted entry the check settles
	Status              CheckStatus `json:"status"`
	AuditFields
}

// ACHBatch is one generated NACHA batch, kept as an append-only audit
// artifact. Control totals are always recomputed from the entry records and
// must match them.
type ACHBatch struct {
	BatchID           string     `json:"batchID"`  // Primary Key (UUID)
	EntityID          string     `json:"entityID"` // FK -> entities.entity_id
	BatchNumber       int64      `json:"batchNumber"`
	EffectiveDate     time.Time  `json:"effectiveDate"`
	CompanyName       string     `json:"companyName"`
	CompanyID         string     `json:"companyID"`
	EntryCount        int        `json:"entryCount"`
	EntryHash         int64      `json:"entryHash"` // Last 10 digits of summed routing prefixes
	TotalDebitCents   int64      `json:"totalDebitCents"`
	TotalCreditCents  int64      `json:"totalCreditCents"`
	FileContents      []byte     `json:"-"` // The exact emitted NACHA bytes
	Entries           []ACHEntry `json:"entries,omitempty"`
	AuditFields
}

// ACHEntry is one entry-detail record within a batch.
type ACHEntry struct {
	ACHEntryID      string `json:"achEntryID"` // Primary Key (UUID)
	BatchID         string `json:"batchID"`    // FK -> ach_batches.batch_id
	TraceNumber     string `json:"traceNumber"`
	PayeeName       string `json:"payeeName"`
	RoutingNumber   string `json:"routingNumber"` // 9 digits, mod-10 validated
	AccountNumber   string `json:"accountNumber"`
	AmountCents     int64  `json:"amountCents"`
	IsDebit         bool   `json:"isDebit"` // Debit pulls funds from the payee; credit pushes
	AuditFields
}

// ACHPayment is the request shape for one payee in a batch.
type ACHPayment struct {
	PayeeName     string `json:"payeeName" binding:"required"`
	RoutingNumber string `json:"routingNumber" binding:"required,len=9"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	AmountCents   int64  `json:"amountCents" binding:"required,gt=0"`
	IsDebit       bool   `json:"isDebit"`
}
