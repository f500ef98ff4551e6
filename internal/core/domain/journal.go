package domain

import "time"

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// SourceKind tags the business origin of a journal entry. Every source kind
// produces one canonical JournalEntry before it reaches the single posting
// path in the journal engine.
type SourceKind string

const (
	SourceBill    SourceKind = "BILL"
	SourceInvoice SourceKind = "INVOICE"
	SourcePayroll SourceKind = "PAYROLL"
	SourceManual  SourceKind = "MANUAL"
	SourceReverse SourceKind = "REVERSAL"
	SourceClose   SourceKind = "PERIOD_CLOSE"
)

// JournalEntry represents a single, balanced financial event.
// Once Status is POSTED the content is immutable; a correction is always a
// linked reversal entry, never an edit.
type JournalEntry struct {
	EntryID          string        `json:"entryID"`     // Primary Key (UUID)
	EntityID         string        `json:"entityID"`    // FK -> entities.entity_id (NON-NULL)
	PeriodID         string        `json:"periodID"`    // FK -> fiscal_periods.period_id (NON-NULL)
	EntryDate        time.Time     `json:"entryDate"`   // Date the event occurred
	Memo             string        `json:"memo"`        // Nullable user description
	Status           EntryStatus   `json:"status"`      // DRAFT, POSTED or REVERSED
	SourceKind       SourceKind    `json:"sourceKind"`  // Business origin of the entry
	SourceRef        string        `json:"sourceRef"`   // e.g. bill id, payroll-run id, original entry id
	ReversedByID     *string       `json:"reversedByID,omitempty"`     // Set on the original when reversed
	ReversalOfID     *string       `json:"reversalOfID,omitempty"`     // Set on the reversal entry
	IdempotencyKey   string        `json:"idempotencyKey,omitempty"`   // Caller-supplied retry guard
	Lines            []JournalLine `json:"lines,omitempty"`
	TotalDebitsCents int64         `json:"totalDebitsCents"` // Equals total credits for any posted entry
	AuditFields
}

// JournalLine is a single line item within an entry, affecting one account.
// Exactly one of DebitCents/CreditCents is nonzero; amounts are integer
// cents and never floats.
type JournalLine struct {
	LineID      string `json:"lineID"`      // Primary Key (UUID)
	EntryID     string `json:"entryID"`     // FK -> journal_entries.entry_id (NON-NULL)
	AccountID   string `json:"accountID"`   // FK -> accounts.account_id (NON-NULL)
	DebitCents  int64  `json:"debitCents"`  // >= 0
	CreditCents int64  `json:"creditCents"` // >= 0
	ClassTag    string `json:"classTag"`    // Optional class/project tag (e.g. field or crop)
	Cleared     bool   `json:"cleared"`     // Set by bank reconciliation for cash-account lines
	AuditFields
}

// AmountCents returns the nonzero side of the line.
func (l JournalLine) AmountCents() int64 {
	if l.DebitCents != 0 {
		return l.DebitCents
	}
	return l.CreditCents
}

// IsDebit reports whether the line is a debit.
func (l JournalLine) IsDebit() bool {
	return l.DebitCents != 0
}
