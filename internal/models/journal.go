package models

import "time"

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry mirrors the journal_entries table.
type JournalEntry struct {
	EntryID          string      `json:"entryID"`
	EntityID         string      `json:"entityID"`
	PeriodID         string      `json:"periodID"`
	EntryDate        time.Time   `json:"entryDate"`
	Memo             string      `json:"memo"`
	Status           EntryStatus `json:"status"`
	SourceKind       string      `json:"sourceKind"`
	SourceRef        string      `json:"sourceRef"`
	ReversedByID     *string     `json:"reversedByID,omitempty"`
	ReversalOfID     *string     `json:"reversalOfID,omitempty"`
	IdempotencyKey   string      `json:"idempotencyKey,omitempty"`
	TotalDebitsCents int64       `json:"totalDebitsCents"`
	AuditFields
}

// JournalLine mirrors the journal_lines table. Exactly one of DebitCents or
// CreditCents is nonzero.
type JournalLine struct {
	LineID      string `json:"lineID"`
	EntryID     string `json:"entryID"`
	AccountID   string `json:"accountID"`
	DebitCents  int64  `json:"debitCents"`
	CreditCents int64  `json:"creditCents"`
	ClassTag    string `json:"classTag,omitempty"`
	Cleared     bool   `json:"cleared"`
	AuditFields

	// Joined columns used by account-scoped listings.
	EntryDate time.Time `json:"entryDate,omitempty"`
	EntryMemo string    `json:"entryMemo,omitempty"`
}
