package domain

import "time"

// DocumentStatus is the payment state of an AP bill or AR invoice.
type DocumentStatus string

const (
	DocumentOpen    DocumentStatus = "OPEN"
	DocumentPartial DocumentStatus = "PARTIAL"
	DocumentPaid    DocumentStatus = "PAID"
)

// Bill is an accounts-payable header. Every bill mutation is mirrored by a
// journal line against the entity's single AP control account.
type Bill struct {
	BillID        string         `json:"billID"`   // Primary Key (UUID)
	EntityID      string         `json:"entityID"` // FK -> entities.entity_id
	VendorID      string         `json:"vendorID"` // Counterparty reference
	AmountCents   int64          `json:"amountCents"`
	PaidCents     int64          `json:"paidCents"`
	DueDate       time.Time      `json:"dueDate"`
	Status        DocumentStatus `json:"status"`
	JournalID     string         `json:"journalID"` // Entry that recorded the bill
	Memo          string         `json:"memo"`
	AuditFields
}

// OpenCents returns the unpaid remainder of the bill.
func (b Bill) OpenCents() int64 {
	return b.AmountCents - b.PaidCents
}

// Invoice is an accounts-receivable header, the AR mirror of Bill.
type Invoice struct {
	InvoiceID   string         `json:"invoiceID"`  // Primary Key (UUID)
	EntityID    string         `json:"entityID"`   // FK -> entities.entity_id
	CustomerID  string         `json:"customerID"` // Counterparty reference
	AmountCents int64          `json:"amountCents"`
	PaidCents   int64          `json:"paidCents"`
	DueDate     time.Time      `json:"dueDate"`
	Status      DocumentStatus `json:"status"`
	JournalID   string         `json:"journalID"` // Entry that recorded the invoice
	Memo        string         `json:"memo"`
	AuditFields
}

// OpenCents returns the uncollected remainder of the invoice.
func (i Invoice) OpenCents() int64 {
	return i.AmountCents - i.PaidCents
}

// ControlMismatch is one discrepancy between a subsidiary document and its
// control account. Mismatches are surfaced, never auto-corrected: they signal
// a bug upstream.
type ControlMismatch struct {
	DocumentID   string `json:"documentID"`
	Counterparty string `json:"counterparty"`
	DeltaCents   int64  `json:"deltaCents"`
}

// ControlReconciliation is the result of tying a subsidiary ledger to its
// control account as of a date.
type ControlReconciliation struct {
	Control          ControlType       `json:"control"`
	AsOf             time.Time         `json:"asOf"`
	SubsidiaryCents  int64             `json:"subsidiaryCents"`
	ControlCents     int64             `json:"controlCents"`
	Mismatches       []ControlMismatch `json:"mismatches,omitempty"`
}

// Balanced reports whether the subsidiary ledger ties to the control account.
func (r ControlReconciliation) Balanced() bool {
	return r.SubsidiaryCents == r.ControlCents && len(r.Mismatches) == 0
}
