package models

import "time"

// DocumentStatus indicates how far a subledger document has been settled.
type DocumentStatus string

const (
	DocumentOpen    DocumentStatus = "OPEN"
	DocumentPartial DocumentStatus = "PARTIAL"
	DocumentPaid    DocumentStatus = "PAID"
)

// Bill mirrors the bills table.
type Bill struct {
	BillID      string         `json:"billID"`
	EntityID    string         `json:"entityID"`
	VendorID    string         `json:"vendorID"`
	AmountCents int64          `json:"amountCents"`
	PaidCents   int64          `json:"paidCents"`
	DueDate     time.Time      `json:"dueDate"`
	Status      DocumentStatus `json:"status"`
	JournalID   string         `json:"journalID"`
	Memo        string         `json:"memo"`
	AuditFields
}

// Invoice mirrors the invoices table.
type Invoice struct {
	InvoiceID   string         `json:"invoiceID"`
	EntityID    string         `json:"entityID"`
	CustomerID  string         `json:"customerID"`
	AmountCents int64          `json:"amountCents"`
	PaidCents   int64          `json:"paidCents"`
	DueDate     time.Time      `json:"dueDate"`
	Status      DocumentStatus `json:"status"`
	JournalID   string         `json:"journalID"`
	Memo        string         `json:"memo"`
	AuditFields
}
