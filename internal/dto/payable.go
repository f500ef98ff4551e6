package dto

import (
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
)

// RecordBillRequest defines the body for recording an AP bill.
type RecordBillRequest struct {
	VendorID         string    `json:"vendorID" binding:"required"`
	AmountCents      int64     `json:"amountCents" binding:"required,gt=0"`
	DueDate          time.Time `json:"dueDate" binding:"required"`
	BillDate         time.Time `json:"billDate" binding:"required"`
	ExpenseAccountID string    `json:"expenseAccountID" binding:"required"`
	Memo             string    `json:"memo"`
}

// RecordInvoiceRequest defines the body for recording an AR invoice.
type RecordInvoiceRequest struct {
	CustomerID       string    `json:"customerID" binding:"required"`
	AmountCents      int64     `json:"amountCents" binding:"required,gt=0"`
	DueDate          time.Time `json:"dueDate" binding:"required"`
	InvoiceDate      time.Time `json:"invoiceDate" binding:"required"`
	RevenueAccountID string    `json:"revenueAccountID" binding:"required"`
	Memo             string    `json:"memo"`
}

// BillResponse is the response shape of a bill.
type BillResponse struct {
	BillID      string                `json:"billID"`
	VendorID    string                `json:"vendorID"`
	AmountCents int64                 `json:"amountCents"`
	PaidCents   int64                 `json:"paidCents"`
	DueDate     time.Time             `json:"dueDate"`
	Status      domain.DocumentStatus `json:"status"`
	JournalID   string                `json:"journalID"`
}

// ToBillResponse maps a domain bill.
func ToBillResponse(b *domain.Bill) BillResponse {
	return BillResponse{
		BillID:      b.BillID,
		VendorID:    b.VendorID,
		AmountCents: b.AmountCents,
		PaidCents:   b.PaidCents,
		DueDate:     b.DueDate,
		Status:      b.Status,
		JournalID:   b.JournalID,
	}
}

// InvoiceResponse is the response shape of an invoice.
type InvoiceResponse struct {
	InvoiceID   string                `json:"invoiceID"`
	CustomerID  string                `json:"customerID"`
	AmountCents int64                 `json:"amountCents"`
	PaidCents   int64                 `json:"paidCents"`
	DueDate     time.Time             `json:"dueDate"`
	Status      domain.DocumentStatus `json:"status"`
	JournalID   string                `json:"journalID"`
}

// ToInvoiceResponse maps a domain invoice.
func ToInvoiceResponse(i *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:   i.InvoiceID,
		CustomerID:  i.CustomerID,
		AmountCents: i.AmountCents,
		PaidCents:   i.PaidCents,
		DueDate:     i.DueDate,
		Status:      i.Status,
		JournalID:   i.JournalID,
	}
}
