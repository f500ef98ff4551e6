package repositories

import (
	"context"
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
)

// PayableRepositoryFacade defines persistence for AP bills and AR invoices.
type PayableRepositoryFacade interface {
	SaveBill(ctx context.Context, bill domain.Bill) error
	FindBillByID(ctx context.Context, billID string) (*domain.Bill, error)
	// ListOpenBills returns bills with an unpaid remainder recorded on or
	// before asOf, oldest first.
	ListOpenBills(ctx context.Context, entityID string, asOf time.Time) ([]domain.Bill, error)
	// ApplyBillPayment increments paid_cents and rolls the document status
	// forward. Overpayment fails with ErrValidation.
	ApplyBillPayment(ctx context.Context, billID string, amountCents int64, userID string, at time.Time) error

	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListOpenInvoices(ctx context.Context, entityID string, asOf time.Time) ([]domain.Invoice, error)
	ApplyInvoicePayment(ctx context.Context, invoiceID string, amountCents int64, userID string, at time.Time) error
}
