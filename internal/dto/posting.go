package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillPaymentRequest is the already-validated business intent "pay this bill".
type BillPaymentRequest struct {
	BillID         string    `json:"billID"`
	AmountCents    int64     `json:"amountCents" binding:"required,gt=0"`
	BankAccountID  string    `json:"bankAccountID" binding:"required"`
	Date           time.Time `json:"date" binding:"required"`
	ByCheck        bool      `json:"byCheck"`
	IdempotencyKey string    `json:"idempotencyKey"`
}

// BillPaymentResult is the outcome of a bill payment: the posted entry and,
// when paid by check, the printed check.
type BillPaymentResult struct {
	Entry EntryResponse  `json:"entry"`
	Check *CheckResponse `json:"check,omitempty"`
}

// InvoicePaymentRequest is the intent "record a customer payment".
type InvoicePaymentRequest struct {
	InvoiceID      string    `json:"invoiceID"`
	AmountCents    int64     `json:"amountCents" binding:"required,gt=0"`
	BankAccountID  string    `json:"bankAccountID" binding:"required"`
	Date           time.Time `json:"date" binding:"required"`
	IdempotencyKey string    `json:"idempotencyKey"`
}

// PayrollEmployeeLine is one employee in a payroll run. Rates are decimal
// fractions (e.g. 0.22); all rounding to cents happens before any journal
// line is constructed.
type PayrollEmployeeLine struct {
	EmployeeID      string          `json:"employeeID" binding:"required"`
	GrossCents      int64           `json:"grossCents" binding:"required,gt=0"`
	WithholdingRate decimal.Decimal `json:"withholdingRate"`
	EmployerTaxRate decimal.Decimal `json:"employerTaxRate"`
	ClassTag        string          `json:"classTag"`
}

// PayrollRunRequest is the intent "post this payroll run".
type PayrollRunRequest struct {
	RunID                 string                `json:"runID" binding:"required"`
	Date                  time.Time             `json:"date" binding:"required"`
	BankAccountID         string                `json:"bankAccountID" binding:"required"`
	WageAccountID         string                `json:"wageAccountID" binding:"required"`
	WithholdingAccountID  string                `json:"withholdingAccountID" binding:"required"`
	EmployerTaxAccountID  string                `json:"employerTaxAccountID" binding:"required"`
	TaxExpenseAccountID   string                `json:"taxExpenseAccountID" binding:"required"`
	Employees             []PayrollEmployeeLine `json:"employees" binding:"required,min=1,dive"`
	IdempotencyKey        string                `json:"idempotencyKey"`
}

// ManualEntryRequest is the intent "post this manual journal entry".
type ManualEntryRequest struct {
	Date           time.Time           `json:"date" binding:"required"`
	Memo           string              `json:"memo" binding:"required"`
	Lines          []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
	IdempotencyKey string              `json:"idempotencyKey"`
}
