package dto

import (
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
)

// PrintCheckRequest defines the body for printing a check against a posted
// disbursement entry.
type PrintCheckRequest struct {
	BankAccountID       string `json:"bankAccountID" binding:"required"`
	Payee               string `json:"payee" binding:"required"`
	AmountCents         int64  `json:"amountCents" binding:"required,gt=0"`
	DisbursementEntryID string `json:"disbursementEntryID" binding:"required"`
}

// CheckResponse is the response shape of a printed check.
type CheckResponse struct {
	CheckID             string             `json:"checkID"`
	BankAccountID       string             `json:"bankAccountID"`
	CheckNumber         int64              `json:"checkNumber"`
	Payee               string             `json:"payee"`
	AmountCents         int64              `json:"amountCents"`
	AmountWords         string             `json:"amountWords"`
	MICRLine            string             `json:"micrLine"`
	DisbursementEntryID string             `json:"disbursementEntryID"`
	Status              domain.CheckStatus `json:"status"`
}

// ToCheckResponse maps a domain check.
func ToCheckResponse(c *domain.Check) CheckResponse {
	return CheckResponse{
		CheckID:             c.CheckID,
		BankAccountID:       c.BankAccountID,
		CheckNumber:         c.CheckNumber,
		Payee:               c.Payee,
		AmountCents:         c.AmountCents,
		AmountWords:         c.AmountWords,
		MICRLine:            c.MICRLine,
		DisbursementEntryID: c.DisbursementEntryID,
		Status:              c.Status,
	}
}

// GenerateACHRequest defines the body for generating a NACHA batch file.
type GenerateACHRequest struct {
	BankAccountID string              `json:"bankAccountID" binding:"required"`
	EffectiveDate time.Time           `json:"effectiveDate" binding:"required"`
	Description   string              `json:"description" binding:"required"`
	Payments      []domain.ACHPayment `json:"payments" binding:"required,min=1,dive"`
}

// ACHBatchResponse is the response shape of a generated batch (file bytes
// are downloaded separately).
type ACHBatchResponse struct {
	BatchID          string    `json:"batchID"`
	BatchNumber      int64     `json:"batchNumber"`
	EffectiveDate    time.Time `json:"effectiveDate"`
	EntryCount       int       `json:"entryCount"`
	EntryHash        int64     `json:"entryHash"`
	TotalDebitCents  int64     `json:"totalDebitCents"`
	TotalCreditCents int64     `json:"totalCreditCents"`
}

// ToACHBatchResponse maps a domain batch.
func ToACHBatchResponse(b *domain.ACHBatch) ACHBatchResponse {
	return ACHBatchResponse{
		BatchID:          b.BatchID,
		BatchNumber:      b.BatchNumber,
		EffectiveDate:    b.EffectiveDate,
		EntryCount:       b.EntryCount,
		EntryHash:        b.EntryHash,
		TotalDebitCents:  b.TotalDebitCents,
		TotalCreditCents: b.TotalCreditCents,
	}
}
