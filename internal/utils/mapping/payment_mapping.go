package mapping

import (
	"github.com/halverson/farmbooks/internal/core/domain"
	"github.com/halverson/farmbooks/internal/models"
)

// ToModelCheck converts a domain Check to a model Check
func ToModelCheck(d domain.Check) models.Check {
	return models.Check{
		CheckID:             d.CheckID,
		EntityID:            d.EntityID,
		BankAccountID:       d.BankAccountID,
		CheckNumber:         d.CheckNumber,
		Payee:               d.Payee,
		AmountCents:         d.AmountCents,
		AmountWords:         d.AmountWords,
		MICRLine:            d.MICRLine,
		DisbursementEntryID: d.DisbursementEntryID,
		Status:              models.CheckStatus(d.Status),
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCheck converts a model Check to a domain Check
func ToDomainCheck(m models.Check) domain.Check {
	return domain.Check{
		CheckID:             m.CheckID,
		EntityID:            m.EntityID,
		BankAccountID:       m.BankAccountID,
		CheckNumber:         m.CheckNumber,
		Payee:               m.Payee,
		AmountCents:         m.AmountCents,
		AmountWords:         m.AmountWords,
		MICRLine:            m.MICRLine,
		DisbursementEntryID: m.DisbursementEntryID,
		Status:              domain.CheckStatus(m.Status),
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelACHBatch converts a domain ACHBatch to a model ACHBatch
func ToModelACHBatch(d domain.ACHBatch) models.ACHBatch {
	return models.ACHBatch{
		BatchID:          d.BatchID,
		EntityID:         d.EntityID,
		BatchNumber:      d.BatchNumber,
		EffectiveDate:    d.EffectiveDate,
		CompanyName:      d.CompanyName,
		CompanyID:        d.CompanyID,
		EntryCount:       d.EntryCount,
		EntryHash:        d.EntryHash,
		TotalDebitCents:  d.TotalDebitCents,
		TotalCreditCents: d.TotalCreditCents,
		FileContents:     d.FileContents,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainACHBatch converts a model ACHBatch to a domain ACHBatch
func ToDomainACHBatch(m models.ACHBatch) domain.ACHBatch {
	return domain.ACHBatch{
		BatchID:          m.BatchID,
		EntityID:         m.EntityID,
		BatchNumber:      m.BatchNumber,
		EffectiveDate:    m.EffectiveDate,
		CompanyName:      m.CompanyName,
		CompanyID:        m.CompanyID,
		EntryCount:       m.EntryCount,
		EntryHash:        m.EntryHash,
		TotalDebitCents:  m.TotalDebitCents,
		TotalCreditCents: m.TotalCreditCents,
		FileContents:     m.FileContents,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelACHEntry converts a domain ACHEntry to a model ACHEntry
func ToModelACHEntry(d domain.ACHEntry) models.ACHEntry {
	return models.ACHEntry{
		ACHEntryID:    d.ACHEntryID,
		BatchID:       d.BatchID,
		TraceNumber:   d.TraceNumber,
		PayeeName:     d.PayeeName,
		RoutingNumber: d.RoutingNumber,
		AccountNumber: d.AccountNumber,
		AmountCents:   d.AmountCents,
		IsDebit:       d.IsDebit,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainACHEntry converts a model ACHEntry to a domain ACHEntry
func ToDomainACHEntry(m models.ACHEntry) domain.ACHEntry {
	return domain.ACHEntry{
		ACHEntryID:    m.ACHEntryID,
		BatchID:       m.BatchID,
		TraceNumber:   m.TraceNumber,
		PayeeName:     m.PayeeName,
		RoutingNumber: m.RoutingNumber,
		AccountNumber: m.AccountNumber,
		AmountCents:   m.AmountCents,
		IsDebit:       m.IsDebit,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
