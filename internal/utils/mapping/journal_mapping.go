package mapping

import (
	"github.com/halverson/farmbooks/internal/core/domain"
	"github.com/halverson/farmbooks/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		EntityID:         d.EntityID,
		PeriodID:         d.PeriodID,
		EntryDate:        d.EntryDate,
		Memo:             d.Memo,
		Status:           models.EntryStatus(d.Status),
		SourceKind:       string(d.SourceKind),
		SourceRef:        d.SourceRef,
		ReversedByID:     d.ReversedByID,
		ReversalOfID:     d.ReversalOfID,
		IdempotencyKey:   d.IdempotencyKey,
		TotalDebitsCents: d.TotalDebitsCents,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		EntityID:         m.EntityID,
		PeriodID:         m.PeriodID,
		EntryDate:        m.EntryDate,
		Memo:             m.Memo,
		Status:           domain.EntryStatus(m.Status),
		SourceKind:       domain.SourceKind(m.SourceKind),
		SourceRef:        m.SourceRef,
		ReversedByID:     m.ReversedByID,
		ReversalOfID:     m.ReversalOfID,
		IdempotencyKey:   m.IdempotencyKey,
		TotalDebitsCents: m.TotalDebitsCents,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		DebitCents:  d.DebitCents,
		CreditCents: d.CreditCents,
		ClassTag:    d.ClassTag,
		Cleared:     d.Cleared,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		DebitCents:  m.DebitCents,
		CreditCents: m.CreditCents,
		ClassTag:    m.ClassTag,
		Cleared:     m.Cleared,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
