package mapping

import (
	"github.com/halverson/farmbooks/internal/core/domain"
	"github.com/halverson/farmbooks/internal/models"
)

// ToModelBill converts a domain Bill to a model Bill
func ToModelBill(d domain.Bill) models.Bill {
	return models.Bill{
		BillID:      d.BillID,
		EntityID:    d.EntityID,
		VendorID:    d.VendorID,
		AmountCents: d.AmountCents,
		PaidCents:   d.PaidCents,
		DueDate:     d.DueDate,
		Status:      models.DocumentStatus(d.Status),
		JournalID:   d.JournalID,
		Memo:        d.Memo,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBill converts a model Bill to a domain Bill
func ToDomainBill(m models.Bill) domain.Bill {
	return domain.Bill{
		BillID:      m.BillID,
		EntityID:    m.EntityID,
		VendorID:    m.VendorID,
		AmountCents: m.AmountCents,
		PaidCents:   m.PaidCents,
		DueDate:     m.DueDate,
		Status:      domain.DocumentStatus(m.Status),
		JournalID:   m.JournalID,
		Memo:        m.Memo,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:   d.InvoiceID,
		EntityID:    d.EntityID,
		CustomerID:  d.CustomerID,
		AmountCents: d.AmountCents,
		PaidCents:   d.PaidCents,
		DueDate:     d.DueDate,
		Status:      models.DocumentStatus(d.Status),
		JournalID:   d.JournalID,
		Memo:        d.Memo,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:   m.InvoiceID,
		EntityID:    m.EntityID,
		CustomerID:  m.CustomerID,
		AmountCents: m.AmountCents,
		PaidCents:   m.PaidCents,
		DueDate:     m.DueDate,
		Status:      domain.DocumentStatus(m.Status),
		JournalID:   m.JournalID,
		Memo:        m.Memo,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
