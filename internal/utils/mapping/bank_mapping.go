package mapping

import (
	"github.com/halverson/farmbooks/internal/core/domain"
	"github.com/halverson/farmbooks/internal/models"
)

// ToModelBankAccount converts a domain BankAccount to a model BankAccount
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:   d.BankAccountID,
		EntityID:        d.EntityID,
		LedgerAccountID: d.LedgerAccountID,
		Name:            d.Name,
		RoutingNumber:   d.RoutingNumber,
		AccountNumber:   d.AccountNumber,
		NextCheckNumber: d.NextCheckNumber,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:   m.BankAccountID,
		EntityID:        m.EntityID,
		LedgerAccountID: m.LedgerAccountID,
		Name:            m.Name,
		RoutingNumber:   m.RoutingNumber,
		AccountNumber:   m.AccountNumber,
		NextCheckNumber: m.NextCheckNumber,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBankStatement converts a domain BankStatement to a model BankStatement
func ToModelBankStatement(d domain.BankStatement) models.BankStatement {
	return models.BankStatement{
		StatementID:    d.StatementID,
		EntityID:       d.EntityID,
		BankAccountID:  d.BankAccountID,
		PeriodID:       d.PeriodID,
		BeginningCents: d.BeginningCents,
		EndingCents:    d.EndingCents,
		Reconciled:     d.Reconciled,
		ReconciledAt:   d.ReconciledAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankStatement converts a model BankStatement to a domain BankStatement
func ToDomainBankStatement(m models.BankStatement) domain.BankStatement {
	return domain.BankStatement{
		StatementID:    m.StatementID,
		EntityID:       m.EntityID,
		BankAccountID:  m.BankAccountID,
		PeriodID:       m.PeriodID,
		BeginningCents: m.BeginningCents,
		EndingCents:    m.EndingCents,
		Reconciled:     m.Reconciled,
		ReconciledAt:   m.ReconciledAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBankTransaction converts a domain BankTransaction to a model BankTransaction
func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		BankTxnID:      d.BankTxnID,
		StatementID:    d.StatementID,
		TxnDate:        d.TxnDate,
		AmountCents:    d.AmountCents,
		Description:    d.Description,
		Status:         string(d.Status),
		MatchedLineIDs: d.MatchedLineIDs,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankTransaction converts a model BankTransaction to a domain BankTransaction
func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		BankTxnID:      m.BankTxnID,
		StatementID:    m.StatementID,
		TxnDate:        m.TxnDate,
		AmountCents:    m.AmountCents,
		Description:    m.Description,
		Status:         domain.MatchStatus(m.Status),
		MatchedLineIDs: m.MatchedLineIDs,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
