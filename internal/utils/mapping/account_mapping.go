package mapping

import (
	"github.com/halverson/farmbooks/internal/core/domain"
	"github.com/halverson/farmbooks/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		EntityID:        d.EntityID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		NormalSide:      string(d.NormalSide),
		ParentAccountID: d.ParentAccountID,
		Control:         string(d.Control),
		Description:     d.Description,
		IsActive:        d.IsActive,
		BalanceCents:    d.BalanceCents,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		EntityID:        m.EntityID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		NormalSide:      domain.NormalSide(m.NormalSide),
		ParentAccountID: m.ParentAccountID,
		Control:         domain.ControlType(m.Control),
		Description:     m.Description,
		IsActive:        m.IsActive,
		BalanceCents:    m.BalanceCents,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
