package dto

import (
	"github.com/halverson/farmbooks/internal/core/domain"
)

// CreateAccountRequest defines the expected JSON body for creating an account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID string             `json:"parentAccountID"`
	Control         domain.ControlType `json:"control" binding:"omitempty,oneof=AP AR"`
	Description     string             `json:"description"`
}

// AccountResponse defines the JSON response for a single account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	EntityID        string             `json:"entityID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	NormalSide      domain.NormalSide  `json:"normalSide"`
	ParentAccountID string             `json:"parentAccountID,omitempty"`
	Control         domain.ControlType `json:"control,omitempty"`
	Description     string             `json:"description,omitempty"`
	IsActive        bool               `json:"isActive"`
	BalanceCents    int64              `json:"balanceCents"`
}

// ToAccountResponse maps a domain account to its response shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		EntityID:        a.EntityID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     a.AccountType,
		NormalSide:      a.NormalSide,
		ParentAccountID: a.ParentAccountID,
		Control:         a.Control,
		Description:     a.Description,
		IsActive:        a.IsActive,
		BalanceCents:    a.BalanceCents,
	}
}

// ListParams holds common pagination parameters.
type ListParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListAccountsResponse is a paginated account listing.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken *string           `json:"nextToken,omitempty"`
}
