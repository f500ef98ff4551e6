package dto

import (
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
)

// CreatePeriodRequest defines the body for creating a fiscal period.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// CreateMonthlyPeriodsRequest asks for twelve calendar-month periods.
type CreateMonthlyPeriodsRequest struct {
	Year int `json:"year" binding:"required,min=1900,max=9999"`
}

// PeriodResponse is the response shape of a fiscal period.
type PeriodResponse struct {
	PeriodID  string              `json:"periodID"`
	EntityID  string              `json:"entityID"`
	Name      string              `json:"name"`
	StartDate time.Time           `json:"startDate"`
	EndDate   time.Time           `json:"endDate"`
	Status    domain.PeriodStatus `json:"status"`
}

// ToPeriodResponse maps a domain period.
func ToPeriodResponse(p *domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:  p.PeriodID,
		EntityID:  p.EntityID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    p.Status,
	}
}
