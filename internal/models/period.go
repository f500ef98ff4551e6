package models

import "time"

// PeriodStatus indicates the fiscal period lifecycle state.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
	PeriodLocked PeriodStatus = "LOCKED"
)

// FiscalPeriod mirrors the fiscal_periods table.
type FiscalPeriod struct {
	PeriodID  string       `json:"periodID"`
	EntityID  string       `json:"entityID"`
	Name      string       `json:"name"`
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
	AuditFields
}
