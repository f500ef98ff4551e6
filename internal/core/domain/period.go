package domain

import "time"

// PeriodStatus is the lifecycle state of a fiscal period.
// Transitions are OPEN -> CLOSED -> LOCKED, monotonic except for the single
// privileged CLOSED -> OPEN reopen path. LOCKED is terminal.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
	PeriodLocked PeriodStatus = "LOCKED"
)

// FiscalPeriod is an accounting time window. Entries may post only into an
// OPEN period.
type FiscalPeriod struct {
	PeriodID  string       `json:"periodID"` // Primary Key (UUID)
	EntityID  string       `json:"entityID"` // FK -> entities.entity_id (NON-NULL)
	Name      string       `json:"name"`     // e.g. "2026-03"
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"` // Inclusive
	Status    PeriodStatus `json:"status"`
	AuditFields
}

// Contains reports whether d falls inside the period (date precision).
func (p FiscalPeriod) Contains(d time.Time) bool {
	day := d.Truncate(24 * time.Hour)
	return !day.Before(p.StartDate.Truncate(24*time.Hour)) && !day.After(p.EndDate.Truncate(24*time.Hour))
}
