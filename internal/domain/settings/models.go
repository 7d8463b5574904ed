package settings

import (
	"math"
	"time"
)

// EmployeeSettings are the per-employee contractual parameters feeding the
// balance engine.
type EmployeeSettings struct {
	EmployeeID          string     `json:"employeeId"`
	HoursPerWeek        float64    `json:"hoursPerWeek"`
	DaysPerWeek         float64    `json:"daysPerWeek"`
	AnnualVacationDays  float64    `json:"annualVacationDays"`
	CarryOverDays       float64    `json:"carryOverDays"`
	CarryOverExpiresAt  *time.Time `json:"carryOverExpiresAt,omitempty"`
	EmploymentStartDate *time.Time `json:"employmentStartDate,omitempty"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// DailyMinutes is the contracted target per working day:
// round(hoursPerWeek / daysPerWeek * 60).
func (s EmployeeSettings) DailyMinutes() int {
	if s.DaysPerWeek <= 0 {
		return 0
	}
	return int(math.Round(s.HoursPerWeek / s.DaysPerWeek * 60))
}

// ChangeEntry is one row of the append-only settings change log.
type ChangeEntry struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Field      string    `json:"field"`
	OldValue   string    `json:"oldValue"`
	NewValue   string    `json:"newValue"`
	ChangedBy  string    `json:"changedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

const (
	ChangeFieldSettings    = "settings"
	ChangeFieldExpiredDays = "expired_days"
)
