package timeentry

import "time"

type Entry struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	WorkDate     time.Time  `json:"workDate"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	EndedAt      *time.Time `json:"endedAt,omitempty"`
	Minutes      int        `json:"minutes"`
	PauseMinutes int        `json:"pauseMinutes"`
	Note         string     `json:"note,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Correction is an administrative minute adjustment, applied once to the
// yearly balance.
type Correction struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Minutes    int       `json:"minutes"`
	Reason     string    `json:"reason"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
}
