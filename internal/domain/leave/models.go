package leave

import "time"

type Request struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employeeId"`
	Type           string    `json:"type"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Status         string    `json:"status"`
	Reason         string    `json:"reason,omitempty"`
	MinutesCounted int       `json:"minutesCounted,omitempty"`
	DecidedBy      string    `json:"decidedBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Holiday struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Name   string    `json:"name"`
	Region string    `json:"region,omitempty"`
}
