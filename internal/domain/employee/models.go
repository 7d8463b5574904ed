package employee

import "time"

type Employee struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	ManagerID string    `json:"managerId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
