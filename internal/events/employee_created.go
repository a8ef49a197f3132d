package events

import "time"

const EmployeeCreatedTopic = "zeiterfassung.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	Username   string    `json:"username"`
	IsAdmin    bool      `json:"is_admin"`
	OccurredAt time.Time `json:"occurred_at"`
}
