package events

import "time"

const TimeEntryClosedTopic = "zeiterfassung.timeentry.closed.v1"

// TimeEntryClosedEvent is published after a successful clock-out so
// downstream consumers (dashboard cache, exports) can react without polling
// the entries table.
type TimeEntryClosedEvent struct {
	EventType  string    `json:"event_type"`
	EntryID    string    `json:"entry_id"`
	EmployeeID string    `json:"employee_id"`
	WorkedMs   int64     `json:"worked_ms"`
	PauseMs    int64     `json:"pause_ms"`
	IsVacation bool      `json:"is_vacation"`
	OccurredAt time.Time `json:"occurred_at"`
}
