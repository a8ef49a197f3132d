package dashboard

type ActiveSessionResponse struct {
	EntryID      string   `json:"entry_id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name,omitempty"`
	ProjectID    *string  `json:"project_id,omitempty"`
	ProjectName  string   `json:"project_name,omitempty"`
	ClockInTime  string   `json:"clock_in_time"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

type SummaryResponse struct {
	ActiveSessions  int `json:"active_sessions"`
	TotalEmployees  int `json:"total_employees"`
	ActiveEmployees int `json:"active_employees"`
	PendingLeave    int `json:"pending_leave_requests"`
}
