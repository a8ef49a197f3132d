package employee

type CreateEmployeeRequest struct {
	Username   string  `json:"username" binding:"required,min=3,max=64"`
	Password   string  `json:"password" binding:"required,min=8"`
	FullName   string  `json:"full_name" binding:"required"`
	HourlyRate float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	IsAdmin    bool    `json:"is_admin"`
	LeaveDays  *int    `json:"leave_days" binding:"omitempty,gte=0,lte=365"`
}

type UpdateEmployeeRequest struct {
	FullName   *string  `json:"full_name" binding:"omitempty"`
	Password   *string  `json:"password" binding:"omitempty,min=8"`
	HourlyRate *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	IsAdmin    *bool    `json:"is_admin"`
	LeaveDays  *int     `json:"leave_days" binding:"omitempty,gte=0,lte=365"`
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username,omitempty"`
	FullName   string  `json:"full_name"`
	HourlyRate float64 `json:"hourly_rate"`
	IsAdmin    bool    `json:"is_admin"`
	Active     bool    `json:"active"`
	LeaveTotal int     `json:"leave_total_days"`
	LeaveUsed  int     `json:"leave_used_days"`
	LeaveYear  int     `json:"leave_year"`
	CreatedAt  string  `json:"created_at,omitempty"`
}

// EmployeeOption is the trimmed shape served to selection dropdowns.
type EmployeeOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}
