package timeentry

type StartSessionRequest struct {
	ProjectID   string   `json:"project_id" binding:"required,uuid"`
	ClockInTime *string  `json:"clock_in_time"` // RFC3339, defaults to now
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Notes       *string  `json:"notes"`
}

type EndSessionRequest struct {
	ClockOutTime *string  `json:"clock_out_time"` // RFC3339, defaults to now
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Notes        *string  `json:"notes"` // empty keeps the stored notes
}

type AttachmentRefRequest struct {
	FileID string `json:"file_id" binding:"required,uuid"`
	Kind   string `json:"kind" binding:"required,oneof=site_photo invoice delivery_note"`
}

type AttachDocumentationRequest struct {
	Notes       string                 `json:"notes"`
	Attachments []AttachmentRefRequest `json:"attachments" binding:"dive"`
}

type RecordPauseRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// AdminUpdateRequest patches arbitrary fields on an entry, bypassing the
// single-open-session invariant. Callers own not re-introducing a duplicate
// open session.
type AdminUpdateRequest struct {
	ProjectID    *string  `json:"project_id"`
	ClockInTime  *string  `json:"clock_in_time"`
	ClockOutTime *string  `json:"clock_out_time"`
	Notes        *string  `json:"notes"`
	PauseTotalMs *int64   `json:"pause_total_ms"`
	IsVacation   *bool    `json:"is_vacation"`
}

type DocumentationResponse struct {
	ID          string                  `json:"id"`
	Notes       string                  `json:"notes"`
	Attachments []AttachmentRefResponse `json:"attachments"`
	CreatedBy   string                  `json:"created_by"`
	CreatedAt   string                  `json:"created_at"`
}

type AttachmentRefResponse struct {
	FileID string `json:"file_id"`
	Kind   string `json:"kind"`
}

type PauseIntervalResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type TimeEntryResponse struct {
	ID                string                  `json:"id"`
	EmployeeID        string                  `json:"employee_id"`
	EmployeeName      string                  `json:"employee_name,omitempty"`
	ProjectID         *string                 `json:"project_id,omitempty"`
	ProjectName       string                  `json:"project_name,omitempty"`
	ClockInTime       string                  `json:"clock_in_time"`
	ClockOutTime      *string                 `json:"clock_out_time,omitempty"`
	ClockInLatitude   *float64                `json:"clock_in_latitude,omitempty"`
	ClockInLongitude  *float64                `json:"clock_in_longitude,omitempty"`
	ClockOutLatitude  *float64                `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64                `json:"clock_out_longitude,omitempty"`
	Notes             string                  `json:"notes,omitempty"`
	PauseTotalMs      int64                   `json:"pause_total_ms"`
	PauseHistory      []PauseIntervalResponse `json:"pause_history,omitempty"`
	Documentation     []DocumentationResponse `json:"documentation,omitempty"`
	IsVacation        bool                    `json:"is_vacation"`
}

// EndSessionResult carries the closed entry plus the automatic-break report
// (nil when no deduction was applied) for user-facing messaging.
type EndSessionResult struct {
	Entry     TimeEntryResponse `json:"entry"`
	AutoBreak *BreakReport      `json:"auto_break,omitempty"`
}
