package timeentry

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeEntry is the record of one work session. The partial unique index on
// employee_id enforces the single-open-session invariant at the store, so two
// near-simultaneous clock-ins cannot both succeed even when both pass the
// read-side precondition check.
type TimeEntry struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index;uniqueIndex:uq_time_entries_open_session,where:clock_out_time IS NULL AND deleted_at IS NULL"`
	ProjectID  *uuid.UUID `gorm:"column:project_id;type:uuid;index"`

	ClockInTime  time.Time  `gorm:"column:clock_in_time;type:timestamptz;not null"`
	ClockOutTime *time.Time `gorm:"column:clock_out_time;type:timestamptz"`

	ClockInLatitude   *float64 `gorm:"column:clock_in_latitude"`
	ClockInLongitude  *float64 `gorm:"column:clock_in_longitude"`
	ClockOutLatitude  *float64 `gorm:"column:clock_out_latitude"`
	ClockOutLongitude *float64 `gorm:"column:clock_out_longitude"`

	Notes string `gorm:"column:notes;type:text"`

	// Accumulated pause in milliseconds. Overwritten (never summed) by the
	// automatic break on clock-out when below the statutory amount.
	PauseTotalMs int64                `gorm:"column:pause_total_ms;not null;default:0"`
	PauseHistory []PauseInterval      `gorm:"column:pause_history;type:jsonb;serializer:json"`
	Docs         []DocumentationEntry `gorm:"column:documentation;type:jsonb;serializer:json"`

	IsVacation bool `gorm:"column:is_vacation;not null;default:false"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
	Project  *ProjectRef  `gorm:"foreignKey:ProjectID;references:ID"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

// PauseInterval is one live-tracked break during an open session.
type PauseInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DocumentationEntry is an append-only mid-shift or clock-out documentation
// record. Attachment references carry a mandatory kind tag, normalized at
// write time, so readers never guess from MIME types or file names.
type DocumentationEntry struct {
	ID          uuid.UUID       `json:"id"`
	Notes       string          `json:"notes"`
	Attachments []AttachmentRef `json:"attachments"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AttachmentRef points at a stored file upload.
type AttachmentRef struct {
	FileID uuid.UUID `json:"file_id"`
	Kind   string    `json:"kind"` // site_photo, invoice, delivery_note
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

type ProjectRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (ProjectRef) TableName() string {
	return "projects"
}
