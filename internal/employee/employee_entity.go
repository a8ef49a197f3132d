package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveBalance tracks the vacation allowance for the current year.
// UsedDays only grows through approved vacation requests.
type LeaveBalance struct {
	TotalDays int `gorm:"default:30"`
	UsedDays  int
	Year      int
}

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex:uq_employees_username"`
	PasswordHash string    `gorm:"column:password_hash"`
	FullName     string
	HourlyRate   float64
	IsAdmin      bool
	Active       bool         `gorm:"default:true"`
	LeaveBalance LeaveBalance `gorm:"embedded;embeddedPrefix:leave_"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
