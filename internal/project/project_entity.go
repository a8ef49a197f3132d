package project

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPlanned   = "PLANNED"
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
	StatusArchived  = "ARCHIVED"
)

// Archiving replaces hard deletion: an archived project keeps its time
// entries and files but accepts no further transitions.
type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Client      string
	Address     string
	Description string
	Status      string `gorm:"index;default:PLANNED"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
