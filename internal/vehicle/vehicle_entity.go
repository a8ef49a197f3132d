package vehicle

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vehicle struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	LicensePlate string `gorm:"uniqueIndex:uq_vehicles_license_plate"`
	Active       bool   `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// VehicleUsage is a plain log row. Hours are recorded as entered, no
// cross-checking against time entries.
type VehicleUsage struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	VehicleID  uuid.UUID  `gorm:"type:uuid;index"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;index"`
	ProjectID  *uuid.UUID `gorm:"type:uuid;index"`
	UsageDate  time.Time
	Hours      float64
	Comment    string
	CreatedAt  time.Time

	Vehicle *VehicleRef `gorm:"foreignKey:VehicleID"`
}

type VehicleRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	LicensePlate string
}

func (VehicleRef) TableName() string { return "vehicles" }
