package fileupload

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	KindSitePhoto    = "site_photo"
	KindInvoice      = "invoice"
	KindDeliveryNote = "delivery_note"
)

// FileUpload stores the captured image or document inline. Content is kept
// base64-encoded as received from the client form.
type FileUpload struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProjectID  *uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;index"`
	Kind       string     `gorm:"index"`
	FileName   string
	MimeType   string
	Data       string `gorm:"type:text"`
	Notes      string
	CreatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}
