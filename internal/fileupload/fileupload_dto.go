package fileupload

type UploadRequest struct {
	ProjectID *string `json:"project_id" binding:"omitempty,uuid"`
	Kind      string  `json:"kind" binding:"required"`
	FileName  string  `json:"file_name" binding:"required"`
	MimeType  string  `json:"mime_type" binding:"required"`
	Data      string  `json:"data" binding:"required"`
	Notes     string  `json:"notes"`
}

type FileResponse struct {
	ID         string  `json:"id"`
	ProjectID  *string `json:"project_id,omitempty"`
	EmployeeID string  `json:"employee_id"`
	Kind       string  `json:"kind"`
	FileName   string  `json:"file_name"`
	MimeType   string  `json:"mime_type"`
	Notes      string  `json:"notes,omitempty"`
	CreatedAt  string  `json:"created_at"`
	Data       string  `json:"data,omitempty"`
}

// ProjectFilesResponse aggregates everything attached to a project, split by
// kind: direct uploads plus attachment refs from time-entry documentation.
type ProjectFilesResponse struct {
	SitePhotos    []ProjectFileRef `json:"site_photos"`
	Invoices      []ProjectFileRef `json:"invoices"`
	DeliveryNotes []ProjectFileRef `json:"delivery_notes"`
}

type ProjectFileRef struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name,omitempty"`
	Source   string `json:"source"`
}

const (
	SourceDirect        = "direct"
	SourceDocumentation = "documentation"
)
