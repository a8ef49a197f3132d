package fileupload

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=fileupload_repo.go -destination=mock/fileupload_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, f *FileUpload) error
	FindByID(ctx context.Context, id string) (*FileUpload, error)
	FindAll(ctx context.Context, projectID, employeeID, kind string) ([]FileUpload, error)
	Delete(ctx context.Context, id string) error
	FindDocumentationByProject(ctx context.Context, projectID string) ([][]byte, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, f *FileUpload) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*FileUpload, error) {
	var f FileUpload
	err := r.db.WithContext(ctx).
		First(&f, "id = ?", id).Error
	return &f, err
}

func (r *repository) FindAll(ctx context.Context, projectID, employeeID, kind string) ([]FileUpload, error) {
	var files []FileUpload
	q := r.db.WithContext(ctx).
		// Listings never carry the payload, a single download fetches it.
		Omit("data").
		Order("created_at DESC")
	if projectID != "" {
		q = q.Where("project_id = ?", projectID)
	}
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	err := q.Find(&files).Error
	return files, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&FileUpload{}, "id = ?", id).Error
}

// FindDocumentationByProject pulls the raw documentation payloads recorded on
// the project's time entries. The caller decodes the attachment refs.
func (r *repository) FindDocumentationByProject(ctx context.Context, projectID string) ([][]byte, error) {
	var docs [][]byte
	err := r.db.WithContext(ctx).
		Table("time_entries").
		Select("documentation").
		Where("project_id = ?", projectID).
		Where("documentation IS NOT NULL").
		Where("deleted_at IS NULL").
		Scan(&docs).Error
	return docs, err
}
