package timeentry

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timeentry_repo.go -destination=mock/timeentry_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *TimeEntry) error
	FindByID(ctx context.Context, id string) (*TimeEntry, error)
	FindOpenByEmployee(ctx context.Context, employeeID string) (*TimeEntry, error)
	FindAllOpen(ctx context.Context) ([]TimeEntry, error)
	FindAllByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]TimeEntry, error)
	Update(ctx context.Context, e *TimeEntry) error
	UpdateDocumentation(ctx context.Context, id string, docs []DocumentationEntry) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&e).Error
	return &e, err
}

func (r *repository) FindOpenByEmployee(ctx context.Context, employeeID string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("clock_out_time IS NULL").
		First(&e).Error
	return &e, err
}

func (r *repository) FindAllOpen(ctx context.Context) ([]TimeEntry, error) {
	var rows []TimeEntry
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Project").
		Where("clock_out_time IS NULL").
		Order("clock_in_time ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]TimeEntry, error) {
	q := r.db.WithContext(ctx).
		Preload("Project").
		Where("employee_id = ?", employeeID)
	if from != nil {
		q = q.Where("clock_in_time >= ?", *from)
	}
	if to != nil {
		q = q.Where("clock_in_time < ?", *to)
	}

	var rows []TimeEntry
	err := q.Order("clock_in_time DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// UpdateDocumentation writes only the documentation column so attaching can
// never touch clock_out_time or pause_total_ms.
func (r *repository) UpdateDocumentation(ctx context.Context, id string, docs []DocumentationEntry) error {
	return r.db.WithContext(ctx).
		Model(&TimeEntry{}).
		Where("id = ?", id).
		Update("documentation", docs).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&TimeEntry{}).Error
}
