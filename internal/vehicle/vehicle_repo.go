package vehicle

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=vehicle_repo.go -destination=mock/vehicle_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *Vehicle) error
	FindAll(ctx context.Context) ([]Vehicle, error)
	FindByID(ctx context.Context, id string) (*Vehicle, error)
	Update(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, id string) error

	CreateUsage(ctx context.Context, u *VehicleUsage) error
	FindUsages(ctx context.Context, filter UsageFilter) ([]VehicleUsage, error)
}

// UsageFilter narrows the usage log; zero values mean no constraint.
type UsageFilter struct {
	VehicleID  string
	EmployeeID string
	ProjectID  string
	From       *time.Time
	To         *time.Time
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

func (r *repository) Create(ctx context.Context, v *Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Vehicle, error) {
	var vehicles []Vehicle
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&vehicles).Error
	return vehicles, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Vehicle, error) {
	var v Vehicle
	err := r.db.WithContext(ctx).
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *repository) Update(ctx context.Context, v *Vehicle) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&Vehicle{}, "id = ?", id).Error
}

func (r *repository) CreateUsage(ctx context.Context, u *VehicleUsage) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindUsages(ctx context.Context, filter UsageFilter) ([]VehicleUsage, error) {
	var usages []VehicleUsage
	q := r.db.WithContext(ctx).
		Preload("Vehicle").
		Order("usage_date DESC")
	if filter.VehicleID != "" {
		q = q.Where("vehicle_id = ?", filter.VehicleID)
	}
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.ProjectID != "" {
		q = q.Where("project_id = ?", filter.ProjectID)
	}
	if filter.From != nil {
		q = q.Where("usage_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("usage_date <= ?", *filter.To)
	}
	err := q.Find(&usages).Error
	return usages, err
}
