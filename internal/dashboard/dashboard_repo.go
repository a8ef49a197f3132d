package dashboard

import (
	"context"

	"gorm.io/gorm"
)

// Counts backs the summary card. The heavy active-session listing lives on
// the time-entry repository; this one only aggregates.
type Repository interface {
	CountEmployees(ctx context.Context) (total, active int64, err error)
	CountPendingLeave(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountEmployees(ctx context.Context) (int64, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Table("employees").
		Where("deleted_at IS NULL").
		Count(&total).Error; err != nil {
		return 0, 0, err
	}

	var active int64
	if err := r.db.WithContext(ctx).
		Table("employees").
		Where("deleted_at IS NULL").
		Where("active = ?", true).
		Count(&active).Error; err != nil {
		return 0, 0, err
	}

	return total, active, nil
}

func (r *repository) CountPendingLeave(ctx context.Context) (int64, error) {
	var pending int64
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Where("status = ?", "PENDING").
		Where("deleted_at IS NULL").
		Count(&pending).Error
	return pending, err
}
