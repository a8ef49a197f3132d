package vehicle

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	vehicleerrors "zeiterfassung/internal/vehicle/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=vehicle_service.go -destination=mock/vehicle_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateVehicleRequest) (VehicleResponse, error)
	GetAll(ctx context.Context) ([]VehicleResponse, error)
	Update(ctx context.Context, id string, req UpdateVehicleRequest) (VehicleResponse, error)
	Retire(ctx context.Context, id string) error

	RecordUsage(ctx context.Context, employeeID string, req CreateUsageRequest) (UsageResponse, error)
	ListUsages(ctx context.Context, filter UsageFilter) ([]UsageResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("vehicle.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vehicle.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateVehicleRequest) (VehicleResponse, error) {
	v := &Vehicle{
		ID:           uuid.New(),
		Name:         req.Name,
		LicensePlate: strings.ToUpper(strings.TrimSpace(req.LicensePlate)),
		Active:       true,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		s.logger.Error("create vehicle persist failed", zap.Error(err))
		return VehicleResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("vehicle created",
		zap.String("vehicle_id", v.ID.String()),
		zap.String("license_plate", v.LicensePlate),
	)
	return mapToResponse(*v), nil
}

func (s *service) GetAll(ctx context.Context) ([]VehicleResponse, error) {
	vehicles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		resp[i] = mapToResponse(v)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateVehicleRequest) (VehicleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return VehicleResponse{}, vehicleerrors.ErrInvalidVehicleID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return VehicleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v, err := qtx.FindByID(ctx, id)
	if err != nil {
		return VehicleResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.LicensePlate != nil {
		v.LicensePlate = strings.ToUpper(strings.TrimSpace(*req.LicensePlate))
	}
	if req.Active != nil {
		v.Active = *req.Active
	}

	if err := qtx.Update(ctx, v); err != nil {
		s.logger.Error("update vehicle persist failed", zap.String("vehicle_id", id), zap.Error(err))
		return VehicleResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return VehicleResponse{}, err
	}

	s.logger.Info("vehicle updated", zap.String("vehicle_id", id))
	return mapToResponse(*v), nil
}

func (s *service) Retire(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return vehicleerrors.ErrInvalidVehicleID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("vehicle retired", zap.String("vehicle_id", id))
	return nil
}

func (s *service) RecordUsage(ctx context.Context, employeeID string, req CreateUsageRequest) (UsageResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return UsageResponse{}, vehicleerrors.ErrInvalidEmployeeID
	}
	vehicleUUID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return UsageResponse{}, vehicleerrors.ErrInvalidVehicleID
	}

	var projectUUID *uuid.UUID
	if req.ProjectID != nil && *req.ProjectID != "" {
		parsed, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return UsageResponse{}, vehicleerrors.ErrInvalidProjectID
		}
		projectUUID = &parsed
	}

	usageDate, err := time.Parse("2006-01-02", req.UsageDate)
	if err != nil {
		return UsageResponse{}, vehicleerrors.ErrInvalidUsageDate
	}

	v, err := s.repo.FindByID(ctx, req.VehicleID)
	if err != nil {
		return UsageResponse{}, mapRepositoryError(err)
	}
	if !v.Active {
		return UsageResponse{}, vehicleerrors.ErrVehicleInactive
	}

	u := &VehicleUsage{
		ID:         uuid.New(),
		VehicleID:  vehicleUUID,
		EmployeeID: employeeUUID,
		ProjectID:  projectUUID,
		UsageDate:  usageDate,
		Hours:      req.Hours,
		Comment:    req.Comment,
	}

	if err := s.repo.CreateUsage(ctx, u); err != nil {
		s.logger.Error("record vehicle usage persist failed", zap.Error(err))
		return UsageResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("vehicle usage recorded",
		zap.String("vehicle_id", req.VehicleID),
		zap.String("employee_id", employeeID),
		zap.Float64("hours", req.Hours),
	)
	u.Vehicle = &VehicleRef{ID: v.ID, Name: v.Name, LicensePlate: v.LicensePlate}
	return mapUsageToResponse(*u), nil
}

func (s *service) ListUsages(ctx context.Context, filter UsageFilter) ([]UsageResponse, error) {
	usages, err := s.repo.FindUsages(ctx, filter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]UsageResponse, len(usages))
	for i, u := range usages {
		resp[i] = mapUsageToResponse(u)
	}
	return resp, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return vehicleerrors.ErrVehicleNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_vehicles_license_plate" {
			return vehicleerrors.ErrLicensePlateTaken
		}
	}
	if strings.Contains(strings.ToLower(err.Error()), "uq_vehicles_license_plate") {
		return vehicleerrors.ErrLicensePlateTaken
	}

	return err
}

func mapToResponse(v Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID.String(),
		Name:         v.Name,
		LicensePlate: v.LicensePlate,
		Active:       v.Active,
	}
}

func mapUsageToResponse(u VehicleUsage) UsageResponse {
	resp := UsageResponse{
		ID:         u.ID.String(),
		VehicleID:  u.VehicleID.String(),
		EmployeeID: u.EmployeeID.String(),
		UsageDate:  u.UsageDate.Format("2006-01-02"),
		Hours:      u.Hours,
		Comment:    u.Comment,
	}
	if u.ProjectID != nil {
		v := u.ProjectID.String()
		resp.ProjectID = &v
	}
	if u.Vehicle != nil {
		resp.VehicleName = u.Vehicle.Name
	}
	return resp
}
