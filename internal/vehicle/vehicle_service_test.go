package vehicle

import (
	"context"
	"database/sql"
	"testing"

	vehicleerrors "zeiterfassung/internal/vehicle/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn      func(ctx context.Context, v *Vehicle) error
	findAllFn     func(ctx context.Context) ([]Vehicle, error)
	findByIDFn    func(ctx context.Context, id string) (*Vehicle, error)
	updateFn      func(ctx context.Context, v *Vehicle) error
	deleteFn      func(ctx context.Context, id string) error
	createUsageFn func(ctx context.Context, u *VehicleUsage) error
	findUsagesFn  func(ctx context.Context, filter UsageFilter) ([]VehicleUsage, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                { return f }
func (f *fakeRepo) Create(ctx context.Context, v *Vehicle) error { return f.createFn(ctx, v) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Vehicle, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Vehicle, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, v *Vehicle) error { return f.updateFn(ctx, v) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error  { return f.deleteFn(ctx, id) }
func (f *fakeRepo) CreateUsage(ctx context.Context, u *VehicleUsage) error {
	return f.createUsageFn(ctx, u)
}
func (f *fakeRepo) FindUsages(ctx context.Context, filter UsageFilter) ([]VehicleUsage, error) {
	return f.findUsagesFn(ctx, filter)
}

func TestService_CreateNormalizesLicensePlate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	var stored *Vehicle
	repo := &fakeRepo{
		createFn: func(ctx context.Context, v *Vehicle) error {
			cp := *v
			stored = &cp
			return nil
		},
	}
	svc := NewService(db, repo)

	resp, err := svc.Create(context.Background(), CreateVehicleRequest{
		Name:         "Unimog",
		LicensePlate: "  hh-gl 1234 ",
	})

	assert.NoError(t, err)
	assert.Equal(t, "HH-GL 1234", resp.LicensePlate)
	assert.True(t, resp.Active)
	if assert.NotNil(t, stored) {
		assert.Equal(t, "HH-GL 1234", stored.LicensePlate)
	}
}

func TestService_CreateDuplicatePlateMapped(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, v *Vehicle) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_vehicles_license_plate"}
		},
	}
	svc := NewService(db, repo)

	_, err := svc.Create(context.Background(), CreateVehicleRequest{Name: "Unimog", LicensePlate: "HH-GL 1234"})
	assert.ErrorIs(t, err, vehicleerrors.ErrLicensePlateTaken)
}

func TestService_RecordUsage(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	vehicleID := uuid.New()
	employeeID := uuid.New()
	var storedUsage *VehicleUsage
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Vehicle, error) {
			return &Vehicle{ID: vehicleID, Name: "Unimog", Active: true}, nil
		},
		createUsageFn: func(ctx context.Context, u *VehicleUsage) error {
			cp := *u
			storedUsage = &cp
			return nil
		},
	}
	svc := NewService(db, repo)

	resp, err := svc.RecordUsage(context.Background(), employeeID.String(), CreateUsageRequest{
		VehicleID: vehicleID.String(),
		UsageDate: "2025-08-04",
		Hours:     6.5,
		Comment:   "Baustelle Teichanlage",
	})

	assert.NoError(t, err)
	assert.Equal(t, "2025-08-04", resp.UsageDate)
	assert.Equal(t, 6.5, resp.Hours)
	assert.Equal(t, "Unimog", resp.VehicleName)
	if assert.NotNil(t, storedUsage) {
		assert.Equal(t, employeeID, storedUsage.EmployeeID)
		assert.Nil(t, storedUsage.ProjectID)
	}
}

func TestService_RecordUsageRetiredVehicleRejected(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	vehicleID := uuid.New()
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Vehicle, error) {
			return &Vehicle{ID: vehicleID, Active: false}, nil
		},
		createUsageFn: func(ctx context.Context, u *VehicleUsage) error {
			t.Fatal("usage must not be written")
			return nil
		},
	}
	svc := NewService(db, repo)

	_, err := svc.RecordUsage(context.Background(), uuid.NewString(), CreateUsageRequest{
		VehicleID: vehicleID.String(),
		UsageDate: "2025-08-04",
		Hours:     4,
	})
	assert.ErrorIs(t, err, vehicleerrors.ErrVehicleInactive)
}

func TestService_RecordUsageBadDate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	_, err := svc.RecordUsage(context.Background(), uuid.NewString(), CreateUsageRequest{
		VehicleID: uuid.NewString(),
		UsageDate: "04.08.2025",
		Hours:     4,
	})
	assert.ErrorIs(t, err, vehicleerrors.ErrInvalidUsageDate)
}

func TestService_ListUsagesPassesFilter(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.NewString()
	repo := &fakeRepo{
		findUsagesFn: func(ctx context.Context, filter UsageFilter) ([]VehicleUsage, error) {
			assert.Equal(t, employeeID, filter.EmployeeID)
			return []VehicleUsage{{ID: uuid.New(), VehicleID: uuid.New(), EmployeeID: uuid.New()}}, nil
		},
	}
	svc := NewService(db, repo)

	resp, err := svc.ListUsages(context.Background(), UsageFilter{EmployeeID: employeeID})
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
}

func TestService_RetireMissingVehicle(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Vehicle, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Retire(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, vehicleerrors.ErrVehicleNotFound)
}
