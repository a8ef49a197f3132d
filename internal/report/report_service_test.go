package report

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"zeiterfassung/internal/employee"
	reporterrors "zeiterfassung/internal/report/errors"
	"zeiterfassung/internal/timeentry"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

type fakeTimeEntryRepo struct {
	findAllByEmployeeFn func(ctx context.Context, employeeID string, from, to *time.Time) ([]timeentry.TimeEntry, error)
}

func (f *fakeTimeEntryRepo) WithTx(tx *sql.Tx) timeentry.Repository { return f }
func (f *fakeTimeEntryRepo) Create(ctx context.Context, e *timeentry.TimeEntry) error {
	return nil
}
func (f *fakeTimeEntryRepo) FindByID(ctx context.Context, id string) (*timeentry.TimeEntry, error) {
	return nil, nil
}
func (f *fakeTimeEntryRepo) FindOpenByEmployee(ctx context.Context, employeeID string) (*timeentry.TimeEntry, error) {
	return nil, nil
}
func (f *fakeTimeEntryRepo) FindAllOpen(ctx context.Context) ([]timeentry.TimeEntry, error) {
	return nil, nil
}
func (f *fakeTimeEntryRepo) FindAllByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]timeentry.TimeEntry, error) {
	return f.findAllByEmployeeFn(ctx, employeeID, from, to)
}
func (f *fakeTimeEntryRepo) Update(ctx context.Context, e *timeentry.TimeEntry) error { return nil }
func (f *fakeTimeEntryRepo) UpdateDocumentation(ctx context.Context, id string, docs []timeentry.DocumentationEntry) error {
	return nil
}
func (f *fakeTimeEntryRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeEmployeeRepo struct {
	empl *employee.Employee
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.empl, nil
}
func (f *fakeEmployeeRepo) FindByUsername(ctx context.Context, username string) (*employee.Employee, error) {
	return f.empl, nil
}
func (f *fakeEmployeeRepo) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) CountOpenTimeEntries(ctx context.Context, id string) (int64, error) {
	return 0, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }

func closedEntry(day, inHour, outHour int, pauseMs int64) timeentry.TimeEntry {
	in := time.Date(2025, 8, day, inHour, 0, 0, 0, time.UTC)
	out := time.Date(2025, 8, day, outHour, 0, 0, 0, time.UTC)
	return timeentry.TimeEntry{
		ID:           uuid.New(),
		EmployeeID:   uuid.New(),
		ClockInTime:  in,
		ClockOutTime: &out,
		PauseTotalMs: pauseMs,
	}
}

func TestService_MonthlyTimesheet(t *testing.T) {
	emplID := uuid.New()
	emplRepo := &fakeEmployeeRepo{empl: &employee.Employee{
		ID:       emplID,
		Username: "mmeier",
		FullName: "Martin Meier",
	}}

	open := timeentry.TimeEntry{
		ID:          uuid.New(),
		EmployeeID:  emplID,
		ClockInTime: time.Date(2025, 8, 6, 7, 0, 0, 0, time.UTC),
	}

	terepo := &fakeTimeEntryRepo{
		findAllByEmployeeFn: func(ctx context.Context, employeeID string, from, to *time.Time) ([]timeentry.TimeEntry, error) {
			assert.Equal(t, emplID.String(), employeeID)
			if assert.NotNil(t, from) {
				assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), *from)
			}
			return []timeentry.TimeEntry{
				closedEntry(4, 7, 16, 2_700_000),
				closedEntry(5, 7, 15, 1_800_000),
				open,
			}, nil
		},
	}
	svc := NewService(terepo, emplRepo)

	buf, filename, err := svc.MonthlyTimesheet(context.Background(), emplID.String(), "2025-08")
	assert.NoError(t, err)
	assert.Equal(t, "timesheet_mmeier_2025-08.xlsx", filename)

	f, err := excelize.OpenReader(buf)
	assert.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Timesheet", "A1")
	assert.NoError(t, err)
	assert.Equal(t, "Martin Meier - 2025-08", title)

	// First closed entry: 9h minus 45min pause.
	worked, err := f.GetCellValue("Timesheet", "E4")
	assert.NoError(t, err)
	assert.Equal(t, "8.25", worked)

	// Open entry is skipped; the totals row follows the two closed rows.
	total, err := f.GetCellValue("Timesheet", "E7")
	assert.NoError(t, err)
	assert.Equal(t, "15.75", total)
}

func TestService_MonthlyTimesheetBadMonth(t *testing.T) {
	svc := NewService(&fakeTimeEntryRepo{}, &fakeEmployeeRepo{})

	_, _, err := svc.MonthlyTimesheet(context.Background(), uuid.NewString(), "08/2025")
	assert.ErrorIs(t, err, reporterrors.ErrInvalidMonth)
}

func TestService_MonthlyTimesheetEmptyMonth(t *testing.T) {
	emplRepo := &fakeEmployeeRepo{empl: &employee.Employee{ID: uuid.New(), Username: "mmeier"}}
	terepo := &fakeTimeEntryRepo{
		findAllByEmployeeFn: func(ctx context.Context, employeeID string, from, to *time.Time) ([]timeentry.TimeEntry, error) {
			return nil, nil
		},
	}
	svc := NewService(terepo, emplRepo)

	_, _, err := svc.MonthlyTimesheet(context.Background(), uuid.NewString(), "2025-08")
	assert.ErrorIs(t, err, reporterrors.ErrNoEntries)
}
