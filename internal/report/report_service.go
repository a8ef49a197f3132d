package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"zeiterfassung/internal/employee"
	reporterrors "zeiterfassung/internal/report/errors"
	"zeiterfassung/internal/timeentry"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	// MonthlyTimesheet renders one employee month as an xlsx workbook.
	// Returns the file content and a suggested filename.
	MonthlyTimesheet(ctx context.Context, employeeID, month string) (*bytes.Buffer, string, error)
}

type service struct {
	timeentry timeentry.Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(timeentryRepo timeentry.Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{timeentry: timeentryRepo, employees: employeeRepo, logger: l}
}

func (s *service) MonthlyTimesheet(ctx context.Context, employeeID, month string) (*bytes.Buffer, string, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, "", reporterrors.ErrInvalidEmployeeID
	}
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, "", reporterrors.ErrInvalidMonth
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	empl, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, "", reporterrors.ErrInvalidEmployeeID
	}

	entries, err := s.timeentry.FindAllByEmployee(ctx, employeeID, &monthStart, &monthEnd)
	if err != nil {
		s.logger.Error("load timesheet entries failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", reporterrors.ErrNoEntries
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Timesheet"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "C", 10)
	f.SetColWidth(sheetName, "D", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 10)
	f.SetColWidth(sheetName, "G", "G", 28)

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - %s", empl.FullName, month))

	headers := []string{"Date", "Clock In", "Clock Out", "Pause (min)", "Worked (h)", "Vacation", "Project"}
	for i, hv := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, col+"3", hv)
	}

	row := 4
	var totalWorked time.Duration
	var totalPauseMin int64
	for _, e := range entries {
		// Open entries are skipped, the month is only reported for closed work.
		if e.ClockOutTime == nil {
			continue
		}

		pause := time.Duration(e.PauseTotalMs) * time.Millisecond
		worked := e.ClockOutTime.Sub(e.ClockInTime) - pause
		if worked < 0 {
			worked = 0
		}
		totalWorked += worked
		totalPauseMin += e.PauseTotalMs / 60000

		cell := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+cell, e.ClockInTime.Format("2006-01-02"))
		f.SetCellValue(sheetName, "B"+cell, e.ClockInTime.Format("15:04"))
		f.SetCellValue(sheetName, "C"+cell, e.ClockOutTime.Format("15:04"))
		f.SetCellValue(sheetName, "D"+cell, e.PauseTotalMs/60000)
		f.SetCellValue(sheetName, "E"+cell, roundHours(worked))
		if e.IsVacation {
			f.SetCellValue(sheetName, "F"+cell, "X")
		}
		if e.Project != nil {
			f.SetCellValue(sheetName, "G"+cell, e.Project.Name)
		}
		row++
	}

	totalCell := fmt.Sprintf("%d", row+1)
	f.SetCellValue(sheetName, "A"+totalCell, "Total")
	f.SetCellValue(sheetName, "D"+totalCell, totalPauseMin)
	f.SetCellValue(sheetName, "E"+totalCell, roundHours(totalWorked))

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write timesheet workbook failed", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("timesheet_%s_%s.xlsx", empl.Username, month)
	s.logger.Info("timesheet generated",
		zap.String("employee_id", employeeID),
		zap.String("month", month),
		zap.Int("rows", row-4),
	)
	return buf, filename, nil
}

func roundHours(d time.Duration) float64 {
	return float64(d.Round(time.Minute)) / float64(time.Hour)
}
