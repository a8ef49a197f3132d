package timeentry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"zeiterfassung/internal/events"
	"zeiterfassung/internal/messaging/kafka"
	"zeiterfassung/internal/shared/contextutil"
	timeentryerrors "zeiterfassung/internal/timeentry/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Actor identifies the authenticated caller for ownership checks on entry
// mutations. Admins may act on any entry.
type Actor struct {
	EmployeeID string
	IsAdmin    bool
}

func (a Actor) mayModify(e *TimeEntry) bool {
	return a.IsAdmin || e.EmployeeID.String() == a.EmployeeID
}

//go:generate mockgen -source=timeentry_service.go -destination=mock/timeentry_service_mock.go -package=mock
type Service interface {
	StartSession(ctx context.Context, employeeID string, req StartSessionRequest) (TimeEntryResponse, error)
	EndSession(ctx context.Context, id string, actor Actor, req EndSessionRequest) (EndSessionResult, error)
	OpenSession(ctx context.Context, employeeID string) (TimeEntryResponse, error)
	AttachDocumentation(ctx context.Context, id string, actor Actor, req AttachDocumentationRequest) (TimeEntryResponse, error)
	RecordPause(ctx context.Context, id string, actor Actor, req RecordPauseRequest) (TimeEntryResponse, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]TimeEntryResponse, error)
	RecordVacationDays(ctx context.Context, tx *sql.Tx, employeeID string, days []time.Time) error
	AdminUpdate(ctx context.Context, id string, req AdminUpdateRequest) (TimeEntryResponse, error)
	AdminDelete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("timeentry.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeentry.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) StartSession(ctx context.Context, employeeID string, req StartSessionRequest) (TimeEntryResponse, error) {
	s.logger.Debug("start session requested",
		zap.String("employee_id", employeeID),
		zap.String("project_id", req.ProjectID),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEmployeeID
	}
	projectUUID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidProjectID
	}

	clockIn := time.Now().UTC()
	if req.ClockInTime != nil && *req.ClockInTime != "" {
		clockIn, err = parseTimestamp(*req.ClockInTime)
		if err != nil {
			return TimeEntryResponse{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("start session begin tx failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindOpenByEmployee(ctx, employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("start session open check failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}
	if err == nil && existing != nil {
		s.logger.Warn("start session rejected, session already open",
			zap.String("employee_id", employeeID),
			zap.String("open_entry_id", existing.ID.String()),
		)
		return TimeEntryResponse{}, timeentryerrors.ErrDuplicateSession
	}

	notes := ""
	if req.Notes != nil {
		notes = *req.Notes
	}

	e := &TimeEntry{
		ID:               uuid.New(),
		EmployeeID:       employeeUUID,
		ProjectID:        &projectUUID,
		ClockInTime:      clockIn,
		ClockInLatitude:  req.Latitude,
		ClockInLongitude: req.Longitude,
		Notes:            notes,
		PauseTotalMs:     0,
	}

	// The partial unique index backs this insert up: if another device won
	// the race between the check above and here, the insert fails with a
	// unique violation and is mapped to the duplicate-session error.
	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Warn("start session persist failed", zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("start session commit failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}

	s.logger.Info("session started",
		zap.String("entry_id", e.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*e), nil
}

func (s *service) EndSession(ctx context.Context, id string, actor Actor, req EndSessionRequest) (EndSessionResult, error) {
	s.logger.Debug("end session requested", zap.String("entry_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return EndSessionResult{}, timeentryerrors.ErrInvalidEntryID
	}

	clockOut := time.Now().UTC()
	if req.ClockOutTime != nil && *req.ClockOutTime != "" {
		parsed, err := parseTimestamp(*req.ClockOutTime)
		if err != nil {
			return EndSessionResult{}, err
		}
		clockOut = parsed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("end session begin tx failed", zap.Error(err))
		return EndSessionResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EndSessionResult{}, timeentryerrors.ErrEntryNotFound
		}
		s.logger.Error("end session lookup failed", zap.Error(err))
		return EndSessionResult{}, err
	}
	if !actor.mayModify(e) {
		return EndSessionResult{}, timeentryerrors.ErrNotEntryOwner
	}
	if e.ClockOutTime != nil {
		return EndSessionResult{}, timeentryerrors.ErrAlreadyClosed
	}

	elapsed := clockOut.Sub(e.ClockInTime)
	if elapsed < 0 {
		return EndSessionResult{}, timeentryerrors.ErrClockOutBeforeClockIn
	}

	// The statutory break overwrites the accumulated pause when the session
	// falls short of the required minimum; pauses already at or above it are
	// kept untouched and no report is issued.
	statutory, report := AutoBreak(elapsed)
	if report != nil && e.PauseTotalMs < statutory.Milliseconds() {
		e.PauseTotalMs = statutory.Milliseconds()
	} else {
		report = nil
	}

	e.ClockOutTime = &clockOut
	if req.Notes != nil && *req.Notes != "" {
		e.Notes = *req.Notes
	}
	if req.Latitude != nil {
		e.ClockOutLatitude = req.Latitude
	}
	if req.Longitude != nil {
		e.ClockOutLongitude = req.Longitude
	}

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("end session persist failed", zap.String("entry_id", id), zap.Error(err))
		return EndSessionResult{}, err
	}

	if s.outbox != nil {
		rid := contextutil.GetRequestID(ctx)
		event := events.TimeEntryClosedEvent{
			EventType:  "time_entry.closed",
			EntryID:    e.ID.String(),
			EmployeeID: e.EmployeeID.String(),
			WorkedMs:   elapsed.Milliseconds() - e.PauseTotalMs,
			PauseMs:    e.PauseTotalMs,
			IsVacation: e.IsVacation,
			OccurredAt: clockOut,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EndSessionResult{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "time_entry",
			AggregateID:   e.ID.String(),
			EventType:     event.EventType,
			Topic:         events.TimeEntryClosedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create time entry outbox persist failed",
				zap.String("entry_id", e.ID.String()),
				zap.Error(err),
			)
			return EndSessionResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("end session commit failed", zap.String("entry_id", id), zap.Error(err))
		return EndSessionResult{}, err
	}

	s.logger.Info("session ended",
		zap.String("entry_id", id),
		zap.Int64("pause_total_ms", e.PauseTotalMs),
		zap.Bool("auto_break", report != nil),
	)
	return EndSessionResult{Entry: mapToResponse(*e), AutoBreak: report}, nil
}

func (s *service) OpenSession(ctx context.Context, employeeID string) (TimeEntryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindOpenByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, timeentryerrors.ErrNoOpenSession
		}
		return TimeEntryResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) AttachDocumentation(ctx context.Context, id string, actor Actor, req AttachDocumentationRequest) (TimeEntryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEntryID
	}
	actorUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, timeentryerrors.ErrEntryNotFound
		}
		return TimeEntryResponse{}, err
	}
	if !actor.mayModify(e) {
		return TimeEntryResponse{}, timeentryerrors.ErrNotEntryOwner
	}

	attachments := make([]AttachmentRef, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		fileUUID, err := uuid.Parse(a.FileID)
		if err != nil {
			return TimeEntryResponse{}, timeentryerrors.ErrInvalidEntryID
		}
		attachments = append(attachments, AttachmentRef{FileID: fileUUID, Kind: a.Kind})
	}

	doc := DocumentationEntry{
		ID:          uuid.New(),
		Notes:       req.Notes,
		Attachments: attachments,
		CreatedBy:   actorUUID,
		CreatedAt:   time.Now().UTC(),
	}
	docs := append(e.Docs, doc)

	// Only the documentation column is written; clock-out and pause data
	// stay untouched regardless of the entry's state.
	if err := s.repo.UpdateDocumentation(ctx, id, docs); err != nil {
		s.logger.Error("attach documentation persist failed", zap.String("entry_id", id), zap.Error(err))
		return TimeEntryResponse{}, err
	}

	s.logger.Info("documentation attached",
		zap.String("entry_id", id),
		zap.Int("attachments", len(attachments)),
	)
	e.Docs = docs
	return mapToResponse(*e), nil
}

func (s *service) RecordPause(ctx context.Context, id string, actor Actor, req RecordPauseRequest) (TimeEntryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEntryID
	}
	start, err := parseTimestamp(req.Start)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	end, err := parseTimestamp(req.End)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	if !end.After(start) {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidPauseInterval
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, timeentryerrors.ErrEntryNotFound
		}
		return TimeEntryResponse{}, err
	}
	if !actor.mayModify(e) {
		return TimeEntryResponse{}, timeentryerrors.ErrNotEntryOwner
	}
	if e.ClockOutTime != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrEntryClosed
	}

	e.PauseHistory = append(e.PauseHistory, PauseInterval{Start: start, End: end})
	e.PauseTotalMs += end.Sub(start).Milliseconds()

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("record pause persist failed", zap.String("entry_id", id), zap.Error(err))
		return TimeEntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TimeEntryResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]TimeEntryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, timeentryerrors.ErrInvalidEmployeeID
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	res := make([]TimeEntryResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

// RecordVacationDays creates one closed, vacation-flagged entry per day.
// Used by leave approval; the entries carry no project and a standard
// eight-hour span so reports and timesheets pick them up like worked days.
// A non-nil tx joins the caller's transaction, which then owns the commit.
func (s *service) RecordVacationDays(ctx context.Context, tx *sql.Tx, employeeID string, days []time.Time) error {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return timeentryerrors.ErrInvalidEmployeeID
	}

	ownTx := tx == nil
	if ownTx {
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()
	}

	qtx := s.repo.WithTx(tx)
	for _, day := range days {
		start := time.Date(day.Year(), day.Month(), day.Day(), 8, 0, 0, 0, time.UTC)
		end := start.Add(8 * time.Hour)
		e := &TimeEntry{
			ID:           uuid.New(),
			EmployeeID:   employeeUUID,
			ClockInTime:  start,
			ClockOutTime: &end,
			IsVacation:   true,
		}
		if err := qtx.Create(ctx, e); err != nil {
			s.logger.Error("record vacation day failed",
				zap.String("employee_id", employeeID),
				zap.Time("day", day),
				zap.Error(err),
			)
			return mapRepositoryError(err)
		}
	}
	if ownTx {
		return tx.Commit()
	}
	return nil
}

func (s *service) AdminUpdate(ctx context.Context, id string, req AdminUpdateRequest) (TimeEntryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEntryID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, timeentryerrors.ErrEntryNotFound
		}
		return TimeEntryResponse{}, err
	}

	// Correction of historical records: no open-session or state checks.
	if req.ProjectID != nil {
		projectUUID, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return TimeEntryResponse{}, timeentryerrors.ErrInvalidProjectID
		}
		e.ProjectID = &projectUUID
	}
	if req.ClockInTime != nil {
		t, err := parseTimestamp(*req.ClockInTime)
		if err != nil {
			return TimeEntryResponse{}, err
		}
		e.ClockInTime = t
	}
	if req.ClockOutTime != nil {
		if *req.ClockOutTime == "" {
			e.ClockOutTime = nil
		} else {
			t, err := parseTimestamp(*req.ClockOutTime)
			if err != nil {
				return TimeEntryResponse{}, err
			}
			e.ClockOutTime = &t
		}
	}
	if req.Notes != nil {
		e.Notes = *req.Notes
	}
	if req.PauseTotalMs != nil {
		e.PauseTotalMs = *req.PauseTotalMs
	}
	if req.IsVacation != nil {
		e.IsVacation = *req.IsVacation
	}

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("admin update persist failed", zap.String("entry_id", id), zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return TimeEntryResponse{}, err
	}

	s.logger.Info("admin update applied", zap.String("entry_id", id))
	return mapToResponse(*e), nil
}

func (s *service) AdminDelete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return timeentryerrors.ErrInvalidEntryID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("admin delete applied", zap.String("entry_id", id))
	return nil
}

func parseTimestamp(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, timeentryerrors.ErrInvalidTimestamp
	}
	return t.UTC(), nil
}

func mapToResponse(e TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:                e.ID.String(),
		EmployeeID:        e.EmployeeID.String(),
		ClockInTime:       e.ClockInTime.Format(time.RFC3339),
		ClockInLatitude:   e.ClockInLatitude,
		ClockInLongitude:  e.ClockInLongitude,
		ClockOutLatitude:  e.ClockOutLatitude,
		ClockOutLongitude: e.ClockOutLongitude,
		Notes:             e.Notes,
		PauseTotalMs:      e.PauseTotalMs,
		IsVacation:        e.IsVacation,
	}
	if e.ProjectID != nil {
		v := e.ProjectID.String()
		resp.ProjectID = &v
	}
	if e.ClockOutTime != nil {
		v := e.ClockOutTime.Format(time.RFC3339)
		resp.ClockOutTime = &v
	}
	if e.Employee != nil {
		resp.EmployeeName = e.Employee.FullName
	}
	if e.Project != nil {
		resp.ProjectName = e.Project.Name
	}
	for _, p := range e.PauseHistory {
		resp.PauseHistory = append(resp.PauseHistory, PauseIntervalResponse{
			Start: p.Start.Format(time.RFC3339),
			End:   p.End.Format(time.RFC3339),
		})
	}
	for _, d := range e.Docs {
		dr := DocumentationResponse{
			ID:        d.ID.String(),
			Notes:     d.Notes,
			CreatedBy: d.CreatedBy.String(),
			CreatedAt: d.CreatedAt.Format(time.RFC3339),
		}
		for _, a := range d.Attachments {
			dr.Attachments = append(dr.Attachments, AttachmentRefResponse{
				FileID: a.FileID.String(),
				Kind:   a.Kind,
			})
		}
		resp.Documentation = append(resp.Documentation, dr)
	}
	return resp
}
