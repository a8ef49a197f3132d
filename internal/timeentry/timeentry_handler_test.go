package timeentry_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"zeiterfassung/internal/timeentry"
	timeentryerrors "zeiterfassung/internal/timeentry/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	startSessionFn func(ctx context.Context, employeeID string, req timeentry.StartSessionRequest) (timeentry.TimeEntryResponse, error)
	endSessionFn   func(ctx context.Context, id string, actor timeentry.Actor, req timeentry.EndSessionRequest) (timeentry.EndSessionResult, error)
	openSessionFn  func(ctx context.Context, employeeID string) (timeentry.TimeEntryResponse, error)
	listFn         func(ctx context.Context, employeeID string, from, to *time.Time) ([]timeentry.TimeEntryResponse, error)
}

func (f *fakeService) StartSession(ctx context.Context, employeeID string, req timeentry.StartSessionRequest) (timeentry.TimeEntryResponse, error) {
	return f.startSessionFn(ctx, employeeID, req)
}
func (f *fakeService) EndSession(ctx context.Context, id string, actor timeentry.Actor, req timeentry.EndSessionRequest) (timeentry.EndSessionResult, error) {
	return f.endSessionFn(ctx, id, actor, req)
}
func (f *fakeService) OpenSession(ctx context.Context, employeeID string) (timeentry.TimeEntryResponse, error) {
	return f.openSessionFn(ctx, employeeID)
}
func (f *fakeService) AttachDocumentation(ctx context.Context, id string, actor timeentry.Actor, req timeentry.AttachDocumentationRequest) (timeentry.TimeEntryResponse, error) {
	return timeentry.TimeEntryResponse{}, nil
}
func (f *fakeService) RecordPause(ctx context.Context, id string, actor timeentry.Actor, req timeentry.RecordPauseRequest) (timeentry.TimeEntryResponse, error) {
	return timeentry.TimeEntryResponse{}, nil
}
func (f *fakeService) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]timeentry.TimeEntryResponse, error) {
	return f.listFn(ctx, employeeID, from, to)
}
func (f *fakeService) RecordVacationDays(ctx context.Context, tx *sql.Tx, employeeID string, days []time.Time) error {
	return nil
}
func (f *fakeService) AdminUpdate(ctx context.Context, id string, req timeentry.AdminUpdateRequest) (timeentry.TimeEntryResponse, error) {
	return timeentry.TimeEntryResponse{}, nil
}
func (f *fakeService) AdminDelete(ctx context.Context, id string) error { return nil }

func TestHandler_ClockIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()
	projectID := uuid.New().String()

	svc := &fakeService{
		startSessionFn: func(ctx context.Context, eid string, req timeentry.StartSessionRequest) (timeentry.TimeEntryResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, projectID, req.ProjectID)
			return timeentry.TimeEntryResponse{ID: uuid.New().String(), EmployeeID: eid}, nil
		},
	}
	h := timeentry.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/time-entries/clock-in", strings.NewReader(`{"project_id":"`+projectID+`"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ClockIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestHandler_ClockIn_DuplicateRendersConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		startSessionFn: func(ctx context.Context, eid string, req timeentry.StartSessionRequest) (timeentry.TimeEntryResponse, error) {
			return timeentry.TimeEntryResponse{}, timeentryerrors.ErrDuplicateSession
		},
	}
	h := timeentry.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/time-entries/clock-in", strings.NewReader(`{"project_id":"`+uuid.New().String()+`"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ClockIn(c)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already clocked in")
}

func TestHandler_ClockOut_CarriesBreakReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	entryID := uuid.New().String()

	svc := &fakeService{
		endSessionFn: func(ctx context.Context, id string, actor timeentry.Actor, req timeentry.EndSessionRequest) (timeentry.EndSessionResult, error) {
			assert.Equal(t, entryID, id)
			return timeentry.EndSessionResult{
				Entry:     timeentry.TimeEntryResponse{ID: id, PauseTotalMs: 1_800_000},
				AutoBreak: &timeentry.BreakReport{Duration: 30, Reason: "work duration over 6 hours"},
			}, nil
		},
	}
	h := timeentry.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: entryID}}
	c.Request = httptest.NewRequest(http.MethodPost, "/time-entries/"+entryID+"/clock-out", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ClockOut(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "work duration over 6 hours")
}

func TestHandler_List_NonAdminCannotReadOthers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		listFn: func(ctx context.Context, employeeID string, from, to *time.Time) ([]timeentry.TimeEntryResponse, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	h := timeentry.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Set("is_admin", false)
	c.Request = httptest.NewRequest(http.MethodGet, "/time-entries?employee_id="+uuid.New().String(), nil)
	h.List(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_GetOpenSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		openSessionFn: func(ctx context.Context, eid string) (timeentry.TimeEntryResponse, error) {
			return timeentry.TimeEntryResponse{ID: uuid.New().String(), EmployeeID: eid}, nil
		},
	}
	h := timeentry.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodGet, "/time-entries/open", nil)
	h.GetOpenSession(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), employeeID)
}
