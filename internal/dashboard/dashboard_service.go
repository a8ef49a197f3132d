package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"zeiterfassung/internal/timeentry"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const ActiveSessionsKey = "dashboard:active_sessions"

// Short TTL keeps the board near-live even if no clock-out event arrives.
const activeSessionsTTL = 30 * time.Second

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	ActiveSessions(ctx context.Context) ([]ActiveSessionResponse, error)
	RefreshActiveSessions(ctx context.Context) error
	Summary(ctx context.Context) (SummaryResponse, error)
}

type service struct {
	repo      Repository
	timeentry timeentry.Repository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(repo Repository, timeentryRepo timeentry.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		repo:      repo,
		timeentry: timeentryRepo,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) ActiveSessions(ctx context.Context) ([]ActiveSessionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ActiveSessionsKey).Result(); err == nil {
			var resp []ActiveSessionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(ActiveSessionsKey, func() (interface{}, error) {
		return s.loadAndCache(ctx)
	})
	if err != nil {
		return nil, err
	}

	return v.([]ActiveSessionResponse), nil
}

// RefreshActiveSessions recomputes the cached listing. Called from the
// clock-out event consumer so the board updates without waiting for the TTL.
func (s *service) RefreshActiveSessions(ctx context.Context) error {
	_, err := s.loadAndCache(ctx)
	return err
}

func (s *service) loadAndCache(ctx context.Context) ([]ActiveSessionResponse, error) {
	entries, err := s.timeentry.FindAllOpen(ctx)
	if err != nil {
		s.logger.Error("load active sessions failed", zap.Error(err))
		return nil, err
	}

	resp := make([]ActiveSessionResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToActiveSession(e)
	}

	if s.rdb != nil {
		if jsonData, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, ActiveSessionsKey, jsonData, activeSessionsTTL)
		}
	}

	return resp, nil
}

func (s *service) Summary(ctx context.Context) (SummaryResponse, error) {
	sessions, err := s.ActiveSessions(ctx)
	if err != nil {
		return SummaryResponse{}, err
	}

	total, active, err := s.repo.CountEmployees(ctx)
	if err != nil {
		s.logger.Error("count employees failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	pending, err := s.repo.CountPendingLeave(ctx)
	if err != nil {
		s.logger.Error("count pending leave failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	return SummaryResponse{
		ActiveSessions:  len(sessions),
		TotalEmployees:  int(total),
		ActiveEmployees: int(active),
		PendingLeave:    int(pending),
	}, nil
}

func mapToActiveSession(e timeentry.TimeEntry) ActiveSessionResponse {
	resp := ActiveSessionResponse{
		EntryID:     e.ID.String(),
		EmployeeID:  e.EmployeeID.String(),
		ClockInTime: e.ClockInTime.Format(time.RFC3339),
		Latitude:    e.ClockInLatitude,
		Longitude:   e.ClockInLongitude,
	}
	if e.ProjectID != nil {
		v := e.ProjectID.String()
		resp.ProjectID = &v
	}
	if e.Employee != nil {
		resp.EmployeeName = e.Employee.FullName
	}
	if e.Project != nil {
		resp.ProjectName = e.Project.Name
	}
	return resp
}
