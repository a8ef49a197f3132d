package project

import (
	"context"
	"database/sql"
	"time"

	projecterrors "zeiterfassung/internal/project/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error)
	GetAll(ctx context.Context, status string) ([]ProjectResponse, error)
	GetByID(ctx context.Context, id string) (ProjectResponse, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error)
	Archive(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("project.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// validTransition encodes the lifecycle. ARCHIVED is terminal; COMPLETED can
// be reopened when a site needs follow-up work.
func validTransition(from, to string) bool {
	if from == to {
		return true
	}
	if to == StatusArchived {
		return from != StatusArchived
	}
	switch from {
	case StatusPlanned:
		return to == StatusActive
	case StatusActive:
		return to == StatusCompleted
	case StatusCompleted:
		return to == StatusActive
	}
	return false
}

func (s *service) Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error) {
	status := req.Status
	if status == "" {
		status = StatusPlanned
	}

	p := &Project{
		ID:          uuid.New(),
		Name:        req.Name,
		Client:      req.Client,
		Address:     req.Address,
		Description: req.Description,
		Status:      status,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create project persist failed", zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("project created",
		zap.String("project_id", p.ID.String()),
		zap.String("status", p.Status),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]ProjectResponse, error) {
	switch status {
	case "", StatusPlanned, StatusActive, StatusCompleted, StatusArchived:
	default:
		return nil, projecterrors.ErrInvalidStatus
	}

	projects, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProjectResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidProjectID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidProjectID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}
	if p.Status == StatusArchived {
		return ProjectResponse{}, projecterrors.ErrProjectArchived
	}

	if req.Status != nil && !validTransition(p.Status, *req.Status) {
		s.logger.Warn("project transition rejected",
			zap.String("project_id", id),
			zap.String("from", p.Status),
			zap.String("to", *req.Status),
		)
		return ProjectResponse{}, projecterrors.ErrInvalidTransition
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Client != nil {
		p.Client = *req.Client
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Status != nil {
		p.Status = *req.Status
	}

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update project persist failed", zap.String("project_id", id), zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ProjectResponse{}, err
	}

	s.logger.Info("project updated", zap.String("project_id", id), zap.String("status", p.Status))
	return mapToResponse(*p), nil
}

func (s *service) Archive(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return projecterrors.ErrInvalidProjectID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if p.Status == StatusArchived {
		return projecterrors.ErrProjectArchived
	}

	p.Status = StatusArchived
	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("archive project persist failed", zap.String("project_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("project archived", zap.String("project_id", id))
	return nil
}

func mapToResponse(p Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Client:      p.Client,
		Address:     p.Address,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
