package fileupload

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	fileuploaderrors "zeiterfassung/internal/fileupload/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Inline storage keeps the stack simple for a handful of site photos per
// day; 15 MiB of decoded payload is the cutoff.
const maxFileBytes = 15 << 20

//go:generate mockgen -source=fileupload_service.go -destination=mock/fileupload_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, employeeID string, req UploadRequest) (FileResponse, error)
	GetByID(ctx context.Context, id string) (FileResponse, error)
	List(ctx context.Context, projectID, employeeID, kind string) ([]FileResponse, error)
	Delete(ctx context.Context, id, actorID string, actorIsAdmin bool) error
	ProjectFiles(ctx context.Context, projectID string) (ProjectFilesResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("fileupload.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("fileupload.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// NormalizeKind maps the free-form kind tags coming from clients onto the
// three canonical values.
func NormalizeKind(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindSitePhoto, "photo", "site-photo", "baustellenfoto":
		return KindSitePhoto, nil
	case KindInvoice, "rechnung":
		return KindInvoice, nil
	case KindDeliveryNote, "delivery-note", "lieferschein":
		return KindDeliveryNote, nil
	}
	return "", fileuploaderrors.ErrInvalidKind
}

func (s *service) Upload(ctx context.Context, employeeID string, req UploadRequest) (FileResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return FileResponse{}, fileuploaderrors.ErrInvalidFileID
	}

	kind, err := NormalizeKind(req.Kind)
	if err != nil {
		return FileResponse{}, err
	}

	var projectUUID *uuid.UUID
	if req.ProjectID != nil && *req.ProjectID != "" {
		parsed, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return FileResponse{}, fileuploaderrors.ErrInvalidFileID
		}
		projectUUID = &parsed
	}

	decoded, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return FileResponse{}, fileuploaderrors.ErrInvalidBase64
	}
	if len(decoded) > maxFileBytes {
		return FileResponse{}, fileuploaderrors.ErrFileTooLarge
	}

	f := &FileUpload{
		ID:         uuid.New(),
		ProjectID:  projectUUID,
		EmployeeID: employeeUUID,
		Kind:       kind,
		FileName:   req.FileName,
		MimeType:   req.MimeType,
		Data:       req.Data,
		Notes:      req.Notes,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.logger.Error("upload persist failed", zap.Error(err))
		return FileResponse{}, err
	}

	s.logger.Info("file uploaded",
		zap.String("file_id", f.ID.String()),
		zap.String("kind", f.Kind),
		zap.Int("bytes", len(decoded)),
	)
	resp := mapToResponse(*f)
	resp.Data = ""
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (FileResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return FileResponse{}, fileuploaderrors.ErrInvalidFileID
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FileResponse{}, fileuploaderrors.ErrFileNotFound
		}
		return FileResponse{}, err
	}
	return mapToResponse(*f), nil
}

func (s *service) List(ctx context.Context, projectID, employeeID, kind string) ([]FileResponse, error) {
	if kind != "" {
		normalized, err := NormalizeKind(kind)
		if err != nil {
			return nil, err
		}
		kind = normalized
	}

	files, err := s.repo.FindAll(ctx, projectID, employeeID, kind)
	if err != nil {
		return nil, err
	}

	resp := make([]FileResponse, len(files))
	for i, f := range files {
		resp[i] = mapToResponse(f)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id, actorID string, actorIsAdmin bool) error {
	if _, err := uuid.Parse(id); err != nil {
		return fileuploaderrors.ErrInvalidFileID
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fileuploaderrors.ErrFileNotFound
		}
		return err
	}
	if !actorIsAdmin && f.EmployeeID.String() != actorID {
		return fileuploaderrors.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete file persist failed", zap.String("file_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("file deleted", zap.String("file_id", id))
	return nil
}

// documentationEntry mirrors the attachment shape written by the time-entry
// documentation flow.
type documentationEntry struct {
	Attachments []struct {
		FileID string `json:"file_id"`
		Kind   string `json:"kind"`
	} `json:"attachments"`
}

func (s *service) ProjectFiles(ctx context.Context, projectID string) (ProjectFilesResponse, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return ProjectFilesResponse{}, fileuploaderrors.ErrInvalidFileID
	}

	resp := ProjectFilesResponse{
		SitePhotos:    []ProjectFileRef{},
		Invoices:      []ProjectFileRef{},
		DeliveryNotes: []ProjectFileRef{},
	}
	seen := map[string]bool{}

	add := func(fileID, fileName, kind, source string) {
		if fileID == "" || seen[fileID] {
			return
		}
		seen[fileID] = true
		ref := ProjectFileRef{FileID: fileID, FileName: fileName, Source: source}
		switch kind {
		case KindSitePhoto:
			resp.SitePhotos = append(resp.SitePhotos, ref)
		case KindInvoice:
			resp.Invoices = append(resp.Invoices, ref)
		case KindDeliveryNote:
			resp.DeliveryNotes = append(resp.DeliveryNotes, ref)
		}
	}

	// Direct uploads win the dedupe, they carry the file name.
	direct, err := s.repo.FindAll(ctx, projectID, "", "")
	if err != nil {
		return ProjectFilesResponse{}, err
	}
	for _, f := range direct {
		add(f.ID.String(), f.FileName, f.Kind, SourceDirect)
	}

	rawDocs, err := s.repo.FindDocumentationByProject(ctx, projectID)
	if err != nil {
		return ProjectFilesResponse{}, err
	}
	for _, raw := range rawDocs {
		if len(raw) == 0 {
			continue
		}
		var docs []documentationEntry
		if err := json.Unmarshal(raw, &docs); err != nil {
			s.logger.Warn("skipping unreadable documentation payload",
				zap.String("project_id", projectID),
				zap.Error(err),
			)
			continue
		}
		for _, doc := range docs {
			for _, a := range doc.Attachments {
				add(a.FileID, "", a.Kind, SourceDocumentation)
			}
		}
	}

	return resp, nil
}

func mapToResponse(f FileUpload) FileResponse {
	resp := FileResponse{
		ID:         f.ID.String(),
		EmployeeID: f.EmployeeID.String(),
		Kind:       f.Kind,
		FileName:   f.FileName,
		MimeType:   f.MimeType,
		Notes:      f.Notes,
		CreatedAt:  f.CreatedAt.Format(time.RFC3339),
		Data:       f.Data,
	}
	if f.ProjectID != nil {
		v := f.ProjectID.String()
		resp.ProjectID = &v
	}
	return resp
}
