package fileupload

import (
	"context"
	"database/sql"
	"encoding/base64"
	"testing"

	fileuploaderrors "zeiterfassung/internal/fileupload/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn                     func(ctx context.Context, f *FileUpload) error
	findByIDFn                   func(ctx context.Context, id string) (*FileUpload, error)
	findAllFn                    func(ctx context.Context, projectID, employeeID, kind string) ([]FileUpload, error)
	deleteFn                     func(ctx context.Context, id string) error
	findDocumentationByProjectFn func(ctx context.Context, projectID string) ([][]byte, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                   { return f }
func (f *fakeRepo) Create(ctx context.Context, u *FileUpload) error { return f.createFn(ctx, u) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*FileUpload, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAll(ctx context.Context, projectID, employeeID, kind string) ([]FileUpload, error) {
	return f.findAllFn(ctx, projectID, employeeID, kind)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }
func (f *fakeRepo) FindDocumentationByProject(ctx context.Context, projectID string) ([][]byte, error) {
	return f.findDocumentationByProjectFn(ctx, projectID)
}

func TestNormalizeKind(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "site_photo", want: KindSitePhoto},
		{in: "Baustellenfoto", want: KindSitePhoto},
		{in: "photo", want: KindSitePhoto},
		{in: " invoice ", want: KindInvoice},
		{in: "Rechnung", want: KindInvoice},
		{in: "delivery_note", want: KindDeliveryNote},
		{in: "Lieferschein", want: KindDeliveryNote},
		{in: "receipt", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := NormalizeKind(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, fileuploaderrors.ErrInvalidKind, "input %q", tt.in)
			continue
		}
		assert.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestService_UploadStoresNormalizedKind(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	var stored *FileUpload
	repo := &fakeRepo{
		createFn: func(ctx context.Context, f *FileUpload) error {
			cp := *f
			stored = &cp
			return nil
		},
	}
	svc := NewService(db, repo)

	data := base64.StdEncoding.EncodeToString([]byte("jpeg bytes"))
	resp, err := svc.Upload(context.Background(), uuid.NewString(), UploadRequest{
		Kind:     "Baustellenfoto",
		FileName: "teich.jpg",
		MimeType: "image/jpeg",
		Data:     data,
	})

	assert.NoError(t, err)
	assert.Equal(t, KindSitePhoto, resp.Kind)
	assert.Empty(t, resp.Data)
	if assert.NotNil(t, stored) {
		assert.Equal(t, data, stored.Data)
	}
}

func TestService_UploadRejectsBadBase64(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, f *FileUpload) error {
			t.Fatal("file must not be written")
			return nil
		},
	}
	svc := NewService(db, repo)

	_, err := svc.Upload(context.Background(), uuid.NewString(), UploadRequest{
		Kind:     "invoice",
		FileName: "rechnung.pdf",
		MimeType: "application/pdf",
		Data:     "not%%base64",
	})
	assert.ErrorIs(t, err, fileuploaderrors.ErrInvalidBase64)
}

func TestService_DeleteOwnerAndAdminRules(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	owner := uuid.New()
	fileID := uuid.New()
	deleted := 0
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*FileUpload, error) {
			return &FileUpload{ID: fileID, EmployeeID: owner}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			deleted++
			return nil
		},
	}
	svc := NewService(db, repo)

	err := svc.Delete(context.Background(), fileID.String(), uuid.NewString(), false)
	assert.ErrorIs(t, err, fileuploaderrors.ErrNotOwner)
	assert.Equal(t, 0, deleted)

	assert.NoError(t, svc.Delete(context.Background(), fileID.String(), owner.String(), false))
	assert.NoError(t, svc.Delete(context.Background(), fileID.String(), uuid.NewString(), true))
	assert.Equal(t, 2, deleted)
}

func TestService_ProjectFilesAggregatesAndDedupes(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	projectID := uuid.New()
	sharedFile := uuid.New()
	docOnlyFile := uuid.New()
	invoiceFile := uuid.New()

	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, pid, eid, kind string) ([]FileUpload, error) {
			assert.Equal(t, projectID.String(), pid)
			return []FileUpload{
				{ID: sharedFile, Kind: KindSitePhoto, FileName: "teich.jpg"},
				{ID: invoiceFile, Kind: KindInvoice, FileName: "rechnung.pdf"},
			}, nil
		},
		findDocumentationByProjectFn: func(ctx context.Context, pid string) ([][]byte, error) {
			doc := `[{"attachments":[` +
				`{"file_id":"` + sharedFile.String() + `","kind":"site_photo"},` +
				`{"file_id":"` + docOnlyFile.String() + `","kind":"delivery_note"}]}]`
			return [][]byte{[]byte(doc), nil}, nil
		},
	}
	svc := NewService(db, repo)

	resp, err := svc.ProjectFiles(context.Background(), projectID.String())
	assert.NoError(t, err)

	// sharedFile appears once, from the direct upload.
	if assert.Len(t, resp.SitePhotos, 1) {
		assert.Equal(t, sharedFile.String(), resp.SitePhotos[0].FileID)
		assert.Equal(t, SourceDirect, resp.SitePhotos[0].Source)
	}
	if assert.Len(t, resp.Invoices, 1) {
		assert.Equal(t, invoiceFile.String(), resp.Invoices[0].FileID)
	}
	if assert.Len(t, resp.DeliveryNotes, 1) {
		assert.Equal(t, docOnlyFile.String(), resp.DeliveryNotes[0].FileID)
		assert.Equal(t, SourceDocumentation, resp.DeliveryNotes[0].Source)
	}
}

func TestService_ProjectFilesSkipsUnreadableDocs(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, pid, eid, kind string) ([]FileUpload, error) {
			return nil, nil
		},
		findDocumentationByProjectFn: func(ctx context.Context, pid string) ([][]byte, error) {
			return [][]byte{[]byte("not json")}, nil
		},
	}
	svc := NewService(db, repo)

	resp, err := svc.ProjectFiles(context.Background(), uuid.NewString())
	assert.NoError(t, err)
	assert.Empty(t, resp.SitePhotos)
	assert.Empty(t, resp.Invoices)
	assert.Empty(t, resp.DeliveryNotes)
}

func TestService_GetByIDNotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*FileUpload, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(db, repo)

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, fileuploaderrors.ErrFileNotFound)
}
