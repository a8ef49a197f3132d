package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"zeiterfassung/internal/auth"
	autherrors "zeiterfassung/internal/auth/errors"
	"zeiterfassung/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeEmployeeRepo struct {
	findByIDFn       func(ctx context.Context, id string) (*employee.Employee, error)
	findByUsernameFn func(ctx context.Context, username string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeEmployeeRepo) FindByUsername(ctx context.Context, username string) (*employee.Employee, error) {
	return f.findByUsernameFn(ctx, username)
}
func (f *fakeEmployeeRepo) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) CountOpenTimeEntries(ctx context.Context, id string) (int64, error) {
	return 0, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }

func activeEmployee(t *testing.T, password string) *employee.Employee {
	t.Helper()
	pw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return &employee.Employee{
		ID:           uuid.New(),
		Username:     "mmeier",
		PasswordHash: string(pw),
		FullName:     "Martin Meier",
		Active:       true,
	}
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	password := "landscaping2025"
	empl := activeEmployee(t, password)

	repo := &fakeEmployeeRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*employee.Employee, error) {
			assert.Equal(t, "mmeier", username)
			return empl, nil
		},
	}
	service := auth.NewService(repo)

	token, refreshToken, resp, err := service.Login(ctx, "mmeier", password)

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, empl.ID.String(), resp.EmployeeID)
	assert.Equal(t, "Martin Meier", resp.FullName)
	assert.False(t, resp.IsAdmin)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, empl.ID.String(), claims["employee_id"])
	assert.Equal(t, false, claims["is_admin"])
}

func TestService_LoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	empl := activeEmployee(t, "landscaping2025")
	repo := &fakeEmployeeRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*employee.Employee, error) {
			return empl, nil
		},
	}
	service := auth.NewService(repo)

	_, _, _, err := service.Login(context.Background(), "mmeier", "wrongpassword")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_LoginUnknownUserSameError(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := &fakeEmployeeRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := auth.NewService(repo)

	_, _, _, err := service.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_LoginDeactivatedAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	empl := activeEmployee(t, "landscaping2025")
	empl.Active = false
	repo := &fakeEmployeeRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*employee.Employee, error) {
			return empl, nil
		},
	}
	service := auth.NewService(repo)

	_, _, _, err := service.Login(context.Background(), "mmeier", "landscaping2025")
	assert.ErrorIs(t, err, autherrors.ErrAccountDeactivated)
}

func TestService_RefreshTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	empl := activeEmployee(t, "landscaping2025")
	repo := &fakeEmployeeRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*employee.Employee, error) {
			return empl, nil
		},
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			assert.Equal(t, empl.ID.String(), id)
			return empl, nil
		},
	}
	service := auth.NewService(repo)

	_, refreshToken, _, err := service.Login(ctx, "mmeier", "landscaping2025")
	assert.NoError(t, err)

	newAccess, newRefresh, resp, err := service.RefreshToken(ctx, refreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, empl.ID.String(), resp.EmployeeID)
}

func TestService_RefreshTokenGarbageRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	service := auth.NewService(&fakeEmployeeRepo{})

	_, _, _, err := service.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestService_GetMe(t *testing.T) {
	empl := activeEmployee(t, "landscaping2025")
	repo := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return empl, nil
		},
	}
	service := auth.NewService(repo)

	resp, err := service.GetMe(context.Background(), empl.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "mmeier", resp.Username)

	_, err = service.GetMe(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
}
