package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"zeiterfassung/internal/auth"
	autherrors "zeiterfassung/internal/auth/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, string, auth.AuthResponse, error)
	getMeFn func(ctx context.Context, employeeID string) (*auth.AuthResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (string, string, auth.AuthResponse, error) {
	return f.loginFn(ctx, username, password)
}
func (f *fakeAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, string, auth.AuthResponse, error) {
	return "", "", auth.AuthResponse{}, nil
}
func (f *fakeAuthService) GetMe(ctx context.Context, employeeID string) (*auth.AuthResponse, error) {
	return f.getMeFn(ctx, employeeID)
}

func TestHandler_LoginSetsCookiesForWebClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, string, auth.AuthResponse, error) {
			return "access-token", "refresh-token", auth.AuthResponse{Username: username}, nil
		},
	}
	h := auth.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"mmeier","password":"landscaping2025"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set("X-Client-Type", "web")
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	names := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		names = append(names, ck.Name)
		assert.True(t, ck.HttpOnly)
	}
	assert.Contains(t, names, "access_token")
	assert.Contains(t, names, "refresh_token")
}

func TestHandler_LoginFailureIsGeneric(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, string, auth.AuthResponse, error) {
			return "", "", auth.AuthResponse{}, autherrors.ErrInvalidCredentials
		},
	}
	h := auth.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"ghost","password":"whatever"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")
}

func TestHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.NewString()

	svc := &fakeAuthService{
		getMeFn: func(ctx context.Context, id string) (*auth.AuthResponse, error) {
			assert.Equal(t, employeeID, id)
			return &auth.AuthResponse{EmployeeID: id, Username: "mmeier"}, nil
		},
	}
	h := auth.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	h.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mmeier")
}

func TestHandler_MeWithoutContextUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := auth.NewHandler(&fakeAuthService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	h.Me(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_LogoutRequiresAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	h := auth.NewHandler(&fakeAuthService{})
	router := gin.New()
	auth.RegisterRoutes(router.Group("/"), h)

	// Without a token the request never reaches the handler.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	claims := jwt.MapClaims{
		"employee_id": uuid.New().String(),
		"is_admin":    false,
		"exp":         time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
