package employee_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"zeiterfassung/internal/employee"
	employeeerrors "zeiterfassung/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn     func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	getOptionsFn func(ctx context.Context) ([]employee.EmployeeOption, error)
	deactivateFn func(ctx context.Context, id string) error
}

func (f *fakeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return nil, nil
}
func (f *fakeService) GetOptions(ctx context.Context) ([]employee.EmployeeOption, error) {
	return f.getOptionsFn(ctx)
}
func (f *fakeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}
func (f *fakeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}
func (f *fakeService) Deactivate(ctx context.Context, id string) error {
	return f.deactivateFn(ctx, id)
}
func (f *fakeService) DebitLeaveBalance(ctx context.Context, tx *sql.Tx, employeeID string, days int) error {
	return nil
}

func TestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, "mmeier", req.Username)
			return employee.EmployeeResponse{ID: uuid.NewString(), FullName: req.FullName, Active: true}, nil
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"username":"mmeier","password":"landscaping2025","full_name":"Martin Meier"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestHandler_CreateShortPasswordRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
			t.Fatal("service must not be called")
			return employee.EmployeeResponse{}, nil
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"username":"mmeier","password":"short","full_name":"Martin Meier"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_DeactivateConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		deactivateFn: func(ctx context.Context, id string) error {
			return employeeerrors.ErrOpenSessionRemains
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	c.Request = httptest.NewRequest(http.MethodDelete, "/employees/"+uuid.NewString(), nil)
	h.Deactivate(c)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "open time entry")
}

func TestHandler_GetOptions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getOptionsFn: func(ctx context.Context) ([]employee.EmployeeOption, error) {
			return []employee.EmployeeOption{{ID: uuid.NewString(), FullName: "Martin Meier"}}, nil
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/employees/options", nil)
	h.GetOptions(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Martin Meier")
}
