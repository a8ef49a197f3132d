package employeeerrors

import (
	"net/http"
	"zeiterfassung/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrUsernameTaken = apperror.New(
		apperror.CodeConflict,
		"Username already in use",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrEmployeeInactive = apperror.New(
		apperror.CodeConflict,
		"Employee is deactivated",
		http.StatusConflict,
	)
	ErrOpenSessionRemains = apperror.New(
		apperror.CodeConflict,
		"Employee still has an open time entry",
		http.StatusConflict,
	)
	ErrInsufficientLeaveBalance = apperror.New(
		apperror.CodeConflict,
		"Not enough remaining vacation days",
		http.StatusConflict,
	)
)
