package reporterrors

import (
	"net/http"
	"zeiterfassung/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid month, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrNoEntries = apperror.New(
		apperror.CodeNotFound,
		"No time entries in the requested month",
		http.StatusNotFound,
	)
)
