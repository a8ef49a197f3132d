package timeentryerrors

import (
	"net/http"

	"zeiterfassung/internal/shared/apperror"
)

var (
	ErrDuplicateSession = apperror.New(
		apperror.CodeConflict,
		"employee already clocked in",
		http.StatusConflict,
	)
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"time entry not found",
		http.StatusNotFound,
	)
	ErrAlreadyClosed = apperror.New(
		apperror.CodeInvalidState,
		"employee already clocked out",
		http.StatusConflict,
	)
	ErrEntryClosed = apperror.New(
		apperror.CodeInvalidState,
		"time entry is already closed",
		http.StatusConflict,
	)
	ErrInvalidEntryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time entry id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidProjectID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid project id",
		http.StatusBadRequest,
	)
	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"invalid timestamp, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrClockOutBeforeClockIn = apperror.New(
		apperror.CodeInvalidInput,
		"clock-out time must be after clock-in time",
		http.StatusBadRequest,
	)
	ErrInvalidPauseInterval = apperror.New(
		apperror.CodeInvalidInput,
		"pause end must be after pause start",
		http.StatusBadRequest,
	)
	ErrNoOpenSession = apperror.New(
		apperror.CodeNotFound,
		"no open session for this employee",
		http.StatusNotFound,
	)
	ErrNotEntryOwner = apperror.New(
		apperror.CodeForbidden,
		"Time entries can only be modified by their owner",
		http.StatusForbidden,
	)
)
