package vehicleerrors

import (
	"net/http"
	"zeiterfassung/internal/shared/apperror"
)

var (
	ErrVehicleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Vehicle not found",
		http.StatusNotFound,
	)
	ErrLicensePlateTaken = apperror.New(
		apperror.CodeConflict,
		"License plate already registered",
		http.StatusConflict,
	)
	ErrInvalidVehicleID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid vehicle ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidProjectID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid project ID",
		http.StatusBadRequest,
	)
	ErrInvalidUsageDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid usage date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrVehicleInactive = apperror.New(
		apperror.CodeInvalidState,
		"Vehicle is retired",
		http.StatusConflict,
	)
)
