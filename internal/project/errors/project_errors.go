package projecterrors

import (
	"net/http"
	"zeiterfassung/internal/shared/apperror"
)

var (
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"Project not found",
		http.StatusNotFound,
	)
	ErrInvalidProjectID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid project ID",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid project status",
		http.StatusBadRequest,
	)
	ErrProjectArchived = apperror.New(
		apperror.CodeInvalidState,
		"Archived projects cannot be modified",
		http.StatusConflict,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"Invalid project status transition",
		http.StatusConflict,
	)
)
