package fileuploaderrors

import (
	"net/http"
	"zeiterfassung/internal/shared/apperror"
)

var (
	ErrFileNotFound = apperror.New(
		apperror.CodeNotFound,
		"File not found",
		http.StatusNotFound,
	)
	ErrInvalidFileID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid file ID",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid file kind, expected site_photo, invoice or delivery_note",
		http.StatusBadRequest,
	)
	ErrInvalidBase64 = apperror.New(
		apperror.CodeInvalidInput,
		"File content is not valid base64",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodePayloadTooLarge,
		"File exceeds the maximum allowed size",
		http.StatusRequestEntityTooLarge,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"Only the uploader or an admin may delete a file",
		http.StatusForbidden,
	)
)
