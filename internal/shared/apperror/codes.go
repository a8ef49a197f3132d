package apperror

// Stable machine-readable error codes carried in the response envelope.
// Clients branch on these, never on the message text.
const (
	// Client errors (4xx)
	CodeInvalidInput    = "INVALID_INPUT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInvalidState    = "INVALID_STATE"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"

	// Server errors (5xx)
	CodeInternalError = "INTERNAL_ERROR"
)
