package apperror

// Stable machine-readable error codes. Clients branch on these, so renaming
// one is a breaking API change.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"

	// CodeInvalidState marks lifecycle violations, e.g. paying a commission
	// that was never approved.
	CodeInvalidState = "INVALID_STATE"

	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
