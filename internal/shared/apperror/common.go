package apperror

import "net/http"

// Shared sentinels for the failure modes every module hits. Module-specific
// errors (wrong stage, locked commission, and so on) live next to the code
// that raises them.
var (
	ErrNotFound     = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrForbidden    = New(CodeForbidden, "You do not have permission to access this resource", http.StatusForbidden)
	ErrUnauthorized = New(CodeUnauthorized, "Authentication is required", http.StatusUnauthorized)
	ErrInvalidInput = New(CodeInvalidInput, "The provided input is invalid", http.StatusBadRequest)
	ErrInternal     = New(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
)

// RequiredField reports a missing request field by its wire name.
func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, field+" is required", http.StatusBadRequest)
}

// InvalidField reports a malformed request field by its wire name.
func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, field+" is invalid", http.StatusBadRequest)
}
