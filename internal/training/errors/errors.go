package trainingerrors

import (
	"net/http"

	"go-salescrm/internal/shared/apperror"
)

var (
	ErrTrainingNotFound = apperror.New(
		apperror.CodeNotFound,
		"Training not found",
		http.StatusNotFound,
	)

	ErrLogNotFound = apperror.New(
		apperror.CodeNotFound,
		"Training log not found",
		http.StatusNotFound,
	)

	ErrLogAlreadyApproved = apperror.New(
		apperror.CodeInvalidState,
		"Training log is already approved",
		http.StatusConflict,
	)
)
