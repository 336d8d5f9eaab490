package usererrors

import (
	"net/http"

	"go-salescrm/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrPhoneAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"A user with this phone number already exists",
		http.StatusConflict,
	)

	ErrInvalidSupervisor = apperror.New(
		apperror.CodeInvalidInput,
		"Supervisor must reference an existing user",
		http.StatusBadRequest,
	)
)
