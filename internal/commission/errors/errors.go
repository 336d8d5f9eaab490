package commissionerrors

import (
	"net/http"

	"go-salescrm/internal/shared/apperror"
)

var (
	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Customer not found",
		http.StatusNotFound,
	)

	ErrDealActorNotFound = apperror.New(
		apperror.CodeNotFound,
		"The user who closed the deal does not exist",
		http.StatusNotFound,
	)

	ErrInvalidDealAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Deal amount must be a positive number",
		http.StatusBadRequest,
	)

	ErrDealAlreadyCommissioned = apperror.New(
		apperror.CodeConflict,
		"Commissions for this deal event were already generated",
		http.StatusConflict,
	)

	ErrCommissionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Commission not found",
		http.StatusNotFound,
	)

	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Commission status transition is not allowed",
		http.StatusConflict,
	)

	ErrNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"Only pending commissions can be edited",
		http.StatusConflict,
	)
)
