package customererrors

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

	ErrInvalidStage = apperror.New(
		apperror.CodeInvalidInput,
		"Stage must be one of CHANCE, CALL, TOUCH, DEAL",
		http.StatusBadRequest,
	)

	ErrDealAmountRequired = apperror.New(
		apperror.CodeInvalidInput,
		"A positive contract amount is required to record a deal",
		http.StatusBadRequest,
	)

	ErrInvalidChannel = apperror.New(
		apperror.CodeInvalidInput,
		"The referenced channel does not exist",
		http.StatusBadRequest,
	)

	ErrInvalidOwner = apperror.New(
		apperror.CodeInvalidInput,
		"The referenced owner does not exist",
		http.StatusBadRequest,
	)
)
