package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// MapValidationError turns the first validator failure into an AppError
// clients can show directly. Anything that is not a ValidationErrors slice
// degrades to a generic bad-input error.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest)
	}

	first := errs[0]
	field := titleCaser.String(strings.ReplaceAll(first.Field(), "_", " "))

	if first.Tag() == "required" {
		return RequiredField(field)
	}
	return InvalidField(field)
}
