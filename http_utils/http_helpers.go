package http_utils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// FieldErrors flattens a validation failure into one message per field.
// Errors that did not come from the validator are returned as a single message.
func FieldErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	return lo.Map(verrs, func(item validator.FieldError, index int) string {
		return item.Error()
	})
}

func NewValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		BaseResponse: NewBaseResponse(false, "invalid body, validation failed"),
		Errors:       FieldErrors(err),
	}
}
