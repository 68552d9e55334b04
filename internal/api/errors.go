package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fintally/account-api/internal/service"
	"github.com/go-playground/validator/v10"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		return http.StatusNotFound

	// Ownership errors
	case errors.Is(err, service.ErrUserAccountUnmatch):
		return http.StatusForbidden

	// Business-rule rejections
	case errors.Is(err, service.ErrMaxAccountPerUser),
		errors.Is(err, service.ErrAccountAlreadyUnregistered),
		errors.Is(err, service.ErrBalanceNotEmpty),
		errors.Is(err, service.ErrAccountNotInUse),
		errors.Is(err, service.ErrAmountExceedBalance),
		errors.Is(err, service.ErrTransactionAccountUnmatch),
		errors.Is(err, service.ErrCancelMustFully),
		errors.Is(err, service.ErrTooOldOrderToCancel),
		errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCodeAndMessage returns the stable error code and safe message for the
// given error. Business errors carry their own code and message; anything
// else is reported as an internal error without leaking details.
func ErrorCodeAndMessage(err error) (string, string) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Code, svcErr.Message
	}
	return "INTERNAL_SERVER_ERROR", "An unexpected error occurred"
}

// sanitizeValidationError turns a validator error into a user-friendly
// message naming the first failing field without leaking struct internals.
func sanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fieldErr := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fieldErr.Field(), validationTagMessage(fieldErr.Tag()))
	}
	return "Validation error"
}

// validationTagMessage maps validation tags to user-friendly error messages
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gt", "gte":
		return "too small"
	case "max", "lt", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
