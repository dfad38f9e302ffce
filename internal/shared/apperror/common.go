package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// FieldViolation is one field-level validation failure
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Validation builds a single INVALID_INPUT error from collected violations
func Validation(violations ...FieldViolation) *AppError {
	msg := "The provided input is invalid"
	if len(violations) == 1 {
		msg = fmt.Sprintf("%s: %s", violations[0].Field, violations[0].Reason)
	}
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    violations,
	}
}

// RequiredField is used by the binding validation mapper
func RequiredField(field string) *AppError {
	return Validation(FieldViolation{Field: field, Reason: "is required"})
}

// InvalidField is used by the binding validation mapper
func InvalidField(field string) *AppError {
	return Validation(FieldViolation{Field: field, Reason: "is invalid"})
}
