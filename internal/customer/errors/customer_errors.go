package customererrors

import (
	"net/http"

	"customer-registry/internal/shared/apperror"
)

var (
	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Customer not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"Email already registered",
		http.StatusConflict,
	)
	ErrInvalidCustomerID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid customer ID",
		http.StatusBadRequest,
	)
)
