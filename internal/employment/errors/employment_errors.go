package employmenterrors

import (
	"net/http"

	"customer-registry/internal/shared/apperror"
)

var (
	ErrEmploymentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employment not found",
		http.StatusNotFound,
	)
	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Customer not found",
		http.StatusNotFound,
	)
	ErrEmploymentAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Customer already has employment information",
		http.StatusConflict,
	)
	ErrInvalidEmploymentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employment ID",
		http.StatusBadRequest,
	)
	ErrInvalidCustomerID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid customer ID",
		http.StatusBadRequest,
	)
)
