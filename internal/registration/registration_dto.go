package registration

import (
	"customer-registry/internal/customer"
	"customer-registry/internal/employment"
)

// RegisterRequest menggabungkan kedua payload; keduanya wajib ada karena
// registrasi selalu membuat pasangan customer + employment sekaligus.
type RegisterRequest struct {
	Customer   customer.CreateCustomerRequest     `json:"customer" binding:"required"`
	Employment employment.CreateEmploymentRequest `json:"employment" binding:"required"`
}

type RegistrationResponse struct {
	Customer   customer.CustomerResponse     `json:"customer"`
	Employment employment.EmploymentResponse `json:"employment"`
}
