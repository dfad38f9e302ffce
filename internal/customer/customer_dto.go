package customer

import "customer-registry/internal/shared/listquery"

type CreateCustomerRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state" binding:"required"`
	PostalCode  string `json:"postal_code" binding:"required"`
	Country     string `json:"country" binding:"required"`
}

// UpdateCustomerRequest: semua field opsional, nil berarti "tidak diubah".
// Pointer membedakan "absent" dari nilai kosong.
type UpdateCustomerRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty"`
	LastName    *string `json:"last_name" binding:"omitempty"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty"`
	Address     *string `json:"address" binding:"omitempty"`
	City        *string `json:"city" binding:"omitempty"`
	State       *string `json:"state" binding:"omitempty"`
	PostalCode  *string `json:"postal_code" binding:"omitempty"`
	Country     *string `json:"country" binding:"omitempty"`
	IsActive    *bool   `json:"is_active" binding:"omitempty"`
}

type ListCustomersQuery struct {
	listquery.Params
	Search   string
	IsActive *bool
}

type CustomerResponse struct {
	ID             string `json:"id"`
	CustomerNumber string `json:"customer_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"date_of_birth"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

type CustomerEmploymentResponse struct {
	ID                  string `json:"id"`
	CustomerID          string `json:"customer_id"`
	CompanyName         string `json:"company_name"`
	JobTitle            string `json:"job_title"`
	Department          string `json:"department,omitempty"`
	EmploymentType      string `json:"employment_type"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date,omitempty"`
	Salary              string `json:"salary,omitempty"`
	WorkAddress         string `json:"work_address,omitempty"`
	WorkCity            string `json:"work_city,omitempty"`
	WorkState           string `json:"work_state,omitempty"`
	WorkPostalCode      string `json:"work_postal_code,omitempty"`
	WorkCountry         string `json:"work_country,omitempty"`
	IsCurrentEmployment bool   `json:"is_current_employment"`
}

// CustomerDetailResponse: employment bernilai null jika customer belum punya
// employment record, bukan error.
type CustomerDetailResponse struct {
	CustomerResponse
	Employment *CustomerEmploymentResponse `json:"employment"`
}
