package employment

import "customer-registry/internal/shared/listquery"

type CreateEmploymentRequest struct {
	CompanyName         string `json:"company_name" binding:"required"`
	JobTitle            string `json:"job_title" binding:"required"`
	Department          string `json:"department"`
	EmploymentType      string `json:"employment_type" binding:"required"`
	StartDate           string `json:"start_date" binding:"required"`
	EndDate             string `json:"end_date"`
	Salary              string `json:"salary"`
	WorkAddress         string `json:"work_address"`
	WorkCity            string `json:"work_city"`
	WorkState           string `json:"work_state"`
	WorkPostalCode      string `json:"work_postal_code"`
	WorkCountry         string `json:"work_country"`
	IsCurrentEmployment *bool  `json:"is_current_employment"`
}

// UpdateEmploymentRequest: nil berarti field tidak diubah
type UpdateEmploymentRequest struct {
	CompanyName         *string `json:"company_name" binding:"omitempty"`
	JobTitle            *string `json:"job_title" binding:"omitempty"`
	Department          *string `json:"department" binding:"omitempty"`
	EmploymentType      *string `json:"employment_type" binding:"omitempty"`
	StartDate           *string `json:"start_date" binding:"omitempty"`
	EndDate             *string `json:"end_date" binding:"omitempty"`
	Salary              *string `json:"salary" binding:"omitempty"`
	WorkAddress         *string `json:"work_address" binding:"omitempty"`
	WorkCity            *string `json:"work_city" binding:"omitempty"`
	WorkState           *string `json:"work_state" binding:"omitempty"`
	WorkPostalCode      *string `json:"work_postal_code" binding:"omitempty"`
	WorkCountry         *string `json:"work_country" binding:"omitempty"`
	IsCurrentEmployment *bool   `json:"is_current_employment" binding:"omitempty"`
}

type ListEmploymentsQuery struct {
	listquery.Params
	Search         string
	EmploymentType string
	IsCurrent      *bool
}

type EmploymentResponse struct {
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
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at,omitempty"`
}

type EmploymentCustomerResponse struct {
	ID             string `json:"id"`
	CustomerNumber string `json:"customer_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	City           string `json:"city"`
	IsActive       bool   `json:"is_active"`
}

type EmploymentDetailResponse struct {
	EmploymentResponse
	Customer *EmploymentCustomerResponse `json:"customer"`
}
