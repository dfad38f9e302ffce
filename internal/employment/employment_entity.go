package employment

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeFullTime   = "Full-time"
	TypePartTime   = "Part-time"
	TypeContract   = "Contract"
	TypeFreelance  = "Freelance"
	TypeInternship = "Internship"
	TypeTemporary  = "Temporary"
)

var employmentTypes = map[string]struct{}{
	TypeFullTime:   {},
	TypePartTime:   {},
	TypeContract:   {},
	TypeFreelance:  {},
	TypeInternship: {},
	TypeTemporary:  {},
}

func IsValidEmploymentType(v string) bool {
	_, ok := employmentTypes[v]
	return ok
}

type Employment struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;uniqueIndex:uq_employment_customer"`

	CompanyName         string     `gorm:"column:company_name;type:varchar(100);not null"`
	JobTitle            string     `gorm:"column:job_title;type:varchar(100);not null"`
	Department          string     `gorm:"column:department;type:varchar(100)"`
	EmploymentType      string     `gorm:"column:employment_type;type:varchar(50);not null"`
	StartDate           time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate             *time.Time `gorm:"column:end_date;type:date"`
	Salary              string     `gorm:"column:salary;type:varchar(50)"`
	WorkAddress         string     `gorm:"column:work_address;type:text"`
	WorkCity            string     `gorm:"column:work_city;type:varchar(50)"`
	WorkState           string     `gorm:"column:work_state;type:varchar(50)"`
	WorkPostalCode      string     `gorm:"column:work_postal_code;type:varchar(10)"`
	WorkCountry         string     `gorm:"column:work_country;type:varchar(50)"`
	IsCurrentEmployment bool       `gorm:"column:is_current_employment;default:true"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	// Relasi ke Customer (untuk merakit response employment + pemiliknya)
	Customer *EmploymentCustomer `gorm:"foreignKey:CustomerID;references:ID"`
}

func (Employment) TableName() string {
	return "employments"
}

// EmploymentCustomer adalah sub-struct untuk join data minimal dari customer
type EmploymentCustomer struct {
	ID             uuid.UUID `gorm:"primaryKey"`
	CustomerNumber string    `gorm:"column:customer_number"`
	FirstName      string    `gorm:"column:first_name"`
	LastName       string    `gorm:"column:last_name"`
	Email          string    `gorm:"column:email"`
	Phone          string    `gorm:"column:phone"`
	City           string    `gorm:"column:city"`
	IsActive       bool      `gorm:"column:is_active"`
}

func (EmploymentCustomer) TableName() string {
	return "customers"
}
