package customer

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerNumber string    `gorm:"column:customer_number;type:varchar(20);not null;uniqueIndex:uq_customer_number"`
	FirstName      string    `gorm:"column:first_name;type:varchar(50);not null;index"`
	LastName       string    `gorm:"column:last_name;type:varchar(50);not null;index"`
	Email          string    `gorm:"column:email;type:varchar(100);not null;uniqueIndex:uq_customer_email"`
	Phone          string    `gorm:"column:phone;type:varchar(20);not null"`
	DateOfBirth    time.Time `gorm:"column:date_of_birth;type:date;not null"`
	Address        string    `gorm:"column:address;type:text;not null"`
	City           string    `gorm:"column:city;type:varchar(50);not null"`
	State          string    `gorm:"column:state;type:varchar(50);not null"`
	PostalCode     string    `gorm:"column:postal_code;type:varchar(10);not null"`
	Country        string    `gorm:"column:country;type:varchar(50);not null"`
	IsActive       bool      `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Customer) TableName() string {
	return "customers"
}

// CustomerEmployment adalah sub-struct untuk membaca baris employment milik
// customer tanpa import silang ke module employment
type CustomerEmployment struct {
	ID                  uuid.UUID  `gorm:"column:id"`
	CustomerID          uuid.UUID  `gorm:"column:customer_id"`
	CompanyName         string     `gorm:"column:company_name"`
	JobTitle            string     `gorm:"column:job_title"`
	Department          string     `gorm:"column:department"`
	EmploymentType      string     `gorm:"column:employment_type"`
	StartDate           time.Time  `gorm:"column:start_date"`
	EndDate             *time.Time `gorm:"column:end_date"`
	Salary              string     `gorm:"column:salary"`
	WorkAddress         string     `gorm:"column:work_address"`
	WorkCity            string     `gorm:"column:work_city"`
	WorkState           string     `gorm:"column:work_state"`
	WorkPostalCode      string     `gorm:"column:work_postal_code"`
	WorkCountry         string     `gorm:"column:work_country"`
	IsCurrentEmployment bool       `gorm:"column:is_current_employment"`
}

func (CustomerEmployment) TableName() string {
	return "employments"
}
