package customer

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"customer-registry/internal/shared/apperror"
)

const dateLayout = "2006-01-02"

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func checkLength(violations []apperror.FieldViolation, field, value string, min, max int) []apperror.FieldViolation {
	l := utf8.RuneCountInString(value)
	if l < min || l > max {
		return append(violations, apperror.FieldViolation{
			Field:  field,
			Reason: lengthReason(min, max),
		})
	}
	return violations
}

func lengthReason(min, max int) string {
	if min <= 1 {
		return fmt.Sprintf("must be between 1 and %d characters", max)
	}
	return fmt.Sprintf("must be between %d and %d characters", min, max)
}

func validateDateOfBirth(violations []apperror.FieldViolation, raw string) ([]apperror.FieldViolation, time.Time) {
	dob, err := time.Parse(dateLayout, raw)
	if err != nil {
		return append(violations, apperror.FieldViolation{
			Field:  "date_of_birth",
			Reason: "must be a valid date in YYYY-MM-DD format",
		}), time.Time{}
	}

	if !dob.Before(startOfToday()) {
		violations = append(violations, apperror.FieldViolation{
			Field:  "date_of_birth",
			Reason: "cannot be in the future",
		})
	}
	if dob.Year() < 1900 {
		violations = append(violations, apperror.FieldViolation{
			Field:  "date_of_birth",
			Reason: "cannot be before 1900",
		})
	}

	return violations, dob
}

func validatePhone(violations []apperror.FieldViolation, phone string) []apperror.FieldViolation {
	// Formatting asli tetap disimpan; hanya jumlah digitnya yang divalidasi
	if digitCount(phone) < 10 {
		violations = append(violations, apperror.FieldViolation{
			Field:  "phone",
			Reason: "must contain at least 10 digits",
		})
	}
	return violations
}

// ValidateNewCustomer trims every string field, enforces the field bounds and
// date/phone rules, and returns the normalized payload plus the parsed date
// of birth. Violations are collected, not first-fail.
func ValidateNewCustomer(req CreateCustomerRequest) (CreateCustomerRequest, time.Time, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	req.City = strings.TrimSpace(req.City)
	req.State = strings.TrimSpace(req.State)
	req.PostalCode = strings.TrimSpace(req.PostalCode)
	req.Country = strings.TrimSpace(req.Country)

	var violations []apperror.FieldViolation
	violations = checkLength(violations, "first_name", req.FirstName, 1, 50)
	violations = checkLength(violations, "last_name", req.LastName, 1, 50)
	violations = checkLength(violations, "email", req.Email, 1, 100)
	violations = checkLength(violations, "phone", req.Phone, 10, 20)
	violations = checkLength(violations, "address", req.Address, 5, 500)
	violations = checkLength(violations, "city", req.City, 1, 50)
	violations = checkLength(violations, "state", req.State, 1, 50)
	violations = checkLength(violations, "postal_code", req.PostalCode, 3, 10)
	violations = checkLength(violations, "country", req.Country, 1, 50)
	violations = validatePhone(violations, req.Phone)

	var dob time.Time
	violations, dob = validateDateOfBirth(violations, req.DateOfBirth)

	if len(violations) > 0 {
		return req, time.Time{}, apperror.Validation(violations...)
	}

	return req, dob, nil
}

// ValidateCustomerUpdate validates only the supplied fields; nil pointers are
// left untouched on the target entity.
func ValidateCustomerUpdate(req UpdateCustomerRequest) (UpdateCustomerRequest, *time.Time, error) {
	var violations []apperror.FieldViolation

	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}

	req.FirstName = trim(req.FirstName)
	req.LastName = trim(req.LastName)
	req.Email = trim(req.Email)
	req.Phone = trim(req.Phone)
	req.Address = trim(req.Address)
	req.City = trim(req.City)
	req.State = trim(req.State)
	req.PostalCode = trim(req.PostalCode)
	req.Country = trim(req.Country)

	if req.FirstName != nil {
		violations = checkLength(violations, "first_name", *req.FirstName, 1, 50)
	}
	if req.LastName != nil {
		violations = checkLength(violations, "last_name", *req.LastName, 1, 50)
	}
	if req.Email != nil {
		violations = checkLength(violations, "email", *req.Email, 1, 100)
	}
	if req.Phone != nil {
		violations = checkLength(violations, "phone", *req.Phone, 10, 20)
		violations = validatePhone(violations, *req.Phone)
	}
	if req.Address != nil {
		violations = checkLength(violations, "address", *req.Address, 5, 500)
	}
	if req.City != nil {
		violations = checkLength(violations, "city", *req.City, 1, 50)
	}
	if req.State != nil {
		violations = checkLength(violations, "state", *req.State, 1, 50)
	}
	if req.PostalCode != nil {
		violations = checkLength(violations, "postal_code", *req.PostalCode, 3, 10)
	}
	if req.Country != nil {
		violations = checkLength(violations, "country", *req.Country, 1, 50)
	}

	var dobPtr *time.Time
	if req.DateOfBirth != nil {
		var dob time.Time
		violations, dob = validateDateOfBirth(violations, *req.DateOfBirth)
		if !dob.IsZero() {
			dobPtr = &dob
		}
	}

	if len(violations) > 0 {
		return req, nil, apperror.Validation(violations...)
	}

	return req, dobPtr, nil
}
