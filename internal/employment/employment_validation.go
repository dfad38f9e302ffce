package employment

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"customer-registry/internal/shared/apperror"
)

const dateLayout = "2006-01-02"

func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func checkLength(violations []apperror.FieldViolation, field, value string, min, max int) []apperror.FieldViolation {
	l := utf8.RuneCountInString(value)
	if l < min || l > max {
		reason := fmt.Sprintf("must be between %d and %d characters", min, max)
		if min == 0 {
			reason = fmt.Sprintf("must be at most %d characters", max)
		}
		return append(violations, apperror.FieldViolation{Field: field, Reason: reason})
	}
	return violations
}

func checkEmploymentType(violations []apperror.FieldViolation, v string) []apperror.FieldViolation {
	if !IsValidEmploymentType(v) {
		violations = append(violations, apperror.FieldViolation{
			Field: "employment_type",
			Reason: "must be one of: " + strings.Join([]string{
				TypeFullTime, TypePartTime, TypeContract, TypeFreelance, TypeInternship, TypeTemporary,
			}, ", "),
		})
	}
	return violations
}

func parseStartDate(violations []apperror.FieldViolation, raw string) ([]apperror.FieldViolation, time.Time) {
	start, err := time.Parse(dateLayout, raw)
	if err != nil {
		return append(violations, apperror.FieldViolation{
			Field:  "start_date",
			Reason: "must be a valid date in YYYY-MM-DD format",
		}), time.Time{}
	}
	if start.After(startOfToday()) {
		violations = append(violations, apperror.FieldViolation{
			Field:  "start_date",
			Reason: "cannot be in the future",
		})
	}
	return violations, start
}

func parseEndDate(violations []apperror.FieldViolation, raw string) ([]apperror.FieldViolation, *time.Time) {
	end, err := time.Parse(dateLayout, raw)
	if err != nil {
		return append(violations, apperror.FieldViolation{
			Field:  "end_date",
			Reason: "must be a valid date in YYYY-MM-DD format",
		}), nil
	}
	return violations, &end
}

// CheckDateOrder enforces the exact boundary: end_date sama dengan start_date
// ditolak, bukan hanya yang lebih awal.
func CheckDateOrder(start time.Time, end *time.Time) error {
	if end != nil && !end.After(start) {
		return apperror.Validation(apperror.FieldViolation{
			Field:  "end_date",
			Reason: "must be after start date",
		})
	}
	return nil
}

// ValidateNewEmployment trims and bounds every field, checks the employment
// type enum and the date rules, and returns the parsed dates.
func ValidateNewEmployment(req CreateEmploymentRequest) (CreateEmploymentRequest, time.Time, *time.Time, error) {
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	req.Department = strings.TrimSpace(req.Department)
	req.EmploymentType = strings.TrimSpace(req.EmploymentType)
	req.Salary = strings.TrimSpace(req.Salary)
	req.WorkAddress = strings.TrimSpace(req.WorkAddress)
	req.WorkCity = strings.TrimSpace(req.WorkCity)
	req.WorkState = strings.TrimSpace(req.WorkState)
	req.WorkPostalCode = strings.TrimSpace(req.WorkPostalCode)
	req.WorkCountry = strings.TrimSpace(req.WorkCountry)

	var violations []apperror.FieldViolation
	violations = checkLength(violations, "company_name", req.CompanyName, 1, 100)
	violations = checkLength(violations, "job_title", req.JobTitle, 1, 100)
	violations = checkLength(violations, "department", req.Department, 0, 100)
	violations = checkEmploymentType(violations, req.EmploymentType)
	violations = checkLength(violations, "salary", req.Salary, 0, 50)
	violations = checkLength(violations, "work_address", req.WorkAddress, 0, 500)
	violations = checkLength(violations, "work_city", req.WorkCity, 0, 50)
	violations = checkLength(violations, "work_state", req.WorkState, 0, 50)
	violations = checkLength(violations, "work_postal_code", req.WorkPostalCode, 0, 10)
	violations = checkLength(violations, "work_country", req.WorkCountry, 0, 50)

	var start time.Time
	violations, start = parseStartDate(violations, req.StartDate)

	var end *time.Time
	if req.EndDate != "" {
		violations, end = parseEndDate(violations, req.EndDate)
	}

	if len(violations) > 0 {
		return req, time.Time{}, nil, apperror.Validation(violations...)
	}

	if err := CheckDateOrder(start, end); err != nil {
		return req, time.Time{}, nil, err
	}

	return req, start, end, nil
}

// ValidateEmploymentUpdate validates only the supplied fields. The cross-field
// date ordering against the stored record is re-checked by the service after
// the patch is merged.
func ValidateEmploymentUpdate(req UpdateEmploymentRequest) (UpdateEmploymentRequest, *time.Time, *time.Time, error) {
	var violations []apperror.FieldViolation

	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}

	req.CompanyName = trim(req.CompanyName)
	req.JobTitle = trim(req.JobTitle)
	req.Department = trim(req.Department)
	req.EmploymentType = trim(req.EmploymentType)
	req.Salary = trim(req.Salary)
	req.WorkAddress = trim(req.WorkAddress)
	req.WorkCity = trim(req.WorkCity)
	req.WorkState = trim(req.WorkState)
	req.WorkPostalCode = trim(req.WorkPostalCode)
	req.WorkCountry = trim(req.WorkCountry)

	if req.CompanyName != nil {
		violations = checkLength(violations, "company_name", *req.CompanyName, 1, 100)
	}
	if req.JobTitle != nil {
		violations = checkLength(violations, "job_title", *req.JobTitle, 1, 100)
	}
	if req.Department != nil {
		violations = checkLength(violations, "department", *req.Department, 0, 100)
	}
	if req.EmploymentType != nil {
		violations = checkEmploymentType(violations, *req.EmploymentType)
	}
	if req.Salary != nil {
		violations = checkLength(violations, "salary", *req.Salary, 0, 50)
	}
	if req.WorkAddress != nil {
		violations = checkLength(violations, "work_address", *req.WorkAddress, 0, 500)
	}
	if req.WorkCity != nil {
		violations = checkLength(violations, "work_city", *req.WorkCity, 0, 50)
	}
	if req.WorkState != nil {
		violations = checkLength(violations, "work_state", *req.WorkState, 0, 50)
	}
	if req.WorkPostalCode != nil {
		violations = checkLength(violations, "work_postal_code", *req.WorkPostalCode, 0, 10)
	}
	if req.WorkCountry != nil {
		violations = checkLength(violations, "work_country", *req.WorkCountry, 0, 50)
	}

	var start *time.Time
	if req.StartDate != nil {
		var s time.Time
		violations, s = parseStartDate(violations, *req.StartDate)
		if !s.IsZero() {
			start = &s
		}
	}

	var end *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		violations, end = parseEndDate(violations, *req.EndDate)
	}

	if len(violations) > 0 {
		return req, nil, nil, apperror.Validation(violations...)
	}

	return req, start, end, nil
}
