package employment_test

import (
	"testing"
	"time"

	"customer-registry/internal/employment"
	"customer-registry/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func validEmploymentRequest() employment.CreateEmploymentRequest {
	return employment.CreateEmploymentRequest{
		CompanyName:    "PT Maju Jaya",
		JobTitle:       "Software Engineer",
		Department:     "Engineering",
		EmploymentType: employment.TypeFullTime,
		StartDate:      "2022-01-10",
		Salary:         "15000000 IDR",
		WorkCity:       "Bandung",
	}
}

func emplViolationFields(t *testing.T, err error) []string {
	t.Helper()
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	violations, ok := appErr.Details.([]apperror.FieldViolation)
	assert.True(t, ok)
	fields := make([]string, len(violations))
	for i, v := range violations {
		fields[i] = v.Field
	}
	return fields
}

func TestValidateNewEmployment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		req, start, end, err := employment.ValidateNewEmployment(validEmploymentRequest())

		assert.NoError(t, err)
		assert.Equal(t, "PT Maju Jaya", req.CompanyName)
		assert.Equal(t, 2022, start.Year())
		assert.Nil(t, end)
	})

	t.Run("invalid employment type rejected", func(t *testing.T) {
		req := validEmploymentRequest()
		req.EmploymentType = "Permanent"

		_, _, _, err := employment.ValidateNewEmployment(req)

		assert.Contains(t, emplViolationFields(t, err), "employment_type")
	})

	t.Run("start date in the future rejected", func(t *testing.T) {
		req := validEmploymentRequest()
		req.StartDate = time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

		_, _, _, err := employment.ValidateNewEmployment(req)

		assert.Contains(t, emplViolationFields(t, err), "start_date")
	})

	t.Run("start date today accepted", func(t *testing.T) {
		req := validEmploymentRequest()
		req.StartDate = time.Now().UTC().Format("2006-01-02")

		_, _, _, err := employment.ValidateNewEmployment(req)

		assert.NoError(t, err)
	})

	t.Run("end date equal to start date rejected", func(t *testing.T) {
		req := validEmploymentRequest()
		req.EndDate = req.StartDate

		_, _, _, err := employment.ValidateNewEmployment(req)

		assert.Error(t, err)
		assert.Contains(t, emplViolationFields(t, err), "end_date")
	})

	t.Run("end date after start date accepted", func(t *testing.T) {
		req := validEmploymentRequest()
		req.EndDate = "2023-06-30"

		_, _, end, err := employment.ValidateNewEmployment(req)

		assert.NoError(t, err)
		assert.NotNil(t, end)
	})

	t.Run("company name trimmed and required", func(t *testing.T) {
		req := validEmploymentRequest()
		req.CompanyName = "   "

		_, _, _, err := employment.ValidateNewEmployment(req)

		assert.Contains(t, emplViolationFields(t, err), "company_name")
	})

	t.Run("collects all violations", func(t *testing.T) {
		req := validEmploymentRequest()
		req.CompanyName = ""
		req.JobTitle = ""
		req.StartDate = "31-12-2022"

		_, _, _, err := employment.ValidateNewEmployment(req)

		fields := emplViolationFields(t, err)
		assert.Contains(t, fields, "company_name")
		assert.Contains(t, fields, "job_title")
		assert.Contains(t, fields, "start_date")
	})
}

func TestValidateEmploymentUpdate(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("nil fields skipped", func(t *testing.T) {
		_, start, end, err := employment.ValidateEmploymentUpdate(employment.UpdateEmploymentRequest{})

		assert.NoError(t, err)
		assert.Nil(t, start)
		assert.Nil(t, end)
	})

	t.Run("supplied type validated", func(t *testing.T) {
		req := employment.UpdateEmploymentRequest{EmploymentType: strPtr("Casual")}

		_, _, _, err := employment.ValidateEmploymentUpdate(req)

		assert.Contains(t, emplViolationFields(t, err), "employment_type")
	})

	t.Run("dates parsed when supplied", func(t *testing.T) {
		req := employment.UpdateEmploymentRequest{
			StartDate: strPtr("2021-02-01"),
			EndDate:   strPtr("2023-02-01"),
		}

		_, start, end, err := employment.ValidateEmploymentUpdate(req)

		assert.NoError(t, err)
		assert.NotNil(t, start)
		assert.NotNil(t, end)
	})
}

func TestCheckDateOrder(t *testing.T) {
	start := time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("nil end date passes", func(t *testing.T) {
		assert.NoError(t, employment.CheckDateOrder(start, nil))
	})

	t.Run("end before start rejected", func(t *testing.T) {
		end := start.AddDate(0, 0, -1)
		assert.Error(t, employment.CheckDateOrder(start, &end))
	})

	t.Run("end equal to start rejected", func(t *testing.T) {
		end := start
		assert.Error(t, employment.CheckDateOrder(start, &end))
	})

	t.Run("end after start passes", func(t *testing.T) {
		end := start.AddDate(0, 0, 1)
		assert.NoError(t, employment.CheckDateOrder(start, &end))
	})
}
