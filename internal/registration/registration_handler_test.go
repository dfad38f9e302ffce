package registration_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	customererrors "customer-registry/internal/customer/errors"
	"customer-registry/internal/registration"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRegistrationService struct {
	RegisterFn func(ctx context.Context, req registration.RegisterRequest) (registration.RegistrationResponse, error)
}

func (f *fakeRegistrationService) Register(ctx context.Context, req registration.RegisterRequest) (registration.RegistrationResponse, error) {
	return f.RegisterFn(ctx, req)
}

func init() {
	gin.SetMode(gin.TestMode)
}

const registerBody = `{
	"customer": {
		"first_name": "Budi",
		"last_name": "Santoso",
		"email": "budi@example.com",
		"phone": "081234567890",
		"date_of_birth": "1990-05-20",
		"address": "Jl. Sudirman No. 1",
		"city": "Jakarta",
		"state": "DKI Jakarta",
		"postal_code": "10110",
		"country": "Indonesia"
	},
	"employment": {
		"company_name": "PT Maju Jaya",
		"job_title": "Software Engineer",
		"employment_type": "Full-time",
		"start_date": "2022-01-10"
	}
}`

func TestRegistrationHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeRegistrationService{
			RegisterFn: func(ctx context.Context, req registration.RegisterRequest) (registration.RegistrationResponse, error) {
				assert.Equal(t, "budi@example.com", req.Customer.Email)
				assert.Equal(t, "PT Maju Jaya", req.Employment.CompanyName)
				resp := registration.RegistrationResponse{}
				resp.Customer.ID = uuid.New().String()
				resp.Employment.ID = uuid.New().String()
				return resp, nil
			},
		}

		h := registration.NewHandler(svc, nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/registration", strings.NewReader(registerBody))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"customer"`)
		assert.Contains(t, w.Body.String(), `"employment"`)
	})

	t.Run("binding error", func(t *testing.T) {
		h := registration.NewHandler(&fakeRegistrationService{}, nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/registration", strings.NewReader(`{"customer": {}}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict from service", func(t *testing.T) {
		svc := &fakeRegistrationService{
			RegisterFn: func(ctx context.Context, req registration.RegisterRequest) (registration.RegistrationResponse, error) {
				return registration.RegistrationResponse{}, customererrors.ErrEmailAlreadyRegistered
			},
		}

		h := registration.NewHandler(svc, nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/registration", strings.NewReader(registerBody))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Register(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
