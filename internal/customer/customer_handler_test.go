package customer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"customer-registry/internal/customer"
	customererrors "customer-registry/internal/customer/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeCustomerService struct {
	CreateFn     func(ctx context.Context, req customer.CreateCustomerRequest) (customer.CustomerResponse, error)
	GetByIDFn    func(ctx context.Context, id string) (customer.CustomerDetailResponse, error)
	GetByEmailFn func(ctx context.Context, email string) (customer.CustomerDetailResponse, error)
	ListFn       func(ctx context.Context, q customer.ListCustomersQuery) ([]customer.CustomerResponse, int64, error)
	UpdateFn     func(ctx context.Context, id string, req customer.UpdateCustomerRequest) (customer.CustomerResponse, error)
	SoftDeleteFn func(ctx context.Context, id string) error
	HardDeleteFn func(ctx context.Context, id string) error
}

func (f *fakeCustomerService) Create(ctx context.Context, req customer.CreateCustomerRequest) (customer.CustomerResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeCustomerService) GetByID(ctx context.Context, id string) (customer.CustomerDetailResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeCustomerService) GetByEmail(ctx context.Context, email string) (customer.CustomerDetailResponse, error) {
	return f.GetByEmailFn(ctx, email)
}
func (f *fakeCustomerService) List(ctx context.Context, q customer.ListCustomersQuery) ([]customer.CustomerResponse, int64, error) {
	return f.ListFn(ctx, q)
}
func (f *fakeCustomerService) Update(ctx context.Context, id string, req customer.UpdateCustomerRequest) (customer.CustomerResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeCustomerService) SoftDelete(ctx context.Context, id string) error {
	return f.SoftDeleteFn(ctx, id)
}
func (f *fakeCustomerService) HardDelete(ctx context.Context, id string) error {
	return f.HardDeleteFn(ctx, id)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCustomerHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeCustomerService{
			CreateFn: func(ctx context.Context, req customer.CreateCustomerRequest) (customer.CustomerResponse, error) {
				assert.Equal(t, "budi@example.com", req.Email)
				return customer.CustomerResponse{ID: uuid.New().String(), Email: req.Email}, nil
			},
		}

		h := customer.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{
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
		}`
		c.Request = httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":true`)
	})

	t.Run("binding error returns 400 envelope", func(t *testing.T) {
		h := customer.NewHandler(&fakeCustomerService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":false`)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("conflict error mapped to 409", func(t *testing.T) {
		svc := &fakeCustomerService{
			CreateFn: func(ctx context.Context, req customer.CreateCustomerRequest) (customer.CustomerResponse, error) {
				return customer.CustomerResponse{}, customererrors.ErrEmailAlreadyRegistered
			},
		}

		h := customer.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"first_name":"A","last_name":"B","email":"dup@example.com","phone":"081234567890","date_of_birth":"1990-05-20","address":"Jl. Sudirman","city":"Jakarta","state":"DKI","postal_code":"10110","country":"ID"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
		assert.Contains(t, w.Body.String(), "Email already registered")
	})
}

func TestCustomerHandler_List(t *testing.T) {
	t.Run("pagination meta from pre-pagination total", func(t *testing.T) {
		svc := &fakeCustomerService{
			ListFn: func(ctx context.Context, q customer.ListCustomersQuery) ([]customer.CustomerResponse, int64, error) {
				assert.Equal(t, 10, q.Skip)
				assert.Equal(t, 10, q.Limit)
				return []customer.CustomerResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}}, 25, nil
			},
		}

		h := customer.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/customers?skip=10&limit=10", nil)

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var envelope struct {
			Meta struct {
				Total int64 `json:"total"`
				Page  int   `json:"page"`
				Size  int   `json:"size"`
			} `json:"meta"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.Equal(t, int64(25), envelope.Meta.Total)
		assert.Equal(t, 2, envelope.Meta.Page)
		assert.Equal(t, 2, envelope.Meta.Size)
	})

	t.Run("filters forwarded to service", func(t *testing.T) {
		svc := &fakeCustomerService{
			ListFn: func(ctx context.Context, q customer.ListCustomersQuery) ([]customer.CustomerResponse, int64, error) {
				assert.Equal(t, "jakarta", q.Search)
				assert.NotNil(t, q.IsActive)
				assert.False(t, *q.IsActive)
				return nil, 0, nil
			},
		}

		h := customer.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/customers?search=jakarta&is_active=false", nil)

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid is_active rejected", func(t *testing.T) {
		h := customer.NewHandler(&fakeCustomerService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/customers?is_active=maybe", nil)

		h.List(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCustomerHandler_GetByID(t *testing.T) {
	t.Run("success with null employment", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeCustomerService{
			GetByIDFn: func(ctx context.Context, got string) (customer.CustomerDetailResponse, error) {
				assert.Equal(t, id, got)
				return customer.CustomerDetailResponse{
					CustomerResponse: customer.CustomerResponse{ID: id},
				}, nil
			},
		}

		h := customer.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Request = httptest.NewRequest(http.MethodGet, "/customers/"+id, nil)

		h.GetByID(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"employment":null`)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeCustomerService{
			GetByIDFn: func(ctx context.Context, id string) (customer.CustomerDetailResponse, error) {
				return customer.CustomerDetailResponse{}, customererrors.ErrCustomerNotFound
			},
		}

		h := customer.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Request = httptest.NewRequest(http.MethodGet, "/customers/x", nil)

		h.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})
}

func TestCustomerHandler_SoftDelete(t *testing.T) {
	t.Run("success message", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeCustomerService{
			SoftDeleteFn: func(ctx context.Context, got string) error {
				assert.Equal(t, id, got)
				return nil
			},
		}

		h := customer.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Request = httptest.NewRequest(http.MethodDelete, "/customers/"+id, nil)

		h.SoftDelete(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "has been deactivated")
	})
}

func TestCustomerHandler_HardDelete(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		svc := &fakeCustomerService{
			HardDeleteFn: func(ctx context.Context, id string) error {
				return customererrors.ErrInvalidCustomerID
			},
		}

		h := customer.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		c.Request = httptest.NewRequest(http.MethodDelete, "/customers/abc/hard", nil)

		h.HardDelete(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
