package registration_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"customer-registry/internal/customer"
	customererrors "customer-registry/internal/customer/errors"
	"customer-registry/internal/employment"
	employmenterrors "customer-registry/internal/employment/errors"
	"customer-registry/internal/events"
	"customer-registry/internal/messaging/kafka"
	"customer-registry/internal/registration"
	"customer-registry/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeCustomerRepo struct {
	CreateFn      func(ctx context.Context, cust *customer.Customer) error
	FindByEmailFn func(ctx context.Context, email string) (*customer.Customer, error)
}

func (f *fakeCustomerRepo) WithTx(tx *gorm.DB) customer.Repository { return f }
func (f *fakeCustomerRepo) Create(ctx context.Context, cust *customer.Customer) error {
	return f.CreateFn(ctx, cust)
}
func (f *fakeCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	panic("not used")
}
func (f *fakeCustomerRepo) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return f.FindByEmailFn(ctx, email)
}
func (f *fakeCustomerRepo) FindAll(ctx context.Context, q customer.ListCustomersQuery) ([]customer.Customer, int64, error) {
	panic("not used")
}
func (f *fakeCustomerRepo) Save(ctx context.Context, cust *customer.Customer) error {
	panic("not used")
}
func (f *fakeCustomerRepo) HardDelete(ctx context.Context, id uuid.UUID) error { panic("not used") }
func (f *fakeCustomerRepo) FindEmploymentByCustomer(ctx context.Context, customerID uuid.UUID) (*customer.CustomerEmployment, error) {
	panic("not used")
}
func (f *fakeCustomerRepo) DeleteEmploymentByCustomer(ctx context.Context, customerID uuid.UUID) error {
	panic("not used")
}

type fakeEmploymentRepo struct {
	CreateFn func(ctx context.Context, empl *employment.Employment) error
}

func (f *fakeEmploymentRepo) WithTx(tx *gorm.DB) employment.Repository { return f }
func (f *fakeEmploymentRepo) Create(ctx context.Context, empl *employment.Employment) error {
	return f.CreateFn(ctx, empl)
}
func (f *fakeEmploymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*employment.Employment, error) {
	panic("not used")
}
func (f *fakeEmploymentRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*employment.Employment, error) {
	panic("not used")
}
func (f *fakeEmploymentRepo) FindAll(ctx context.Context, q employment.ListEmploymentsQuery) ([]employment.Employment, int64, error) {
	panic("not used")
}
func (f *fakeEmploymentRepo) Save(ctx context.Context, empl *employment.Employment) error {
	panic("not used")
}
func (f *fakeEmploymentRepo) Delete(ctx context.Context, id uuid.UUID) error { panic("not used") }
func (f *fakeEmploymentRepo) FindCustomer(ctx context.Context, customerID uuid.UUID) (*employment.EmploymentCustomer, error) {
	panic("not used")
}

type fakeCounterRepo struct {
	GetNextValueFn func(ctx context.Context, counterType string) (int64, error)
}

func (f *fakeCounterRepo) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	return f.GetNextValueFn(ctx, counterType)
}

type fakeOutboxRepo struct {
	CreateFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepo) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	return f.CreateFn(ctx, event)
}
func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	panic("not used")
}
func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error { panic("not used") }
func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	panic("not used")
}

type regDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	custRepo  *fakeCustomerRepo
	emplRepo  *fakeEmploymentRepo
	counter   *fakeCounterRepo
	outbox    *fakeOutboxRepo
	redisMock redismock.ClientMock
	service   registration.Service
}

func setupRegistrationTest(t *testing.T) *regDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	rdb, redisMock := redismock.NewClientMock()

	custRepo := &fakeCustomerRepo{}
	emplRepo := &fakeEmploymentRepo{}
	counterRepo := &fakeCounterRepo{}
	outboxRepo := &fakeOutboxRepo{}

	svc := registration.NewService(gormDB, custRepo, emplRepo, counterRepo, outboxRepo, rdb)

	return &regDeps{
		db:        db,
		sqlMock:   sqlMock,
		custRepo:  custRepo,
		emplRepo:  emplRepo,
		counter:   counterRepo,
		outbox:    outboxRepo,
		redisMock: redisMock,
		service:   svc,
	}
}

func validRegisterRequest() registration.RegisterRequest {
	return registration.RegisterRequest{
		Customer: customer.CreateCustomerRequest{
			FirstName:   "Budi",
			LastName:    "Santoso",
			Email:       "budi@example.com",
			Phone:       "081234567890",
			DateOfBirth: "1990-05-20",
			Address:     "Jl. Sudirman No. 1",
			City:        "Jakarta",
			State:       "DKI Jakarta",
			PostalCode:  "10110",
			Country:     "Indonesia",
		},
		Employment: employment.CreateEmploymentRequest{
			CompanyName:    "PT Maju Jaya",
			JobTitle:       "Software Engineer",
			EmploymentType: employment.TypeFullTime,
			StartDate:      "2022-01-10",
		},
	}
}

func TestRegistrationService_Register(t *testing.T) {
	t.Run("success - customer, employment and outbox in one transaction", func(t *testing.T) {
		deps := setupRegistrationTest(t)
		defer deps.db.Close()

		rid := "REQ-REG-001"
		ctx := contextutil.WithRequestID(context.Background(), rid)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.custRepo.FindByEmailFn = func(ctx context.Context, email string) (*customer.Customer, error) {
			return nil, gorm.ErrRecordNotFound
		}
		deps.counter.GetNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			assert.Equal(t, "customer_number", counterType)
			return 42, nil
		}

		var createdCustomer *customer.Customer
		deps.custRepo.CreateFn = func(ctx context.Context, cust *customer.Customer) error {
			createdCustomer = cust
			return nil
		}

		var createdEmployment *employment.Employment
		deps.emplRepo.CreateFn = func(ctx context.Context, empl *employment.Employment) error {
			createdEmployment = empl
			return nil
		}

		var outboxEvent kafka.OutboxEvent
		deps.outbox.CreateFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			outboxEvent = event
			return nil
		}

		deps.redisMock.Regexp().ExpectDel(`customers:detail:.*`).SetVal(1)

		resp, err := deps.service.Register(ctx, validRegisterRequest())

		assert.NoError(t, err)
		assert.NotNil(t, createdCustomer)
		assert.NotNil(t, createdEmployment)
		assert.Equal(t, "CUS-000042", createdCustomer.CustomerNumber)
		assert.Equal(t, createdCustomer.ID, createdEmployment.CustomerID)

		assert.Equal(t, events.CustomerRegisteredTopic, outboxEvent.Topic)
		assert.Equal(t, "customer_registered", outboxEvent.EventType)
		assert.Equal(t, kafka.OutboxStatusPending, outboxEvent.Status)
		assert.Equal(t, rid, outboxEvent.RequestID)

		var event events.CustomerRegisteredEvent
		assert.NoError(t, json.Unmarshal(outboxEvent.Payload, &event))
		assert.Equal(t, createdCustomer.ID.String(), event.CustomerID)
		assert.Equal(t, createdEmployment.ID.String(), event.EmploymentID)
		assert.Equal(t, "budi@example.com", event.Email)

		assert.Equal(t, "CUS-000042", resp.Customer.CustomerNumber)
		assert.Equal(t, createdEmployment.ID.String(), resp.Employment.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid employment payload - nothing is written", func(t *testing.T) {
		deps := setupRegistrationTest(t)
		defer deps.db.Close()

		req := validRegisterRequest()
		req.Employment.EmploymentType = "Casual"

		deps.custRepo.CreateFn = func(ctx context.Context, cust *customer.Customer) error {
			t.Fatal("customer must not be created when employment payload is invalid")
			return nil
		}

		_, err := deps.service.Register(context.Background(), req)

		assert.Error(t, err)
		// Tidak ada ExpectBegin: kedua payload divalidasi sebelum transaksi dibuka
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid customer payload - nothing is written", func(t *testing.T) {
		deps := setupRegistrationTest(t)
		defer deps.db.Close()

		req := validRegisterRequest()
		req.Customer.DateOfBirth = "20-05-1990"

		_, err := deps.service.Register(context.Background(), req)

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("email already registered rolls back", func(t *testing.T) {
		deps := setupRegistrationTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.custRepo.FindByEmailFn = func(ctx context.Context, email string) (*customer.Customer, error) {
			return &customer.Customer{ID: uuid.New(), Email: email}, nil
		}
		deps.counter.GetNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			t.Fatal("counter must not advance when email conflicts")
			return 0, nil
		}

		_, err := deps.service.Register(context.Background(), validRegisterRequest())

		assert.ErrorIs(t, err, customererrors.ErrEmailAlreadyRegistered)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("employment insert failure rolls back the customer too", func(t *testing.T) {
		deps := setupRegistrationTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.custRepo.FindByEmailFn = func(ctx context.Context, email string) (*customer.Customer, error) {
			return nil, gorm.ErrRecordNotFound
		}
		deps.counter.GetNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			return 1, nil
		}
		deps.custRepo.CreateFn = func(ctx context.Context, cust *customer.Customer) error {
			return nil
		}
		deps.emplRepo.CreateFn = func(ctx context.Context, empl *employment.Employment) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employment_customer"}
		}
		deps.outbox.CreateFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			t.Fatal("outbox must not be written after employment insert failed")
			return nil
		}

		_, err := deps.service.Register(context.Background(), validRegisterRequest())

		assert.ErrorIs(t, err, employmenterrors.ErrEmploymentAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("outbox failure rolls back everything", func(t *testing.T) {
		deps := setupRegistrationTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.custRepo.FindByEmailFn = func(ctx context.Context, email string) (*customer.Customer, error) {
			return nil, gorm.ErrRecordNotFound
		}
		deps.counter.GetNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			return 1, nil
		}
		deps.custRepo.CreateFn = func(ctx context.Context, cust *customer.Customer) error { return nil }
		deps.emplRepo.CreateFn = func(ctx context.Context, empl *employment.Employment) error { return nil }
		deps.outbox.CreateFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			return assert.AnError
		}

		_, err := deps.service.Register(context.Background(), validRegisterRequest())

		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
