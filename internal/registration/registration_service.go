package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"customer-registry/internal/customer"
	customererrors "customer-registry/internal/customer/errors"
	"customer-registry/internal/employment"
	"customer-registry/internal/events"
	"customer-registry/internal/messaging/kafka"
	"customer-registry/internal/shared/contextutil"
	"customer-registry/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (RegistrationResponse, error)
}

type service struct {
	db             *gorm.DB
	customerRepo   customer.Repository
	employmentRepo employment.Repository
	counter        counter.Repository
	outbox         kafka.OutboxRepository
	rdb            *redis.Client
	logger         *zap.Logger
}

func NewService(
	db *gorm.DB,
	customerRepo customer.Repository,
	employmentRepo employment.Repository,
	counterRepo counter.Repository,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("registration.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("registration.service")
	}
	return &service{
		db:             db,
		customerRepo:   customerRepo,
		employmentRepo: employmentRepo,
		counter:        counterRepo,
		outbox:         outbox,
		rdb:            rdb,
		logger:         l,
	}
}

// Register membuat customer dan employment dalam satu transaksi. Kedua payload
// divalidasi lebih dulu sebelum ada tulisan apa pun; kegagalan di tengah
// membatalkan seluruhnya, tidak pernah ada customer tanpa employment.
func (s *service) Register(ctx context.Context, req RegisterRequest) (RegistrationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("registration requested",
		zap.String("request_id", rid),
		zap.String("email", req.Customer.Email),
	)

	custReq, dob, err := customer.ValidateNewCustomer(req.Customer)
	if err != nil {
		s.logger.Warn("registration customer validation failed", zap.String("request_id", rid), zap.Error(err))
		return RegistrationResponse{}, err
	}

	emplReq, start, end, err := employment.ValidateNewEmployment(req.Employment)
	if err != nil {
		s.logger.Warn("registration employment validation failed", zap.String("request_id", rid), zap.Error(err))
		return RegistrationResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("registration begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return RegistrationResponse{}, tx.Error
	}
	defer tx.Rollback()

	custTx := s.customerRepo.WithTx(tx)
	emplTx := s.employmentRepo.WithTx(tx)
	outboxTx := s.outbox.WithTx(tx)

	if _, err := custTx.FindByEmail(ctx, custReq.Email); err == nil {
		s.logger.Warn("registration email already registered",
			zap.String("request_id", rid),
			zap.String("email", custReq.Email),
		)
		return RegistrationResponse{}, customererrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return RegistrationResponse{}, err
	}

	nextVal, err := s.counter.GetNextValue(ctx, "customer_number")
	if err != nil {
		s.logger.Error("registration generate customer number failed", zap.Error(err))
		return RegistrationResponse{}, err
	}

	cust := &customer.Customer{
		ID:             uuid.New(),
		CustomerNumber: fmt.Sprintf("CUS-%06d", nextVal),
		FirstName:      custReq.FirstName,
		LastName:       custReq.LastName,
		Email:          custReq.Email,
		Phone:          custReq.Phone,
		DateOfBirth:    dob,
		Address:        custReq.Address,
		City:           custReq.City,
		State:          custReq.State,
		PostalCode:     custReq.PostalCode,
		Country:        custReq.Country,
		IsActive:       true,
	}

	if err := custTx.Create(ctx, cust); err != nil {
		s.logger.Error("registration persist customer failed", zap.Error(err))
		return RegistrationResponse{}, customer.MapRepositoryError(err)
	}

	empl := employment.NewEmployment(cust.ID, emplReq, start, end)

	if err := emplTx.Create(ctx, empl); err != nil {
		s.logger.Error("registration persist employment failed", zap.Error(err))
		return RegistrationResponse{}, employment.MapRepositoryError(err)
	}

	// Outbox ditulis di transaksi yang sama; worker yang mengirim ke Kafka
	payload, err := json.Marshal(events.CustomerRegisteredEvent{
		EventType:    "customer_registered",
		RequestID:    rid,
		CustomerID:   cust.ID.String(),
		Email:        cust.Email,
		EmploymentID: empl.ID.String(),
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return RegistrationResponse{}, err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "customer",
		AggregateID:   cust.ID.String(),
		EventType:     "customer_registered",
		Topic:         events.CustomerRegisteredTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(outboxEvent); err != nil {
		return RegistrationResponse{}, err
	}
	if err := outboxTx.Create(ctx, outboxEvent); err != nil {
		s.logger.Error("registration persist outbox failed", zap.Error(err))
		return RegistrationResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("registration commit failed", zap.String("request_id", rid), zap.Error(err))
		return RegistrationResponse{}, err
	}

	s.invalidateDetailCache(ctx, cust.ID.String())
	s.logger.Info("registration success",
		zap.String("request_id", rid),
		zap.String("customer_id", cust.ID.String()),
		zap.String("employment_id", empl.ID.String()),
	)

	return RegistrationResponse{
		Customer:   customer.ToResponse(*cust),
		Employment: employment.ToResponse(*empl),
	}, nil
}

func (s *service) invalidateDetailCache(ctx context.Context, customerID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := customer.GetDetailCacheKey(customerID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate customer detail cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}
