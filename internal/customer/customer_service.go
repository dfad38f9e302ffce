package customer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	customererrors "customer-registry/internal/customer/errors"
	"customer-registry/internal/shared/contextutil"
	"customer-registry/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const DetailCacheKeyPrefix = "customers:detail:"

const detailCacheTTL = 10 * time.Minute

func GetDetailCacheKey(customerID string) string {
	return DetailCacheKeyPrefix + customerID
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (CustomerResponse, error)
	GetByID(ctx context.Context, id string) (CustomerDetailResponse, error)
	GetByEmail(ctx context.Context, email string) (CustomerDetailResponse, error)
	List(ctx context.Context, q ListCustomersQuery) ([]CustomerResponse, int64, error)
	Update(ctx context.Context, id string, req UpdateCustomerRequest) (CustomerResponse, error)
	SoftDelete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

type service struct {
	db      *gorm.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("customer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("customer.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateCustomerRequest) (CustomerResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create customer requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	req, dob, err := ValidateNewCustomer(req)
	if err != nil {
		s.logger.Warn("create customer validation failed", zap.String("request_id", rid), zap.Error(err))
		return CustomerResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create customer begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return CustomerResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Cek email lebih dulu untuk pesan konflik yang ramah; unique index
	// uq_customer_email tetap jadi backstop saat race.
	if _, err := qtx.FindByEmail(ctx, req.Email); err == nil {
		s.logger.Warn("create customer email already registered",
			zap.String("request_id", rid),
			zap.String("email", req.Email),
		)
		return CustomerResponse{}, customererrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return CustomerResponse{}, err
	}

	nextVal, err := s.counter.GetNextValue(ctx, "customer_number")
	if err != nil {
		s.logger.Error("create customer generate number failed", zap.Error(err))
		return CustomerResponse{}, err
	}

	cust := &Customer{
		ID:             uuid.New(),
		CustomerNumber: fmt.Sprintf("CUS-%06d", nextVal),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		DateOfBirth:    dob,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		PostalCode:     req.PostalCode,
		Country:        req.Country,
		IsActive:       true,
	}

	if err := qtx.Create(ctx, cust); err != nil {
		s.logger.Error("create customer persist failed", zap.Error(err))
		return CustomerResponse{}, MapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create customer commit failed", zap.String("request_id", rid), zap.Error(err))
		return CustomerResponse{}, err
	}

	s.logger.Info("create customer success",
		zap.String("request_id", rid),
		zap.String("customer_id", cust.ID.String()),
	)

	return ToResponse(*cust), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CustomerDetailResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return CustomerDetailResponse{}, customererrors.ErrInvalidCustomerID
	}

	cacheKey := GetDetailCacheKey(id)

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp CustomerDetailResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight agar concurrent cache-miss tidak membanjiri database
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		detail, err := s.assembleDetail(ctx, uid)
		if err != nil {
			return CustomerDetailResponse{}, err
		}

		// 3. Simpan ke Redis
		if s.rdb != nil {
			if jsonData, err := json.Marshal(detail); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, detailCacheTTL)
			}
		}

		return detail, nil
	})
	if err != nil {
		return CustomerDetailResponse{}, err
	}

	return v.(CustomerDetailResponse), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (CustomerDetailResponse, error) {
	cust, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return CustomerDetailResponse{}, MapRepositoryError(err)
	}

	empl, err := s.findEmployment(ctx, cust.ID)
	if err != nil {
		return CustomerDetailResponse{}, err
	}

	return toDetailResponse(*cust, empl), nil
}

func (s *service) List(ctx context.Context, q ListCustomersQuery) ([]CustomerResponse, int64, error) {
	q.Params = q.Params.Normalize()

	customers, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		s.logger.Error("list customers failed", zap.Error(err))
		return nil, 0, MapRepositoryError(err)
	}

	return mapToListResponse(customers), total, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCustomerRequest) (CustomerResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return CustomerResponse{}, customererrors.ErrInvalidCustomerID
	}

	req, dobPtr, err := ValidateCustomerUpdate(req)
	if err != nil {
		s.logger.Warn("update customer validation failed", zap.String("customer_id", id), zap.Error(err))
		return CustomerResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return CustomerResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cust, err := qtx.FindByID(ctx, uid)
	if err != nil {
		return CustomerResponse{}, MapRepositoryError(err)
	}

	// Email yang sama dengan milik sendiri bukan konflik
	if req.Email != nil && *req.Email != cust.Email {
		if _, err := qtx.FindByEmail(ctx, *req.Email); err == nil {
			s.logger.Warn("update customer email already registered",
				zap.String("customer_id", id),
				zap.String("email", *req.Email),
			)
			return CustomerResponse{}, customererrors.ErrEmailAlreadyRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return CustomerResponse{}, err
		}
		cust.Email = *req.Email
	}

	applyCustomerPatch(cust, req, dobPtr)

	if err := qtx.Save(ctx, cust); err != nil {
		s.logger.Error("update customer persist failed", zap.Error(err))
		return CustomerResponse{}, MapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return CustomerResponse{}, err
	}

	s.invalidateDetailCache(ctx, id)
	s.logger.Info("update customer success", zap.String("customer_id", id))

	return ToResponse(*cust), nil
}

// SoftDelete menandai customer tidak aktif; baris tetap disimpan. Memanggil
// ulang pada customer yang sudah tidak aktif tetap sukses.
func (s *service) SoftDelete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return customererrors.ErrInvalidCustomerID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cust, err := qtx.FindByID(ctx, uid)
	if err != nil {
		return MapRepositoryError(err)
	}

	cust.IsActive = false
	if err := qtx.Save(ctx, cust); err != nil {
		s.logger.Error("soft delete customer persist failed", zap.Error(err))
		return MapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.invalidateDetailCache(ctx, id)
	s.logger.Info("soft delete customer success", zap.String("customer_id", id))
	return nil
}

// HardDelete menghapus baris customer secara permanen. Employment yang masih
// menempel dihapus eksplisit di transaksi yang sama; FK di storage tidak
// membawa cascade.
func (s *service) HardDelete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return customererrors.ErrInvalidCustomerID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, uid); err != nil {
		return MapRepositoryError(err)
	}

	if err := qtx.DeleteEmploymentByCustomer(ctx, uid); err != nil {
		s.logger.Error("hard delete customer cascade employment failed", zap.Error(err))
		return MapRepositoryError(err)
	}

	if err := qtx.HardDelete(ctx, uid); err != nil {
		s.logger.Error("hard delete customer failed", zap.Error(err))
		return MapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.invalidateDetailCache(ctx, id)
	s.logger.Info("hard delete customer success", zap.String("customer_id", id))
	return nil
}

func (s *service) assembleDetail(ctx context.Context, uid uuid.UUID) (CustomerDetailResponse, error) {
	cust, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return CustomerDetailResponse{}, MapRepositoryError(err)
	}

	empl, err := s.findEmployment(ctx, uid)
	if err != nil {
		return CustomerDetailResponse{}, err
	}

	return toDetailResponse(*cust, empl), nil
}

func (s *service) findEmployment(ctx context.Context, uid uuid.UUID) (*CustomerEmployment, error) {
	empl, err := s.repo.FindEmploymentByCustomer(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return empl, nil
}

func (s *service) invalidateDetailCache(ctx context.Context, id string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetDetailCacheKey(id)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate customer detail cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func applyCustomerPatch(cust *Customer, req UpdateCustomerRequest, dob *time.Time) {
	if req.FirstName != nil {
		cust.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		cust.LastName = *req.LastName
	}
	if req.Phone != nil {
		cust.Phone = *req.Phone
	}
	if dob != nil {
		cust.DateOfBirth = *dob
	}
	if req.Address != nil {
		cust.Address = *req.Address
	}
	if req.City != nil {
		cust.City = *req.City
	}
	if req.State != nil {
		cust.State = *req.State
	}
	if req.PostalCode != nil {
		cust.PostalCode = *req.PostalCode
	}
	if req.Country != nil {
		cust.Country = *req.Country
	}
	if req.IsActive != nil {
		cust.IsActive = *req.IsActive
	}
}

// ToResponse diexport karena registration juga merakit response customer
func ToResponse(cust Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:             cust.ID.String(),
		CustomerNumber: cust.CustomerNumber,
		FirstName:      cust.FirstName,
		LastName:       cust.LastName,
		Email:          cust.Email,
		Phone:          cust.Phone,
		DateOfBirth:    cust.DateOfBirth.Format("2006-01-02"),
		Address:        cust.Address,
		City:           cust.City,
		State:          cust.State,
		PostalCode:     cust.PostalCode,
		Country:        cust.Country,
		IsActive:       cust.IsActive,
		CreatedAt:      cust.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !cust.UpdatedAt.IsZero() {
		resp.UpdatedAt = cust.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func toDetailResponse(cust Customer, empl *CustomerEmployment) CustomerDetailResponse {
	detail := CustomerDetailResponse{CustomerResponse: ToResponse(cust)}
	if empl != nil {
		e := toEmploymentResponse(*empl)
		detail.Employment = &e
	}
	return detail
}

func toEmploymentResponse(empl CustomerEmployment) CustomerEmploymentResponse {
	resp := CustomerEmploymentResponse{
		ID:                  empl.ID.String(),
		CustomerID:          empl.CustomerID.String(),
		CompanyName:         empl.CompanyName,
		JobTitle:            empl.JobTitle,
		Department:          empl.Department,
		EmploymentType:      empl.EmploymentType,
		StartDate:           empl.StartDate.Format("2006-01-02"),
		Salary:              empl.Salary,
		WorkAddress:         empl.WorkAddress,
		WorkCity:            empl.WorkCity,
		WorkState:           empl.WorkState,
		WorkPostalCode:      empl.WorkPostalCode,
		WorkCountry:         empl.WorkCountry,
		IsCurrentEmployment: empl.IsCurrentEmployment,
	}
	if empl.EndDate != nil {
		resp.EndDate = empl.EndDate.Format("2006-01-02")
	}
	return resp
}

func mapToListResponse(customers []Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i, cust := range customers {
		res[i] = ToResponse(cust)
	}
	return res
}
