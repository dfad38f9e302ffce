package employment

import (
	"context"
	"errors"
	"time"

	"customer-registry/internal/customer"
	employmenterrors "customer-registry/internal/employment/errors"
	"customer-registry/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, customerID string, req CreateEmploymentRequest) (EmploymentResponse, error)
	GetByID(ctx context.Context, id string) (EmploymentDetailResponse, error)
	GetByCustomer(ctx context.Context, customerID string) (EmploymentDetailResponse, error)
	List(ctx context.Context, q ListEmploymentsQuery) ([]EmploymentResponse, int64, error)
	Update(ctx context.Context, id string, req UpdateEmploymentRequest) (EmploymentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employment.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, logger: l}
}

// NewEmployment diexport karena registration juga membangun entity ini
// di dalam transaksinya sendiri.
func NewEmployment(customerID uuid.UUID, req CreateEmploymentRequest, start time.Time, end *time.Time) *Employment {
	isCurrent := true
	if req.IsCurrentEmployment != nil {
		isCurrent = *req.IsCurrentEmployment
	}
	return &Employment{
		ID:                  uuid.New(),
		CustomerID:          customerID,
		CompanyName:         req.CompanyName,
		JobTitle:            req.JobTitle,
		Department:          req.Department,
		EmploymentType:      req.EmploymentType,
		StartDate:           start,
		EndDate:             end,
		Salary:              req.Salary,
		WorkAddress:         req.WorkAddress,
		WorkCity:            req.WorkCity,
		WorkState:           req.WorkState,
		WorkPostalCode:      req.WorkPostalCode,
		WorkCountry:         req.WorkCountry,
		IsCurrentEmployment: isCurrent,
	}
}

func (s *service) Create(ctx context.Context, customerID string, req CreateEmploymentRequest) (EmploymentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	cid, err := uuid.Parse(customerID)
	if err != nil {
		return EmploymentResponse{}, employmenterrors.ErrInvalidCustomerID
	}

	req, start, end, err := ValidateNewEmployment(req)
	if err != nil {
		s.logger.Warn("create employment validation failed", zap.String("request_id", rid), zap.Error(err))
		return EmploymentResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return EmploymentResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Employment hanya boleh menempel pada customer yang masih aktif
	cust, err := qtx.FindCustomer(ctx, cid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmploymentResponse{}, employmenterrors.ErrCustomerNotFound
		}
		return EmploymentResponse{}, err
	}
	if !cust.IsActive {
		return EmploymentResponse{}, employmenterrors.ErrCustomerNotFound
	}

	// Cek duplikat lebih dulu untuk pesan konflik yang ramah; unique index
	// uq_employment_customer tetap jadi backstop saat race.
	if _, err := qtx.FindByCustomer(ctx, cid); err == nil {
		s.logger.Warn("create employment duplicate",
			zap.String("request_id", rid),
			zap.String("customer_id", customerID),
		)
		return EmploymentResponse{}, employmenterrors.ErrEmploymentAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmploymentResponse{}, err
	}

	empl := NewEmployment(cid, req, start, end)

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employment persist failed", zap.Error(err))
		return EmploymentResponse{}, MapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return EmploymentResponse{}, err
	}

	s.invalidateCustomerCache(ctx, customerID)
	s.logger.Info("create employment success",
		zap.String("request_id", rid),
		zap.String("employment_id", empl.ID.String()),
		zap.String("customer_id", customerID),
	)

	return ToResponse(*empl), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmploymentDetailResponse, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return EmploymentDetailResponse{}, employmenterrors.ErrInvalidEmploymentID
	}

	empl, err := s.repo.FindByID(ctx, eid)
	if err != nil {
		return EmploymentDetailResponse{}, MapRepositoryError(err)
	}

	return toDetailResponse(*empl), nil
}

func (s *service) GetByCustomer(ctx context.Context, customerID string) (EmploymentDetailResponse, error) {
	cid, err := uuid.Parse(customerID)
	if err != nil {
		return EmploymentDetailResponse{}, employmenterrors.ErrInvalidCustomerID
	}

	empl, err := s.repo.FindByCustomer(ctx, cid)
	if err != nil {
		return EmploymentDetailResponse{}, MapRepositoryError(err)
	}

	return toDetailResponse(*empl), nil
}

func (s *service) List(ctx context.Context, q ListEmploymentsQuery) ([]EmploymentResponse, int64, error) {
	q.Params = q.Params.Normalize()

	employments, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		s.logger.Error("list employments failed", zap.Error(err))
		return nil, 0, MapRepositoryError(err)
	}

	return mapToListResponse(employments), total, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmploymentRequest) (EmploymentResponse, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return EmploymentResponse{}, employmenterrors.ErrInvalidEmploymentID
	}

	req, start, end, err := ValidateEmploymentUpdate(req)
	if err != nil {
		s.logger.Warn("update employment validation failed", zap.String("employment_id", id), zap.Error(err))
		return EmploymentResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return EmploymentResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, eid)
	if err != nil {
		return EmploymentResponse{}, MapRepositoryError(err)
	}

	applyEmploymentPatch(empl, req, start, end)

	// Urutan tanggal dicek ulang setelah patch digabung dengan data tersimpan
	if err := CheckDateOrder(empl.StartDate, empl.EndDate); err != nil {
		return EmploymentResponse{}, err
	}

	if err := qtx.Save(ctx, empl); err != nil {
		s.logger.Error("update employment persist failed", zap.Error(err))
		return EmploymentResponse{}, MapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return EmploymentResponse{}, err
	}

	s.invalidateCustomerCache(ctx, empl.CustomerID.String())
	s.logger.Info("update employment success", zap.String("employment_id", id))

	return ToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	eid, err := uuid.Parse(id)
	if err != nil {
		return employmenterrors.ErrInvalidEmploymentID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, eid)
	if err != nil {
		return MapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, eid); err != nil {
		s.logger.Error("delete employment failed", zap.Error(err))
		return MapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.invalidateCustomerCache(ctx, empl.CustomerID.String())
	s.logger.Info("delete employment success", zap.String("employment_id", id))
	return nil
}

// Detail customer di Redis memuat employment, jadi setiap mutasi employment
// ikut membatalkan cache milik customer terkait.
func (s *service) invalidateCustomerCache(ctx context.Context, customerID string) {
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

func applyEmploymentPatch(empl *Employment, req UpdateEmploymentRequest, start, end *time.Time) {
	if req.CompanyName != nil {
		empl.CompanyName = *req.CompanyName
	}
	if req.JobTitle != nil {
		empl.JobTitle = *req.JobTitle
	}
	if req.Department != nil {
		empl.Department = *req.Department
	}
	if req.EmploymentType != nil {
		empl.EmploymentType = *req.EmploymentType
	}
	if start != nil {
		empl.StartDate = *start
	}
	if end != nil {
		empl.EndDate = end
	}
	if req.Salary != nil {
		empl.Salary = *req.Salary
	}
	if req.WorkAddress != nil {
		empl.WorkAddress = *req.WorkAddress
	}
	if req.WorkCity != nil {
		empl.WorkCity = *req.WorkCity
	}
	if req.WorkState != nil {
		empl.WorkState = *req.WorkState
	}
	if req.WorkPostalCode != nil {
		empl.WorkPostalCode = *req.WorkPostalCode
	}
	if req.WorkCountry != nil {
		empl.WorkCountry = *req.WorkCountry
	}
	if req.IsCurrentEmployment != nil {
		empl.IsCurrentEmployment = *req.IsCurrentEmployment
	}
}

// ToResponse diexport karena registration juga merakit response employment
func ToResponse(empl Employment) EmploymentResponse {
	resp := EmploymentResponse{
		ID:                  empl.ID.String(),
		CustomerID:          empl.CustomerID.String(),
		CompanyName:         empl.CompanyName,
		JobTitle:            empl.JobTitle,
		Department:          empl.Department,
		EmploymentType:      empl.EmploymentType,
		StartDate:           empl.StartDate.Format(dateLayout),
		Salary:              empl.Salary,
		WorkAddress:         empl.WorkAddress,
		WorkCity:            empl.WorkCity,
		WorkState:           empl.WorkState,
		WorkPostalCode:      empl.WorkPostalCode,
		WorkCountry:         empl.WorkCountry,
		IsCurrentEmployment: empl.IsCurrentEmployment,
		CreatedAt:           empl.CreatedAt.UTC().Format(time.RFC3339),
	}
	if empl.EndDate != nil {
		resp.EndDate = empl.EndDate.Format(dateLayout)
	}
	if !empl.UpdatedAt.IsZero() {
		resp.UpdatedAt = empl.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func toDetailResponse(empl Employment) EmploymentDetailResponse {
	detail := EmploymentDetailResponse{EmploymentResponse: ToResponse(empl)}
	if empl.Customer != nil {
		detail.Customer = &EmploymentCustomerResponse{
			ID:             empl.Customer.ID.String(),
			CustomerNumber: empl.Customer.CustomerNumber,
			FirstName:      empl.Customer.FirstName,
			LastName:       empl.Customer.LastName,
			Email:          empl.Customer.Email,
			Phone:          empl.Customer.Phone,
			City:           empl.Customer.City,
			IsActive:       empl.Customer.IsActive,
		}
	}
	return detail
}

func mapToListResponse(employments []Employment) []EmploymentResponse {
	res := make([]EmploymentResponse, len(employments))
	for i, empl := range employments {
		res[i] = ToResponse(empl)
	}
	return res
}
