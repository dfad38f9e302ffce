package employment

import (
	"context"

	"customer-registry/internal/shared/record"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employment, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*Employment, error)
	FindAll(ctx context.Context, q ListEmploymentsQuery) ([]Employment, int64, error)
	Save(ctx context.Context, empl *Employment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindCustomer(ctx context.Context, customerID uuid.UUID) (*EmploymentCustomer, error)
}

type repository struct {
	record.Store[Employment]
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{Store: record.NewStore[Employment](db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Store: r.Store.WithTx(tx)}
}

// FindByID memuat pemiliknya sekalian untuk merakit detail response
func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employment, error) {
	var empl Employment
	err := r.DB().WithContext(ctx).
		Preload("Customer").
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*Employment, error) {
	var empl Employment
	err := r.DB().WithContext(ctx).
		Preload("Customer").
		First(&empl, "customer_id = ?", customerID).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindAll(ctx context.Context, q ListEmploymentsQuery) ([]Employment, int64, error) {
	filtered := func() *gorm.DB {
		tx := r.DB().WithContext(ctx).Model(&Employment{})
		if q.Search != "" {
			pattern := "%" + q.Search + "%"
			tx = tx.Where(
				"company_name ILIKE ? OR job_title ILIKE ? OR department ILIKE ?",
				pattern, pattern, pattern,
			)
		}
		if q.EmploymentType != "" {
			tx = tx.Where("employment_type = ?", q.EmploymentType)
		}
		if q.IsCurrent != nil {
			tx = tx.Where("is_current_employment = ?", *q.IsCurrent)
		}
		return tx
	}

	// Total dihitung atas filter, sebelum pagination
	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employments []Employment
	err := filtered().
		Order("created_at ASC, id ASC").
		Offset(q.Skip).
		Limit(q.Limit).
		Find(&employments).Error
	if err != nil {
		return nil, 0, err
	}

	return employments, total, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.HardDelete(ctx, id)
}

func (r *repository) FindCustomer(ctx context.Context, customerID uuid.UUID) (*EmploymentCustomer, error) {
	var cust EmploymentCustomer
	err := r.DB().WithContext(ctx).First(&cust, "id = ?", customerID).Error
	if err != nil {
		return nil, err
	}
	return &cust, nil
}
