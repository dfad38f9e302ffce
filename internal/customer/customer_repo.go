package customer

import (
	"context"

	"customer-registry/internal/shared/record"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, cust *Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	FindAll(ctx context.Context, q ListCustomersQuery) ([]Customer, int64, error)
	Save(ctx context.Context, cust *Customer) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	FindEmploymentByCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerEmployment, error)
	DeleteEmploymentByCustomer(ctx context.Context, customerID uuid.UUID) error
}

type repository struct {
	record.Store[Customer]
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{Store: record.NewStore[Customer](db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Store: r.Store.WithTx(tx)}
}

// FindByEmail is an exact, case-sensitive match
func (r *repository) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	var cust Customer
	err := r.DB().WithContext(ctx).First(&cust, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

func (r *repository) FindAll(ctx context.Context, q ListCustomersQuery) ([]Customer, int64, error) {
	filtered := func() *gorm.DB {
		tx := r.DB().WithContext(ctx).Model(&Customer{})
		if q.Search != "" {
			pattern := "%" + q.Search + "%"
			tx = tx.Where(
				"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR city ILIKE ?",
				pattern, pattern, pattern, pattern,
			)
		}
		if q.IsActive != nil {
			tx = tx.Where("is_active = ?", *q.IsActive)
		}
		return tx
	}

	// Total dihitung atas filter, sebelum pagination
	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []Customer
	err := filtered().
		Order("created_at ASC, id ASC").
		Offset(q.Skip).
		Limit(q.Limit).
		Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *repository) FindEmploymentByCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerEmployment, error) {
	var empl CustomerEmployment
	err := r.DB().WithContext(ctx).First(&empl, "customer_id = ?", customerID).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) DeleteEmploymentByCustomer(ctx context.Context, customerID uuid.UUID) error {
	return r.DB().WithContext(ctx).Delete(&CustomerEmployment{}, "customer_id = ?", customerID).Error
}
