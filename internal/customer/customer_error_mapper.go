package customer

import (
	"errors"
	"strings"

	customererrors "customer-registry/internal/customer/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapRepositoryError menerjemahkan error persistence menjadi error domain.
// Unique constraint adalah backstop untuk race antara pengecekan email dan
// insert; di sini hasilnya dipetakan ke ConflictError yang ramah.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return customererrors.ErrCustomerNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_customer_email" {
			return customererrors.ErrEmailAlreadyRegistered
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_customer_email") {
		return customererrors.ErrEmailAlreadyRegistered
	}

	return err
}
