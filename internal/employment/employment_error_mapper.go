package employment

import (
	"errors"
	"strings"

	employmenterrors "customer-registry/internal/employment/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapRepositoryError menerjemahkan error persistence menjadi error domain.
// uq_employment_customer menjamin satu employment per customer saat race;
// FK ke customers menolak customer_id yang sudah tidak ada.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employmenterrors.ErrEmploymentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "uq_employment_customer" {
				return employmenterrors.ErrEmploymentAlreadyExists
			}
		case "23503":
			return employmenterrors.ErrCustomerNotFound
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employment_customer") {
		return employmenterrors.ErrEmploymentAlreadyExists
	}
	if strings.Contains(errMsg, "violates foreign key constraint") {
		return employmenterrors.ErrCustomerNotFound
	}

	return err
}
