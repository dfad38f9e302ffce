package employment_test

import (
	"errors"
	"testing"

	"customer-registry/internal/employment"
	employmenterrors "customer-registry/internal/employment/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapRepositoryError(t *testing.T) {
	t.Run("record not found", func(t *testing.T) {
		err := employment.MapRepositoryError(gorm.ErrRecordNotFound)
		assert.ErrorIs(t, err, employmenterrors.ErrEmploymentNotFound)
	})

	t.Run("unique violation on customer constraint", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_employment_customer"}
		err := employment.MapRepositoryError(pgErr)
		assert.ErrorIs(t, err, employmenterrors.ErrEmploymentAlreadyExists)
	})

	t.Run("foreign key violation maps to missing customer", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "fk_employments_customer"}
		err := employment.MapRepositoryError(pgErr)
		assert.ErrorIs(t, err, employmenterrors.ErrCustomerNotFound)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		raw := errors.New("connection refused")
		assert.Equal(t, raw, employment.MapRepositoryError(raw))
	})
}
