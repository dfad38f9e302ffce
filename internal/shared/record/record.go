package record

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store menampung operasi CRUD dasar yang sama untuk semua entity record,
// supaya repository per-module hanya menulis query yang spesifik domainnya.
type Store[T any] struct {
	db *gorm.DB
}

func NewStore[T any](db *gorm.DB) Store[T] {
	return Store[T]{db: db}
}

// WithTx rebinds the store to an open transaction
func (s Store[T]) WithTx(tx *gorm.DB) Store[T] {
	return Store[T]{db: tx}
}

// DB exposes the underlying handle for module-specific queries
func (s Store[T]) DB() *gorm.DB {
	return s.db
}

func (s Store[T]) Create(ctx context.Context, rec *T) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s Store[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var rec T
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s Store[T]) Save(ctx context.Context, rec *T) error {
	return s.db.WithContext(ctx).Save(rec).Error
}

func (s Store[T]) HardDelete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(new(T), "id = ?", id).Error
}
