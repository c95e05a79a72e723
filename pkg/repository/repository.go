// Package repository provides a thin generic wrapper over gorm for the
// common fetch/save/delete shapes the services share.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository exposes basic persistence operations for one model type.
type Repository[T any] interface {
	Find(ctx context.Context, conds ...any) ([]T, error)
	FindOne(ctx context.Context, conds ...any) (*T, error)
	Create(ctx context.Context, record *T) error
	Save(ctx context.Context, record *T) error
	Delete(ctx context.Context, conds ...any) error
	Count(ctx context.Context, conds ...any) (int64, error)
}

type store[T any] struct {
	db *gorm.DB
}

// ProvideStore builds a Repository bound to the given connection.
func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (s *store[T]) Find(ctx context.Context, conds ...any) ([]T, error) {
	var records []T
	if err := s.db.WithContext(ctx).Find(&records, conds...).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindOne returns nil without error when no row matches.
func (s *store[T]) FindOne(ctx context.Context, conds ...any) (*T, error) {
	var record T
	err := s.db.WithContext(ctx).First(&record, conds...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (s *store[T]) Create(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *store[T]) Save(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Save(record).Error
}

func (s *store[T]) Delete(ctx context.Context, conds ...any) error {
	var record T
	return s.db.WithContext(ctx).Delete(&record, conds...).Error
}

func (s *store[T]) Count(ctx context.Context, conds ...any) (int64, error) {
	var record T
	var count int64
	query := s.db.WithContext(ctx).Model(&record)
	if len(conds) > 0 {
		query = query.Where(conds[0], conds[1:]...)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
