package recruitment

import (
	"context"

	"gorm.io/gorm"
)

type Repository[T Record] interface {
	WithTx(tx *gorm.DB) Repository[T]
	Create(ctx context.Context, rec *T) error
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	// UpdateStatus writes status only when the stored version still equals
	// expectedVersion. It reports false when another writer got there first.
	UpdateStatus(ctx context.Context, id, status string, expectedVersion int) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type repository[T Record] struct {
	db    *gorm.DB
	order string
}

func NewRepository[T Record](db *gorm.DB, res Resource[T]) Repository[T] {
	return &repository[T]{db: db, order: res.Order}
}

func (r *repository[T]) WithTx(tx *gorm.DB) Repository[T] {
	return &repository[T]{db: tx, order: r.order}
}

func (r *repository[T]) Create(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository[T]) FindAll(ctx context.Context) ([]T, error) {
	var recs []T
	q := r.db.WithContext(ctx)
	if r.order != "" {
		q = q.Order(r.order)
	}
	err := q.Find(&recs).Error
	return recs, err
}

func (r *repository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var rec T
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *repository[T]) UpdateStatus(ctx context.Context, id, status string, expectedVersion int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{
			"status":  status,
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Count(&count).Error
	return count, err
}
