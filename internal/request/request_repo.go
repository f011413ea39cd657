package request

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=request_repo.go -destination=mock/request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, r *Request) error
	FindAllByKind(ctx context.Context, kind Kind) ([]Request, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	FindByID(ctx context.Context, kind Kind, id string) (*Request, error)
	UpdateDecision(ctx context.Context, r *Request, expectedVersion int) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindAllByKind(ctx context.Context, kind Kind) ([]Request, error) {
	var requests []Request
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Request, error) {
	var requests []Request
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// FindByID accepts either the uuid or the human code (VAC-000001).
func (r *repository) FindByID(ctx context.Context, kind Kind, id string) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Where("id = ? OR code = ?", id, id).
		First(&req).Error
	return &req, err
}

// UpdateDecision writes the decision fields only if the stored version is
// still expectedVersion. It reports false when another writer got there
// first.
func (r *repository) UpdateDecision(ctx context.Context, req *Request, expectedVersion int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Request{}).
		Where("id = ? AND version = ?", req.ID, expectedVersion).
		Updates(map[string]any{
			"status":     req.Status,
			"approver":   req.Approver,
			"notes":      req.Notes,
			"version":    req.Version,
			"decided_at": req.DecidedAt,
			"updated_at": req.UpdatedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Request{}).Count(&count).Error
	return count, err
}
