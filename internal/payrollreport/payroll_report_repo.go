package payrollreport

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, r *Report) error
	FindAll(ctx context.Context) ([]Report, error)
	FindByID(ctx context.Context, id string) (*Report, error)
	UpdateStatus(ctx context.Context, r *Report, expectedVersion int) (bool, error)
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

func (r *repository) Create(ctx context.Context, rep *Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Report, error) {
	var reps []Report
	err := r.db.WithContext(ctx).Order("id ASC").Find(&reps).Error
	return reps, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Report, error) {
	var rep Report
	err := r.db.WithContext(ctx).First(&rep, "id = ?", id).Error
	return &rep, err
}

// UpdateStatus writes the workflow fields only if the stored version still
// matches expectedVersion.
func (r *repository) UpdateStatus(ctx context.Context, rep *Report, expectedVersion int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Report{}).
		Where("id = ? AND version = ?", rep.ID, expectedVersion).
		Updates(map[string]any{
			"status":       rep.Status,
			"submitted_by": rep.SubmittedBy,
			"approver":     rep.Approver,
			"notes":        rep.Notes,
			"version":      rep.Version,
			"decided_at":   rep.DecidedAt,
			"updated_at":   rep.UpdatedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Report{}).Count(&count).Error
	return count, err
}
