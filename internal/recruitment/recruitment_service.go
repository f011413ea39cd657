package recruitment

import (
	"context"
	"errors"
	"time"

	"hr-portal/internal/filter"
	recruitmenterrors "hr-portal/internal/recruitment/errors"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service[T Record] interface {
	List(ctx context.Context, q ListQuery) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	SetStatus(ctx context.Context, id string, req StatusRequest) (T, error)
}

type service[T Record] struct {
	db     *gorm.DB
	res    Resource[T]
	repo   Repository[T]
	now    func() time.Time
	logger *zap.Logger
}

func NewService[T Record](db *gorm.DB, res Resource[T], repo Repository[T], logger ...*zap.Logger) Service[T] {
	name := "recruitment." + res.Name + ".service"
	l := zap.L().Named(name)
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named(name)
	}
	return &service[T]{db: db, res: res, repo: repo, now: time.Now, logger: l}
}

func (s *service[T]) List(ctx context.Context, q ListQuery) ([]T, error) {
	recs, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list records failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return Filter(s.res, recs, q), nil
}

// Filter applies the search term, the status and every filter column the
// resource declares.
func Filter[T Record](res Resource[T], recs []T, q ListQuery) []T {
	criteria := []filter.Criterion[T]{
		filter.By(q.Status, func(r T) string { return r.RecordStatus() }),
	}
	for _, name := range res.Filters {
		name := name
		criteria = append(criteria, filter.By(q.Categories[name], func(r T) string {
			return r.Category(name)
		}))
	}
	return filter.Apply(recs, q.Search, func(r T) []string { return r.SearchFields() }, criteria...)
}

func (s *service[T]) GetByID(ctx context.Context, id string) (T, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		var zero T
		return zero, mapRepositoryError(err)
	}
	return *rec, nil
}

func (s *service[T]) Create(ctx context.Context, rec T) (T, error) {
	rec = s.res.prepare(rec, uuid.NewString(), s.now().UTC())
	status := rec.RecordStatus()
	if status == "" {
		rec = withStatus(rec, s.res.Initial())
	} else if !s.res.ValidStatus(status) {
		var zero T
		return zero, recruitmenterrors.ErrInvalidStatus
	}

	if err := s.repo.Create(ctx, &rec); err != nil {
		s.logger.Error("create record failed", zap.Error(err))
		var zero T
		return zero, mapRepositoryError(err)
	}

	s.logger.Info("create record success",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("id", rec.RecordID()),
	)
	return rec, nil
}

func (s *service[T]) SetStatus(ctx context.Context, id string, req StatusRequest) (T, error) {
	var zero T
	if !s.res.ValidStatus(req.Status) {
		return zero, recruitmenterrors.ErrInvalidStatus
	}

	var updated T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		rec, err := qtx.FindByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		current := (*rec).RecordVersion()
		if req.Version != nil && *req.Version != current {
			return recruitmenterrors.ErrVersionConflict
		}

		ok, err := qtx.UpdateStatus(ctx, id, req.Status, current)
		if err != nil {
			return err
		}
		if !ok {
			return recruitmenterrors.ErrVersionConflict
		}

		fresh, err := qtx.FindByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		updated = *fresh
		return nil
	})
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			s.logger.Error("set status failed", zap.String("id", id), zap.Error(err))
		}
		return zero, err
	}

	s.logger.Info("set status success",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("id", id),
		zap.String("status", req.Status),
		zap.String("actor", contextutil.GetActorName(ctx)),
	)
	return updated, nil
}

// withStatus sets the status field of any recruitment record.
func withStatus[T Record](rec T, status string) T {
	switch r := any(&rec).(type) {
	case *Applicant:
		r.Status = status
	case *Interview:
		r.Status = status
	case *Offer:
		r.Status = status
	case *PsychometricResult:
		r.Status = status
	case *Vacancy:
		r.Status = status
	}
	return rec
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return recruitmenterrors.ErrRecordNotFound
	}
	return err
}
