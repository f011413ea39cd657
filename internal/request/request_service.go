package request

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"hr-portal/internal/events"
	"hr-portal/internal/filter"
	"hr-portal/internal/messaging/kafka"
	requesterrors "hr-portal/internal/request/errors"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/contextutil"
	"hr-portal/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const ListCacheKeyPrefix = "requests:list:"

func ListCacheKey(kind Kind) string {
	return ListCacheKeyPrefix + string(kind)
}

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, kind Kind, employeeID string, req CreateRequest) (RequestResponse, error)
	List(ctx context.Context, kind Kind, q ListQuery) ([]RequestResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]RequestResponse, error)
	GetByID(ctx context.Context, kind Kind, id string) (RequestResponse, error)
	Transition(ctx context.Context, kind Kind, id string, req TransitionRequest) (RequestResponse, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	cacheTTL time.Duration
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &service{
		db:       db,
		repo:     repo,
		counter:  counter,
		outbox:   outboxRepo,
		rdb:      rdb,
		cacheTTL: cacheTTL,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, kind Kind, employeeID string, req CreateRequest) (RequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if req.EmployeeID != "" {
		employeeID = req.EmployeeID
	}
	s.logger.Debug("create request requested",
		zap.String("request_id", rid),
		zap.String("kind", string(kind)),
		zap.String("employee_id", employeeID),
	)

	if employeeID == "" {
		return RequestResponse{}, requesterrors.ErrEmployeeRequired
	}

	details, err := buildDetails(kind, req)
	if err != nil {
		s.logger.Warn("create request validation failed", zap.String("kind", string(kind)), zap.Error(err))
		return RequestResponse{}, err
	}

	seq, err := s.counter.GetNextValue(ctx, kind.CounterName())
	if err != nil {
		s.logger.Error("create request generate code failed", zap.Error(err))
		return RequestResponse{}, err
	}

	rec := &Request{
		ID:           uuid.NewString(),
		Code:         FormatCode(kind, seq),
		EmployeeID:   employeeID,
		EmployeeName: req.EmployeeName,
		Department:   req.Department,
		Status:       Lifecycle.Initial(),
		Version:      1,
	}
	rec.SetDetails(details)

	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error("create request persist failed", zap.Error(err))
		return RequestResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx, kind)
	s.logger.Info("create request success",
		zap.String("request_id", rid),
		zap.String("id", rec.ID),
		zap.String("code", rec.Code),
	)

	return mapToResponse(*rec), nil
}

func buildDetails(kind Kind, req CreateRequest) (Details, error) {
	var d Details
	switch kind {
	case KindVacation:
		start, err := parseDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		v := VacationDetails{StartDate: &start, EndDate: &end, Days: req.Days, Reason: req.Reason}
		if v.Days == 0 {
			v.Days = v.InclusiveDays()
		}
		d = v
	case KindFund:
		d = FundDetails{
			FundType:    req.FundType,
			RequestType: req.RequestType,
			AmountCents: int64(math.Round(req.Amount * 100)),
			Reason:      req.Reason,
		}
	case KindGeneral:
		priority := req.Priority
		if priority == "" {
			priority = PriorityMedium
		}
		d = GeneralDetails{
			RequestType: req.RequestType,
			Subject:     req.Subject,
			Description: req.Description,
			Priority:    priority,
		}
	default:
		return nil, requesterrors.ErrUnknownKind
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) List(ctx context.Context, kind Kind, q ListQuery) ([]RequestResponse, error) {
	all, err := s.cachedList(ctx, kind)
	if err != nil {
		return nil, err
	}
	return Filter(all, q), nil
}

// Filter narrows a loaded list by search term, status, employee and
// department.
func Filter(records []RequestResponse, q ListQuery) []RequestResponse {
	return filter.Apply(records, q.Search, searchFields,
		filter.By(q.Status, func(r RequestResponse) string { return r.Status }),
		filter.By(q.EmployeeID, func(r RequestResponse) string { return r.EmployeeID }),
		filter.By(q.Department, func(r RequestResponse) string { return r.Department }),
	)
}

func searchFields(r RequestResponse) []string {
	return []string{
		r.Code, r.EmployeeName, r.EmployeeID, r.Department,
		r.Reason, r.Subject, r.FundType, r.RequestType,
	}
}

func (s *service) cachedList(ctx context.Context, kind Kind) ([]RequestResponse, error) {
	cacheKey := ListCacheKey(kind)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []RequestResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		records, err := s.repo.FindAllByKind(ctx, kind)
		if err != nil {
			s.logger.Error("list requests failed", zap.String("kind", string(kind)), zap.Error(err))
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(records)
		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
					s.logger.Warn("cache request list failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]RequestResponse), nil
}

func (s *service) invalidate(ctx context.Context, kind Kind) {
	if s.rdb == nil {
		return
	}
	cacheKey := ListCacheKey(kind)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate request list cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]RequestResponse, error) {
	records, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(records), nil
}

func (s *service) GetByID(ctx context.Context, kind Kind, id string) (RequestResponse, error) {
	rec, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return RequestResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*rec), nil
}

func (s *service) Transition(ctx context.Context, kind Kind, id string, req TransitionRequest) (RequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	approver := contextutil.GetActorName(ctx)
	s.logger.Debug("transition request requested",
		zap.String("request_id", rid),
		zap.String("id", id),
		zap.String("kind", string(kind)),
		zap.String("target_status", req.Status),
	)

	if approver == "" {
		return RequestResponse{}, apperror.ErrUnauthorized
	}

	var updated Request
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		rec, err := qtx.FindByID(ctx, kind, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		if req.Version != nil && *req.Version != rec.Version {
			s.logger.Warn("transition request stale version",
				zap.String("id", rec.ID),
				zap.Int("submitted", *req.Version),
				zap.Int("current", rec.Version),
			)
			return requesterrors.ErrVersionConflict
		}
		if !Lifecycle.Can(rec.Status, req.Status) {
			s.logger.Warn("transition request invalid",
				zap.String("id", rec.ID),
				zap.String("from_status", rec.Status),
				zap.String("to_status", req.Status),
			)
			return requesterrors.ErrInvalidStatusTransition
		}

		expected := rec.Version
		updated = Decide(req.Status, approver, req.Reason, time.Now().UTC())(*rec)

		ok, err := qtx.UpdateDecision(ctx, &updated, expected)
		if err != nil {
			s.logger.Error("transition request persist failed", zap.String("id", rec.ID), zap.Error(err))
			return err
		}
		if !ok {
			return requesterrors.ErrVersionConflict
		}

		if s.outbox != nil {
			event, err := kafka.NewOutboxEvent(rid, "request", updated.ID, events.EventTypeRequestDecided, events.RequestDecidedTopic,
				events.RequestDecidedEvent{
					EventType:  events.EventTypeRequestDecided,
					RequestID:  rid,
					RecordID:   updated.ID,
					Code:       updated.Code,
					Kind:       string(updated.Kind),
					EmployeeID: updated.EmployeeID,
					Status:     updated.Status,
					Approver:   updated.Approver,
					Notes:      updated.Notes,
					Version:    updated.Version,
					OccurredAt: *updated.DecidedAt,
				})
			if err != nil {
				return err
			}
			if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
				s.logger.Error("transition request outbox persist failed", zap.String("id", updated.ID), zap.Error(err))
				return err
			}
		}
		return nil
	})
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			s.logger.Error("transition request failed", zap.String("id", id), zap.Error(err))
		}
		return RequestResponse{}, err
	}

	s.invalidate(ctx, kind)
	s.logger.Info("transition request success",
		zap.String("request_id", rid),
		zap.String("id", updated.ID),
		zap.String("status", updated.Status),
		zap.String("approver", updated.Approver),
	)
	return mapToResponse(updated), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, requesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:           r.ID,
		Code:         r.Code,
		Type:         r.Kind,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Department:   r.Department,
		Status:       r.Status,
		Approver:     r.Approver,
		Notes:        r.Notes,
		Version:      r.Version,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.DecidedAt != nil {
		v := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}

	switch d := r.Details().(type) {
	case VacationDetails:
		if d.StartDate != nil {
			resp.StartDate = d.StartDate.Format("2006-01-02")
		}
		if d.EndDate != nil {
			resp.EndDate = d.EndDate.Format("2006-01-02")
		}
		resp.Days = d.Days
		resp.Reason = d.Reason
	case FundDetails:
		resp.FundType = d.FundType
		resp.RequestType = d.RequestType
		resp.Amount = float64(d.AmountCents) / 100
		resp.Reason = d.Reason
	case GeneralDetails:
		resp.RequestType = d.RequestType
		resp.Subject = d.Subject
		resp.Description = d.Description
		resp.Priority = d.Priority
	}
	return resp
}

func mapToListResponse(records []Request) []RequestResponse {
	resp := make([]RequestResponse, len(records))
	for i, r := range records {
		resp[i] = mapToResponse(r)
	}
	return resp
}
