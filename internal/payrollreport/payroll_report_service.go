package payrollreport

import (
	"context"
	"errors"
	"time"

	"hr-portal/internal/events"
	"hr-portal/internal/filter"
	"hr-portal/internal/messaging/kafka"
	payrollreporterrors "hr-portal/internal/payrollreport/errors"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	List(ctx context.Context, q ListQuery) ([]ReportResponse, error)
	GetByID(ctx context.Context, id string) (ReportResponse, error)
	Submit(ctx context.Context, id string, req SubmitRequest) (ReportResponse, error)
	Approve(ctx context.Context, id string, req ApproveRequest) (ReportResponse, error)
	Reject(ctx context.Context, id string, req RejectRequest) (ReportResponse, error)
	RenderPDF(ctx context.Context, id string) ([]byte, error)
	ExportXLSX(ctx context.Context, q ListQuery) ([]byte, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payrollreport.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollreport.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, now: time.Now, logger: l}
}

func (s *service) List(ctx context.Context, q ListQuery) ([]ReportResponse, error) {
	reps, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list payroll reports failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return Filter(mapToListResponse(reps), q), nil
}

// Filter narrows reports by search term, status and pay cycle.
func Filter(reps []ReportResponse, q ListQuery) []ReportResponse {
	return filter.Apply(reps, q.Search,
		func(r ReportResponse) []string {
			return []string{r.ID, r.PeriodLabel, r.SubmittedBy, r.Approver}
		},
		filter.By(q.Status, func(r ReportResponse) string { return r.Status }),
		filter.By(q.PayCycle, func(r ReportResponse) string { return r.PayCycle }),
	)
}

func (s *service) GetByID(ctx context.Context, id string) (ReportResponse, error) {
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ReportResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*rep), nil
}

// Submit moves a draft to Pending Approval, recording who sent it.
func (s *service) Submit(ctx context.Context, id string, req SubmitRequest) (ReportResponse, error) {
	actor := contextutil.GetActorName(ctx)
	if actor == "" {
		return ReportResponse{}, apperror.ErrUnauthorized
	}

	var updated Report
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		rep, err := qtx.FindByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		if req.Version != nil && *req.Version != rep.Version {
			return payrollreporterrors.ErrVersionConflict
		}
		if !Lifecycle.Can(rep.Status, StatusPendingApproval) {
			return payrollreporterrors.ErrNotDraft
		}

		expected := rep.Version
		updated = Submit(actor, s.now().UTC())(*rep)
		ok, err := qtx.UpdateStatus(ctx, &updated, expected)
		if err != nil {
			return err
		}
		if !ok {
			return payrollreporterrors.ErrVersionConflict
		}
		return nil
	})
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			s.logger.Error("payroll report submit failed", zap.String("id", id), zap.Error(err))
		}
		return ReportResponse{}, err
	}

	s.logger.Info("payroll report submitted",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("id", updated.ID),
		zap.String("submitted_by", updated.SubmittedBy),
	)
	return mapToResponse(updated), nil
}

func (s *service) Approve(ctx context.Context, id string, req ApproveRequest) (ReportResponse, error) {
	return s.decide(ctx, id, StatusApproved, "", req.Version)
}

func (s *service) Reject(ctx context.Context, id string, req RejectRequest) (ReportResponse, error) {
	return s.decide(ctx, id, StatusRejected, req.Reason, req.Version)
}

func (s *service) decide(ctx context.Context, id, status, notes string, version *int) (ReportResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	approver := contextutil.GetActorName(ctx)
	if approver == "" {
		return ReportResponse{}, apperror.ErrUnauthorized
	}

	var updated Report
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		rep, err := qtx.FindByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		if version != nil && *version != rep.Version {
			return payrollreporterrors.ErrVersionConflict
		}
		if !Lifecycle.Can(rep.Status, status) {
			s.logger.Warn("payroll report transition invalid",
				zap.String("id", rep.ID),
				zap.String("from_status", rep.Status),
				zap.String("to_status", status),
			)
			return payrollreporterrors.ErrInvalidStatusTransition
		}

		expected := rep.Version
		updated = Decide(status, approver, notes, s.now().UTC())(*rep)
		ok, err := qtx.UpdateStatus(ctx, &updated, expected)
		if err != nil {
			return err
		}
		if !ok {
			return payrollreporterrors.ErrVersionConflict
		}

		if s.outbox == nil {
			return nil
		}
		event, err := kafka.NewOutboxEvent(rid, "payroll_report", updated.ID, events.EventTypePayrollReportDecided, events.RequestDecidedTopic,
			events.RequestDecidedEvent{
				EventType:  events.EventTypePayrollReportDecided,
				RequestID:  rid,
				RecordID:   updated.ID,
				Code:       updated.ID,
				Kind:       "payroll_report",
				Status:     updated.Status,
				Approver:   updated.Approver,
				Notes:      updated.Notes,
				Version:    updated.Version,
				OccurredAt: *updated.DecidedAt,
			})
		if err != nil {
			return err
		}
		return s.outbox.WithTx(tx).Create(ctx, event)
	})
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			s.logger.Error("payroll report decision failed", zap.String("id", id), zap.Error(err))
		}
		return ReportResponse{}, err
	}

	s.logger.Info("payroll report decided",
		zap.String("request_id", rid),
		zap.String("id", updated.ID),
		zap.String("status", updated.Status),
		zap.String("approver", updated.Approver),
	)
	return mapToResponse(updated), nil
}

func (s *service) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return renderPDF(*rep)
}

func (s *service) ExportXLSX(ctx context.Context, q ListQuery) ([]byte, error) {
	reps, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return renderXLSX(reps)
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollreporterrors.ErrReportNotFound
	}
	return err
}

func mapToResponse(r Report) ReportResponse {
	resp := ReportResponse{
		ID:            r.ID,
		PeriodLabel:   r.PeriodLabel,
		PeriodStart:   r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     r.PeriodEnd.Format("2006-01-02"),
		PayCycle:      r.PayCycle,
		EmployeeCount: r.EmployeeCount,
		GrossPay:      float64(r.GrossPayCents) / 100,
		Deductions:    float64(r.DeductionsCents) / 100,
		NetPay:        float64(r.NetPayCents) / 100,
		Status:        r.Status,
		SubmittedBy:   r.SubmittedBy,
		Approver:      r.Approver,
		Notes:         r.Notes,
		Version:       r.Version,
	}
	if r.DecidedAt != nil {
		v := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(reps []Report) []ReportResponse {
	out := make([]ReportResponse, 0, len(reps))
	for _, r := range reps {
		out = append(out, mapToResponse(r))
	}
	return out
}
