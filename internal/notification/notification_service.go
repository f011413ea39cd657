package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hr-portal/internal/events"
	notificationerrors "hr-portal/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, employeeID string) (ListResponse, error)
	MarkRead(ctx context.Context, employeeID, id string) error
	// NotifyRequestDecided reports false when the event was already handled
	// or concerns no employee.
	NotifyRequestDecided(ctx context.Context, event events.RequestDecidedEvent) (bool, error)
	NotifyEmployeeCreated(ctx context.Context, event events.EmployeeCreatedEvent) (bool, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func (s *service) List(ctx context.Context, employeeID string) (ListResponse, error) {
	if employeeID == "" {
		return ListResponse{}, notificationerrors.ErrEmployeeRequired
	}
	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return ListResponse{}, err
	}

	resp := ListResponse{Notifications: make([]NotificationResponse, len(rows))}
	for i, n := range rows {
		resp.Notifications[i] = mapToResponse(n)
		if !n.IsRead() {
			resp.Unread++
		}
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, employeeID, id string) error {
	if employeeID == "" {
		return notificationerrors.ErrEmployeeRequired
	}
	err := s.repo.MarkRead(ctx, employeeID, id, s.now().UTC())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notificationerrors.ErrNotificationNotFound
	}
	return err
}

func (s *service) NotifyRequestDecided(ctx context.Context, event events.RequestDecidedEvent) (bool, error) {
	if event.EmployeeID == "" {
		return false, nil
	}

	msg := fmt.Sprintf("Your %s request %s was %s by %s.", event.Kind, event.Code, strings.ToLower(event.Status), event.Approver)
	if event.Notes != "" {
		msg += " Notes: " + event.Notes
	}
	return s.create(ctx, &Notification{
		EmployeeID: event.EmployeeID,
		SourceKey:  fmt.Sprintf("%s:%s:v%d", event.EventType, event.RecordID, event.Version),
		Title:      fmt.Sprintf("Request %s %s", event.Code, strings.ToLower(event.Status)),
		Message:    msg,
	})
}

func (s *service) NotifyEmployeeCreated(ctx context.Context, event events.EmployeeCreatedEvent) (bool, error) {
	if event.EmployeeID == "" {
		return false, nil
	}
	return s.create(ctx, &Notification{
		EmployeeID: event.EmployeeID,
		SourceKey:  event.EventType + ":" + event.EmployeeID,
		Title:      "Welcome aboard",
		Message:    fmt.Sprintf("Welcome, %s. Your employee code is %s.", event.FullName, event.EmployeeCode),
	})
}

func (s *service) create(ctx context.Context, n *Notification) (bool, error) {
	n.ID = uuid.NewString()
	n.CreatedAt = s.now().UTC()

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		s.logger.Error("create notification failed",
			zap.String("employee_id", n.EmployeeID),
			zap.String("source_key", n.SourceKey),
			zap.Error(err),
		)
		return false, err
	}
	if !created {
		s.logger.Debug("notification already exists", zap.String("source_key", n.SourceKey))
	}
	return created, nil
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.IsRead(),
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
