package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hr-portal/internal/events"
	"hr-portal/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var ErrMalformedEvent = errors.New("malformed event")

// RetryPolicy spaces out redelivery attempts: Base, 2*Base, 4*Base and so
// on, capped at Max.
type RetryPolicy struct {
	Base time.Duration
	Max  time.Duration
}

// Retry is used for failed handling and failed fetches.
var Retry = RetryPolicy{Base: 500 * time.Millisecond, Max: 30 * time.Second}

// Delay returns the wait before the given attempt, starting at 1.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := p.Base
	for i := 1; i < attempt && d < p.Max; i++ {
		d *= 2
	}
	if d > p.Max {
		d = p.Max
	}
	return d
}

// sleep waits d or until ctx is done, reporting whether ctx is still live.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// MessageReader is the part of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// DecodeRequestDecided parses a request or payroll report decision.
func DecodeRequestDecided(value []byte) (events.RequestDecidedEvent, error) {
	var event events.RequestDecidedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return event, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	switch event.EventType {
	case events.EventTypeRequestDecided, events.EventTypePayrollReportDecided:
	default:
		return event, fmt.Errorf("%w: unexpected event type %q", ErrMalformedEvent, event.EventType)
	}
	if event.RecordID == "" || event.Status == "" {
		return event, fmt.Errorf("%w: record_id and status are required", ErrMalformedEvent)
	}
	return event, nil
}

func DecodeEmployeeCreated(value []byte) (events.EmployeeCreatedEvent, error) {
	var event events.EmployeeCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return event, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if event.EventType != events.EventTypeEmployeeCreated || event.EmployeeID == "" {
		return event, fmt.Errorf("%w: not an employee.created event", ErrMalformedEvent)
	}
	return event, nil
}

// ConsumeRequestDecided turns decisions into notifications for the
// requesting employee until ctx is cancelled.
func ConsumeRequestDecided(
	ctx context.Context,
	reader MessageReader,
	notifications notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.request_decided")
	consume(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		event, err := DecodeRequestDecided(msg.Value)
		if err != nil {
			return err
		}
		created, err := notifications.NotifyRequestDecided(ctx, event)
		if err != nil {
			return err
		}
		log.Info("request decision handled",
			zap.String("record_id", event.RecordID),
			zap.String("status", event.Status),
			zap.Bool("notified", created),
		)
		return nil
	})
}

func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	notifications notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	consume(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		event, err := DecodeEmployeeCreated(msg.Value)
		if err != nil {
			return err
		}
		created, err := notifications.NotifyEmployeeCreated(ctx, event)
		if err != nil {
			return err
		}
		log.Info("employee created handled",
			zap.String("employee_id", event.EmployeeID),
			zap.Bool("notified", created),
		)
		return nil
	})
}

// consume commits a message once handle succeeds. Malformed messages are
// committed and skipped. Any other failure is retried in place with
// backoff, since a group reader moves past an uncommitted message and would
// only redeliver it after a rebalance. The loop blocks on that message until
// it is handled or ctx is cancelled.
func consume(
	ctx context.Context,
	reader MessageReader,
	log *zap.Logger,
	handle func(ctx context.Context, msg kafkago.Message) error,
) {
	log.Info("consumer started")
	fetchFailures := 0

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			fetchFailures++
			delay := Retry.Delay(fetchFailures)
			log.Error("fetch message failed", zap.Duration("retry_in", delay), zap.Error(err))
			if !sleep(ctx, delay) {
				log.Info("consumer stopped")
				return
			}
			continue
		}
		fetchFailures = 0

		if !handleWithRetry(ctx, msg, log, handle) {
			log.Info("consumer stopped", zap.Int64("uncommitted_offset", msg.Offset))
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

// handleWithRetry reports false when ctx ends before msg was handled.
func handleWithRetry(
	ctx context.Context,
	msg kafkago.Message,
	log *zap.Logger,
	handle func(ctx context.Context, msg kafkago.Message) error,
) bool {
	for attempt := 1; ; attempt++ {
		err := handle(ctx, msg)
		if err == nil {
			return true
		}
		if errors.Is(err, ErrMalformedEvent) {
			log.Error("skip malformed message", zap.Int64("offset", msg.Offset), zap.Error(err))
			return true
		}
		if ctx.Err() != nil {
			return false
		}

		delay := Retry.Delay(attempt)
		log.Error("handle message failed",
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)
		if !sleep(ctx, delay) {
			return false
		}
	}
}
