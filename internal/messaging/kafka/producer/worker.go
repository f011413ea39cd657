package producer

import (
	"context"
	"time"

	"hr-portal/internal/messaging/kafka"

	"go.uber.org/zap"
)

const batchSize = 50

// Result counts what one pass over the outbox did.
type Result struct {
	Sent   int
	Failed int
}

// ProcessOutboxEvents polls the outbox until ctx is done. A full batch is
// followed by another pass right away instead of waiting for the next tick.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
		}

		for ctx.Err() == nil {
			res, err := ProcessPendingEvents(ctx, repo, writer, log)
			if err != nil {
				log.Error("process outbox events failed", zap.Error(err))
				break
			}
			if res.Sent+res.Failed < batchSize {
				break
			}
		}
	}
}

// ProcessPendingEvents publishes one batch of due outbox rows. Delivered
// rows are marked sent; the rest are scheduled for retry.
func ProcessPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (Result, error) {
	var res Result
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil || len(events) == 0 {
		return res, err
	}

	for i, pubErr := range publishBatch(ctx, writer, events) {
		event := events[i]
		if pubErr != nil {
			res.Failed++
			logger.Warn("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(pubErr),
			)
			if err := repo.MarkFailed(ctx, event, pubErr.Error()); err != nil {
				logger.Error("schedule outbox retry failed", zap.String("outbox_id", event.ID), zap.Error(err))
			}
			continue
		}

		res.Sent++
		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// delivered twice at worst; consumers dedupe
			logger.Error("mark outbox sent failed", zap.String("outbox_id", event.ID), zap.Error(err))
		}
	}

	logger.Info("outbox batch processed",
		zap.Int("sent", res.Sent),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}
