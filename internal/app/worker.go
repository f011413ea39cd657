package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"hr-portal/internal/config"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/messaging/kafka/producer"
	"hr-portal/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker publishes pending outbox events until SIGINT or SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	db, err := connection.ConnectGORMWithRetry(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}
	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	producer.ProcessOutboxEvents(ctx, kafka.NewOutboxRepository(db), kafkaWriter, logger, cfg.Kafka.PollInterval)

	log.Info("worker shut down")
	return nil
}
