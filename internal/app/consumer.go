package app

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"

	"hr-portal/internal/config"
	"hr-portal/internal/events"
	"hr-portal/internal/messaging/kafka/consumer"
	"hr-portal/internal/notification"
	"hr-portal/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer turns request decisions and new hires into notifications
// until SIGINT or SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

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

	notifications := notification.NewService(notification.NewRepository(db), logger)

	newReader := func(topic string) *kafkago.Reader {
		return kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{cfg.Kafka.Broker},
			Topic:          topic,
			GroupID:        cfg.Kafka.ConsumerGroup,
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
	}
	decided := newReader(events.RequestDecidedTopic)
	defer decided.Close()
	lifecycle := newReader(events.EmployeeCreatedTopic)
	defer lifecycle.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeRequestDecided(ctx, decided, notifications, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, lifecycle, notifications, logger)
	}()
	wg.Wait()

	log.Info("consumer shut down")
	return nil
}
