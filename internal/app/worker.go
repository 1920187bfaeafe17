package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gym/internal/messaging/kafka"
	"go-gym/internal/messaging/kafka/producer"
	"go-gym/internal/shared/connection"
	"go-gym/internal/subscription"

	"go.uber.org/zap"
)

// RunWorker hosts the outbox drain loop and the subscription expiry sweep.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	subscriptionService := subscription.NewService(sqlDB, subscription.NewRepository(gormDB))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go sweepExpiredSubscriptions(ctx, subscriptionService, logger, time.Hour)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

func sweepExpiredSubscriptions(
	ctx context.Context,
	svc subscription.Service,
	logger *zap.Logger,
	interval time.Duration,
) {
	log := logger.Named("subscription.sweeper")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("subscription sweeper started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("subscription sweeper stopped")
			return
		case <-ticker.C:
			if _, err := svc.ExpireOverdue(ctx); err != nil {
				log.Error("expiry sweep failed", zap.Error(err))
			}
		}
	}
}
