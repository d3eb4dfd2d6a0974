package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ticketbooth/internal/handler/middleware"
	"ticketbooth/internal/infra/db"
	"ticketbooth/internal/infra/outbox"
	"ticketbooth/internal/pkg/config"
)

// Outbox relay worker: drains pending outbox rows to kafka. Runs alongside
// the API server and can be scaled out; SKIP LOCKED keeps instances from
// stepping on each other.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	producer := outbox.NewProducer(cfg.Kafka)
	defer func() {
		if closeErr := producer.Close(); closeErr != nil {
			logger.Warn("failed to close kafka producer", "error", closeErr.Error())
		}
	}()

	relay := outbox.NewRelay(pool, producer, cfg.Kafka)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("outbox relay started",
		"brokers", cfg.Kafka.Brokers,
		"poll", cfg.Kafka.RelayPoll,
		"batch", cfg.Kafka.RelayBatch)

	if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("outbox relay stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("outbox relay stopped")
}
