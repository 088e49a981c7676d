package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/khoahotran/profile-api/adapters/event"
	"github.com/khoahotran/profile-api/internal/application/service"
	"github.com/khoahotran/profile-api/internal/config"
	"github.com/khoahotran/profile-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: cannot load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewZapLogger(cfg.App.Env).With(zap.String("component", "worker"))
	defer log.Sync()

	consumer, err := event.NewUserEventConsumer(cfg, log)
	if err != nil {
		log.Fatal("Cannot init Kafka consumer", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Worker listening", zap.String("topic", event.TopicUserEvents), zap.String("group", event.UserEventsGroupID))

	err = consumer.Run(ctx, func(ctx context.Context, evt service.UserEvent) error {
		log.Info("User event received",
			zap.String("event_type", string(evt.EventType)),
			zap.String("user_id", evt.UserID.String()),
			zap.String("email", evt.Email),
			zap.Time("occurred_at", evt.OccurredAt),
		)
		return nil
	})
	if err != nil {
		log.Error("Worker stopped", err)
		return
	}
	log.Info("Worker stopped")
}
