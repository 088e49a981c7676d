package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-api/internal/application/service"
	"github.com/khoahotran/profile-api/internal/config"
	"github.com/khoahotran/profile-api/pkg/logger"
)

const UserEventsGroupID = "user-events-logger"

const handlerRetryDelay = time.Second

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// UserEventHandler processes one decoded event. A returned error makes Run
// retry the same event; later messages wait behind it.
type UserEventHandler func(ctx context.Context, evt service.UserEvent) error

type UserEventConsumer struct {
	reader     messageReader
	logger     logger.Logger
	retryDelay time.Duration
}

func NewUserEventConsumer(cfg config.Config, log logger.Logger) (*UserEventConsumer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    TopicUserEvents,
		GroupID:  UserEventsGroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	return &UserEventConsumer{reader: reader, logger: log, retryDelay: handlerRetryDelay}, nil
}

// Run blocks until ctx is cancelled or the reader is closed. Messages that
// cannot be decoded are committed and skipped. A message is committed only
// after its handler succeeds, so offsets never move past a failed event.
func (c *UserEventConsumer) Run(ctx context.Context, handle UserEventHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			if errors.Is(err, io.EOF) {
				c.logger.Info("Kafka reader closed, stopping consumer")
				return nil
			}
			c.logger.Error("Failed to read message from Kafka", err)
			continue
		}

		var evt service.UserEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			c.logger.Warn("Skipping undecodable user event",
				zap.String("key", string(msg.Key)), zap.Int64("offset", msg.Offset), zap.Error(err))
			c.commit(ctx, msg)
			continue
		}

		if !c.handleWithRetry(ctx, handle, evt) {
			return nil
		}
		c.commit(ctx, msg)
	}
}

// handleWithRetry calls handle until it succeeds. It reports false when ctx
// ends first.
func (c *UserEventConsumer) handleWithRetry(ctx context.Context, handle UserEventHandler, evt service.UserEvent) bool {
	for attempt := 1; ; attempt++ {
		err := handle(ctx, evt)
		if err == nil {
			return true
		}
		c.logger.Error("Failed to handle user event", err,
			zap.String("event_type", string(evt.EventType)),
			zap.String("user_id", evt.UserID.String()),
			zap.Int("attempt", attempt),
		)

		if ctx.Err() != nil {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(c.retryDelay):
		}
	}
}

func (c *UserEventConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit Kafka message", err, zap.Int64("offset", msg.Offset))
	}
}

func (c *UserEventConsumer) Close() error {
	return c.reader.Close()
}
