package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-api/internal/application/service"
	"github.com/khoahotran/profile-api/internal/config"
	"github.com/khoahotran/profile-api/pkg/logger"
)

const TopicUserEvents = "user.events"

// messageWriter is the part of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	UserEventsWriter messageWriter
	logger           logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	userWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicUserEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka producer successfully.", zap.Strings("brokers", brokers))

	return &KafkaProducerClient{
		UserEventsWriter: userWriter,
		logger:           log,
	}, nil
}

// PublishUserEvent keys messages by user id so one user's events stay ordered
// within a partition.
func (c *KafkaProducerClient) PublishUserEvent(ctx context.Context, evt service.UserEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal user event: %w", err)
	}

	err = c.UserEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.UserID.String()),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("write user event to kafka: %w", err)
	}

	c.logger.Debug("Published user event",
		zap.String("topic", TopicUserEvents),
		zap.String("event_type", string(evt.EventType)),
		zap.String("user_id", evt.UserID.String()),
	)
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.UserEventsWriter != nil {
		if err := c.UserEventsWriter.Close(); err != nil {
			c.logger.Warn("Close Kafka writer failed", zap.Error(err))
		}
	}
	c.logger.Info("Closed Kafka Producers")
}
