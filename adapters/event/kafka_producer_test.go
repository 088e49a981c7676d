package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/profile-api/internal/application/service"
	"github.com/khoahotran/profile-api/internal/config"
	"github.com/khoahotran/profile-api/pkg/logger"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishUserEvent(t *testing.T) {
	w := &fakeWriter{}
	c := &KafkaProducerClient{UserEventsWriter: w, logger: logger.NewNop()}

	evt := service.UserEvent{
		EventType:  service.UserEventRegistered,
		UserID:     uuid.New(),
		Email:      "a@x.com",
		OccurredAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, c.PublishUserEvent(context.Background(), evt))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, evt.UserID.String(), string(w.msgs[0].Key))

	var got service.UserEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, evt.EventType, got.EventType)
	assert.Equal(t, evt.UserID, got.UserID)
	assert.True(t, evt.OccurredAt.Equal(got.OccurredAt))

	c.Close()
	assert.True(t, w.closed)
}

func TestPublishUserEvent_WriterError(t *testing.T) {
	c := &KafkaProducerClient{UserEventsWriter: &fakeWriter{err: errors.New("broker down")}, logger: logger.NewNop()}

	err := c.PublishUserEvent(context.Background(), service.UserEvent{UserID: uuid.New()})
	assert.ErrorContains(t, err, "broker down")
}

func TestNewKafkaProducerClient_RequiresBrokers(t *testing.T) {
	_, err := NewKafkaProducerClient(config.Config{}, logger.NewNop())
	assert.Error(t, err)
}
