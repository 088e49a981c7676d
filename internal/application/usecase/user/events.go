package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-api/internal/application/service"
	"github.com/khoahotran/profile-api/pkg/logger"
)

var tracer = otel.Tracer("user_usecase")

// publishInBackground sends the event without holding up the response.
func publishInBackground(pub service.EventPublisher, log logger.Logger, eventType service.UserEventType, userID uuid.UUID, email string) {
	event := service.UserEvent{
		EventType:  eventType,
		UserID:     userID,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	}
	go func() {
		if err := pub.PublishUserEvent(context.Background(), event); err != nil {
			log.Error("Failed to publish user event", err,
				zap.String("event_type", string(eventType)),
				zap.String("user_id", userID.String()),
			)
		}
	}()
}
