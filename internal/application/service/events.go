package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type UserEventType string

const (
	UserEventRegistered UserEventType = "user.registered"
	UserEventUpdated    UserEventType = "user.updated"
	UserEventDeleted    UserEventType = "user.deleted"
)

type UserEvent struct {
	EventType  UserEventType `json:"event_type"`
	UserID     uuid.UUID     `json:"user_id"`
	Email      string        `json:"email,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

type EventPublisher interface {
	PublishUserEvent(ctx context.Context, event UserEvent) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishUserEvent(context.Context, UserEvent) error { return nil }
