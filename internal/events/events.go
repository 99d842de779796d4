package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ProfileCreated = "profile.created"
	ProfileUpdated = "profile.updated"
)

// ProfileEvent is emitted after a profile write has been committed.
type ProfileEvent struct {
	Type         string    `json:"type"`
	ProfileID    uuid.UUID `json:"profile_id"`
	Email        string    `json:"email"`
	Skills       []string  `json:"skills"`
	ProjectCount int       `json:"project_count"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher delivers profile events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event ProfileEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ProfileEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
