// Package events carries domain notifications between modules inside one
// process. Onboarding and portal modules publish; email and logging
// subscribers react without the publisher knowing about them.
package events

import (
	"context"
	"time"
)

// Event is anything published on the bus. The name doubles as the
// subscription key.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent stamps an event with its publication time. Embed it.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps now.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler reacts to one published event. A returned error is logged by
// Publish and surfaced by PublishSync.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function subscribe.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus fans events out to the handlers subscribed under their name.
type Bus interface {
	// Publish dispatches in the background; handler failures only reach
	// the log.
	Publish(ctx context.Context, event Event)

	// PublishSync runs every handler concurrently, waits for all of them
	// and returns the first failure.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe adds handler for events whose EventName equals eventName.
	Subscribe(eventName string, handler Handler)
}
