// Package events publishes domain notifications (new jobs, new applications)
// to a message broker for downstream consumers such as mailers.
package events

import (
	"context"
	"time"
)

const (
	TypeUserSignedUp         = "user.signed_up"
	TypeJobPosted            = "job.posted"
	TypeApplicationSubmitted = "application.submitted"
)

// Event is the JSON envelope written to the queue.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// New stamps an event of the given type with the current UTC time.
func New(eventType string, data any) Event {
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Data: data}
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop discards every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

func (Noop) Close() error { return nil }
