// Package pubsub provides a small generic publish/subscribe broker used to
// move events from background goroutines (timers, file watchers, the logger)
// into the Bubble Tea update loop.
package pubsub

import "time"

// EventType names what happened to the payload.
type EventType string

const (
	// CreatedEvent is published when a new payload appears (a log line, a submission).
	CreatedEvent EventType = "created"
	// UpdatedEvent is published when existing state changed (form mode, config file).
	UpdatedEvent EventType = "updated"
)

// Event is one published payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
