package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SUPPORT_TURN_RESOLVED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a generic Event, used when decoding from the bus.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const TypeTurnResolved = "SUPPORT_TURN_RESOLVED"

// TurnResolved records one answered message and how it was answered.
type TurnResolved struct {
	TurnID     uuid.UUID `json:"turn_id"`
	UserID     string    `json:"user_id"`
	Message    string    `json:"message"`
	Reply      string    `json:"reply"`
	Path       string    `json:"path"`
	State      string    `json:"state"`
	Sources    []string  `json:"sources,omitempty"`
	Links      []string  `json:"links,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e TurnResolved) EventType() string {
	return TypeTurnResolved
}

func (e TurnResolved) Payload() map[string]interface{} {
	return map[string]interface{}{
		"turn_id":     e.TurnID.String(),
		"user_id":     e.UserID,
		"message":     e.Message,
		"reply":       e.Reply,
		"path":        e.Path,
		"state":       e.State,
		"sources":     e.Sources,
		"links":       e.Links,
		"duration_ms": e.DurationMs,
		"occurred_at": e.OccurredAt.Format(time.RFC3339Nano),
	}
}

func (e TurnResolved) Timestamp() time.Time {
	return e.OccurredAt
}
