package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SignalEvent carries one behavioral signal. On the broker, Type is the
// message key and Payload is the message value.
type SignalEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type names the signal kind, e.g. "emotion" or "thought"
	Type string `json:"type"`

	// Payload contains the signal serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *SignalEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewSignalEvent creates a SignalEvent with the given type, serializing payload to JSON.
func NewSignalEvent(signalType string, payload any) (*SignalEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return NewRawSignalEvent(signalType, payloadBytes), nil
}

// NewRawSignalEvent wraps an already-encoded payload.
func NewRawSignalEvent(signalType string, payload json.RawMessage) *SignalEvent {
	return &SignalEvent{
		ID:        uuid.New(),
		Type:      signalType,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *SignalEvent) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *SignalEvent) error

// HandleEvent calls f.
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *SignalEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows producers to publish signals without direct knowledge of the transport.
type EventEmitter interface {
	// EmitEvent publishes the given event.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *SignalEvent) error
}
