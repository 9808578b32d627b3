package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published by the generation workflow.
const (
	// TypeGenerationCompleted is emitted when a run renders text for the user.
	TypeGenerationCompleted = "generation.completed"

	// TypeGenerationFailed is emitted when the request pipeline gives up.
	TypeGenerationFailed = "generation.failed"

	// TypeMalformedResponse is emitted when the API answered but the expected
	// text could not be extracted and the fallback text was shown instead.
	TypeMalformedResponse = "generation.malformed_response"
)

// GenerationEvent represents one observable occurrence during a generation run.
type GenerationEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *GenerationEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewGenerationEvent creates a new GenerationEvent with the specified type and payload.
func NewGenerationEvent(eventType string, payload interface{}) (*GenerationEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &GenerationEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *GenerationEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the workflow to publish telemetry without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *GenerationEvent) error
}
