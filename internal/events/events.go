package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/garagelog/garagelog-api/internal/domain"
)

// StateChangedEvent is published after every successful store mutation.
// It carries the full updated snapshot; subscribers never receive
// incremental diffs.
type StateChangedEvent struct {
	// ID is a unique identifier for this event.
	ID uuid.UUID

	// Operation names the mutation that produced the event, for logging.
	Operation string

	// OccurredAt is the timestamp when the event was created.
	OccurredAt time.Time

	// Snapshot is the complete post-mutation state of the store.
	Snapshot domain.Snapshot
}

// NewStateChangedEvent creates a new StateChangedEvent for the named
// operation with the given snapshot.
func NewStateChangedEvent(operation string, snapshot domain.Snapshot) *StateChangedEvent {
	return &StateChangedEvent{
		ID:         uuid.New(),
		Operation:  operation,
		OccurredAt: time.Now().UTC(),
		Snapshot:   snapshot,
	}
}

// Handler defines an interface for components that react to state changes,
// such as the persistence subscriber.
type Handler interface {
	// HandleStateChanged processes the given event within the provided
	// context. Returns an error if the event cannot be handled.
	HandleStateChanged(ctx context.Context, event *StateChangedEvent) error
}

// Emitter defines an interface for components that publish state changes.
// This allows the store to notify subscribers without direct knowledge of
// who they are.
type Emitter interface {
	// RegisterHandler adds a new handler to receive events.
	RegisterHandler(handler Handler)

	// EmitStateChanged publishes the given event to all registered
	// handlers. Returns the first handler error encountered.
	EmitStateChanged(ctx context.Context, event *StateChangedEvent) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, event *StateChangedEvent) error

// HandleStateChanged implements Handler by calling the function itself.
func (f HandlerFunc) HandleStateChanged(ctx context.Context, event *StateChangedEvent) error {
	return f(ctx, event)
}
