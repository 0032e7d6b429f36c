package events

import (
	"context"
	"log/slog"
	"sync"
)

// SyncEmitter is a simple implementation of the Emitter interface that
// stores registered handlers in memory and dispatches events to them
// synchronously, in registration order.
type SyncEmitter struct {
	handlers []Handler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewSyncEmitter creates a new instance of SyncEmitter.
func NewSyncEmitter(logger *slog.Logger) *SyncEmitter {
	if logger == nil {
		logger = slog.Default()
	}

	return &SyncEmitter{
		handlers: make([]Handler, 0),
		logger:   logger.With(slog.String("component", "sync_emitter")),
	}
}

// RegisterHandler adds a new handler to receive state-change events.
func (e *SyncEmitter) RegisterHandler(handler Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered new event handler", "handler_count", len(e.handlers))
}

// EmitStateChanged publishes the given event to all registered handlers.
// If any handler returns an error, the event is still delivered to all
// remaining handlers, and the first error encountered is returned.
func (e *SyncEmitter) EmitStateChanged(ctx context.Context, event *StateChangedEvent) error {
	e.mu.RLock()
	handlers := make([]Handler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	e.logger.Debug("emitting state change",
		"event_id", event.ID,
		"operation", event.Operation,
		"handler_count", len(handlers))

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleStateChanged(ctx, event); err != nil {
			e.logger.Error("handler failed to process state change",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"operation", event.Operation)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
