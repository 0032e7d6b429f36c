package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagelog/garagelog-api/internal/domain"
)

func TestSyncEmitterDeliversInRegistrationOrder(t *testing.T) {
	t.Parallel()
	emitter := NewSyncEmitter(nil)

	var order []string
	emitter.RegisterHandler(HandlerFunc(func(ctx context.Context, event *StateChangedEvent) error {
		order = append(order, "first")
		return nil
	}))
	emitter.RegisterHandler(HandlerFunc(func(ctx context.Context, event *StateChangedEvent) error {
		order = append(order, "second")
		return nil
	}))

	event := NewStateChangedEvent("add_car", domain.Snapshot{})
	require.NoError(t, emitter.EmitStateChanged(context.Background(), event))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestSyncEmitterDeliversToAllDespiteFailure(t *testing.T) {
	t.Parallel()
	emitter := NewSyncEmitter(nil)

	firstErr := errors.New("first handler failed")
	emitter.RegisterHandler(HandlerFunc(func(ctx context.Context, event *StateChangedEvent) error {
		return firstErr
	}))

	secondCalled := false
	emitter.RegisterHandler(HandlerFunc(func(ctx context.Context, event *StateChangedEvent) error {
		secondCalled = true
		return errors.New("second handler failed")
	}))

	event := NewStateChangedEvent("add_car", domain.Snapshot{})
	err := emitter.EmitStateChanged(context.Background(), event)

	// All handlers run; the first error is the one reported
	assert.True(t, secondCalled)
	assert.ErrorIs(t, err, firstErr)
}

func TestNewStateChangedEvent(t *testing.T) {
	t.Parallel()
	snapshot := domain.Snapshot{Cars: []domain.Car{{Name: "Daily Driver"}}}
	event := NewStateChangedEvent("add_car", snapshot)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "add_car", event.Operation)
	assert.False(t, event.OccurredAt.IsZero())
	require.Len(t, event.Snapshot.Cars, 1)
}
