package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/garagelog/garagelog-api/internal/domain"
	"github.com/garagelog/garagelog-api/internal/events"
	"github.com/garagelog/garagelog-api/internal/store"
)

// PersistenceSubscriber saves the store's state after every mutation.
//
// Saving is fire-and-forget: the subscriber records the newest snapshot
// and writes it from a detached goroutine, so a slow disk or database
// never blocks a mutation, and a failed write is logged but never
// surfaced to the caller. Writes are coalesced: when mutations arrive
// faster than saves complete, only the latest snapshot is persisted.
type PersistenceSubscriber struct {
	persister store.Persister
	logger    *slog.Logger

	mu      sync.Mutex
	pending *domain.Snapshot
	saving  bool
}

// NewPersistenceSubscriber creates a subscriber writing through the
// given persister. If logger is nil, the default logger is used.
func NewPersistenceSubscriber(persister store.Persister, logger *slog.Logger) *PersistenceSubscriber {
	if logger == nil {
		logger = slog.Default()
	}

	return &PersistenceSubscriber{
		persister: persister,
		logger:    logger.With(slog.String("component", "persistence_subscriber")),
	}
}

// Ensure PersistenceSubscriber implements the events.Handler interface
var _ events.Handler = (*PersistenceSubscriber)(nil)

// HandleStateChanged implements events.Handler. It never returns an
// error: persistence failures are not the mutation's problem.
func (p *PersistenceSubscriber) HandleStateChanged(ctx context.Context, event *events.StateChangedEvent) error {
	p.mu.Lock()
	snapshot := event.Snapshot
	p.pending = &snapshot
	alreadySaving := p.saving
	p.saving = true
	p.mu.Unlock()

	if alreadySaving {
		// The running goroutine will pick up the newer snapshot.
		return nil
	}

	go p.drain()
	return nil
}

// drain saves pending snapshots until none remain. Detached from the
// request context: an abandoned HTTP request must not cancel a durable
// write already in flight.
func (p *PersistenceSubscriber) drain() {
	for {
		p.mu.Lock()
		snapshot := p.pending
		p.pending = nil
		if snapshot == nil {
			p.saving = false
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()

		if err := p.persister.Save(context.Background(), *snapshot); err != nil {
			p.logger.Error("failed to persist snapshot", "error", err)
		}
	}
}

// Flush synchronously persists any pending snapshot. Used at shutdown so
// the last mutations are not lost with the process.
func (p *PersistenceSubscriber) Flush(ctx context.Context) error {
	p.mu.Lock()
	snapshot := p.pending
	p.pending = nil
	p.mu.Unlock()

	if snapshot == nil {
		return nil
	}
	return p.persister.Save(ctx, *snapshot)
}
