package store

import (
	"context"
	"errors"

	"github.com/garagelog/garagelog-api/internal/domain"
)

// ErrNoSnapshot is returned by Persister.Load when nothing has been
// persisted yet. Starting from an empty store is the normal first-run
// path, not a failure.
var ErrNoSnapshot = errors.New("no persisted snapshot")

// Persister writes snapshots to durable storage and reads them back at
// startup. Persistence is fire-and-forget from the store's point of
// view: it is triggered after each mutation by a subscriber, is never
// part of a mutation's contract, and its failures are logged rather than
// surfaced.
type Persister interface {
	// Save durably stores the snapshot, replacing any previous one.
	Save(ctx context.Context, snapshot domain.Snapshot) error

	// Load reads the most recently saved snapshot. Returns
	// ErrNoSnapshot when nothing has been persisted yet.
	Load(ctx context.Context) (*domain.Snapshot, error)
}

// StateDocument is the durable key-value blob layout shared by all
// persisters:
//
//	{ "language": "en", "cars": [...], "services": [...], "expenses": [...] }
//
// The language key is carried for backward compatibility with documents
// written by earlier clients; the core does not interpret it beyond
// round-tripping it. Loaders ignore unknown extra fields, and missing
// optional fields take their type defaults.
type StateDocument struct {
	Language string                 `json:"language"`
	Cars     []domain.Car           `json:"cars"`
	Services []domain.ServiceRecord `json:"services"`
	Expenses []domain.Expense       `json:"expenses"`
}

// NewStateDocument builds a state document from a snapshot, preserving
// the given language tag. An empty language defaults to "en".
func NewStateDocument(snapshot domain.Snapshot, language string) StateDocument {
	if language == "" {
		language = "en"
	}
	return StateDocument{
		Language: language,
		Cars:     snapshot.Cars,
		Services: snapshot.Services,
		Expenses: snapshot.Expenses,
	}
}

// Snapshot extracts the collections from the document.
func (d StateDocument) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Cars:     d.Cars,
		Services: d.Services,
		Expenses: d.Expenses,
	}
}
