package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/garagelog/garagelog-api/internal/domain"
	"github.com/garagelog/garagelog-api/internal/store"
)

// stateKey is the single key under which the whole state document is
// stored. The app_state table is a durable key-value blob with exactly
// one row in practice.
const stateKey = "garagelog"

// StatePersister implements the store.Persister interface using a
// PostgreSQL database as the storage backend.
type StatePersister struct {
	db       *sql.DB
	language string
	logger   *slog.Logger
}

// NewStatePersister creates a new PostgreSQL implementation of the
// Persister interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, a default
// logger will be used.
func NewStatePersister(db *sql.DB, logger *slog.Logger) *StatePersister {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StatePersister{
		db:       db,
		language: "en",
		logger:   logger.With(slog.String("component", "state_persister")),
	}
}

// Ensure StatePersister implements the store.Persister interface
var _ store.Persister = (*StatePersister)(nil)

// Save implements store.Persister.Save. The document replaces the
// previous one in a single transaction so readers never observe a
// half-written blob.
func (p *StatePersister) Save(ctx context.Context, snapshot domain.Snapshot) error {
	doc := store.NewStateDocument(snapshot, p.language)

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode state document: %w", err)
	}

	err = store.RunInTransaction(ctx, p.db, func(ctx context.Context, tx *sql.Tx) error {
		_, execErr := tx.ExecContext(ctx,
			`INSERT INTO app_state (key, document, updated_at)
			 VALUES ($1, $2, now())
			 ON CONFLICT (key)
			 DO UPDATE SET document = EXCLUDED.document, updated_at = now()`,
			stateKey, data)
		return MapError(execErr)
	})
	if err != nil {
		return fmt.Errorf("failed to save state document: %w", err)
	}

	p.logger.Debug("saved snapshot", slog.Int("bytes", len(data)))
	return nil
}

// loadDocument reads the raw state blob through any DBTX, so callers can
// load inside or outside a transaction.
func loadDocument(ctx context.Context, q store.DBTX) ([]byte, error) {
	var data []byte
	err := q.QueryRowContext(ctx,
		`SELECT document FROM app_state WHERE key = $1`,
		stateKey).Scan(&data)
	return data, err
}

// Load implements store.Persister.Load. The loaded document's language
// tag is remembered and written back on subsequent saves.
func (p *StatePersister) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := loadDocument(ctx, p.db)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to load state document: %w", MapError(err))
	}

	var doc store.StateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode state document: %w", err)
	}

	if doc.Language != "" {
		p.language = doc.Language
	}

	snapshot := doc.Snapshot()
	return &snapshot, nil
}
