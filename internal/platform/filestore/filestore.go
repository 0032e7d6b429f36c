// Package filestore provides a file-based implementation of the snapshot
// Persister: the whole state document is kept as a single JSON file,
// written atomically via a rename so a crash mid-write never leaves a
// truncated document behind.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/garagelog/garagelog-api/internal/domain"
	"github.com/garagelog/garagelog-api/internal/store"
)

// FilePersister implements the store.Persister interface against a local
// JSON file.
type FilePersister struct {
	path     string
	language string
	logger   *slog.Logger
}

// NewFilePersister creates a new FilePersister writing to the given
// path. If logger is nil, the default logger is used.
func NewFilePersister(path string, logger *slog.Logger) (*FilePersister, error) {
	if path == "" {
		return nil, errors.New("snapshot path cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FilePersister{
		path:     path,
		language: "en",
		logger:   logger.With(slog.String("component", "file_persister")),
	}, nil
}

// Ensure FilePersister implements the store.Persister interface
var _ store.Persister = (*FilePersister)(nil)

// Save implements store.Persister.Save. The document is written to a
// temporary file in the same directory and renamed into place.
func (p *FilePersister) Save(ctx context.Context, snapshot domain.Snapshot) error {
	doc := store.NewStateDocument(snapshot, p.language)

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode state document: %w", err)
	}

	dir := filepath.Dir(p.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(p.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary snapshot file: %w", err)
	}

	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}

	if err := os.Rename(tmpName, p.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	p.logger.Debug("saved snapshot",
		slog.String("path", p.path),
		slog.Int("bytes", len(data)))
	return nil
}

// Load implements store.Persister.Load. A missing file means nothing has
// been persisted yet. The loaded document's language tag is remembered
// and written back on subsequent saves.
func (p *FilePersister) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
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
