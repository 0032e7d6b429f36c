package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/garagelog/garagelog-api/internal/config"
	"github.com/garagelog/garagelog-api/internal/domain"
	"github.com/garagelog/garagelog-api/internal/domain/reminder"
	"github.com/garagelog/garagelog-api/internal/events"
	"github.com/garagelog/garagelog-api/internal/platform/filestore"
	"github.com/garagelog/garagelog-api/internal/platform/postgres"
	"github.com/garagelog/garagelog-api/internal/service"
	"github.com/garagelog/garagelog-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	db         *sql.DB
	persister  store.Persister
	subscriber *service.PersistenceSubscriber

	store  *store.MemoryStore
	garage service.GarageService
}

// newApplication wires the application dependency graph: persister,
// event emitter, store, and the garage service. The persisted state
// document, if any, is loaded into the store before the server accepts
// requests.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.setupPersistence(); err != nil {
		return nil, err
	}

	emitter := events.NewSyncEmitter(logger)
	if app.persister != nil {
		app.subscriber = service.NewPersistenceSubscriber(app.persister, logger)
		emitter.RegisterHandler(app.subscriber)
	}

	app.store = store.NewMemoryStore(emitter, logger)

	if err := app.restoreState(); err != nil {
		return nil, err
	}

	params := &reminder.Params{Window: cfg.Reminder.Window}
	garage, err := service.NewGarageService(app.store, params, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create garage service: %w", err)
	}
	app.garage = garage

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupPersistence creates the snapshot persister selected by the
// storage driver. Driver "none" leaves persistence disabled.
func (app *application) setupPersistence() error {
	switch app.config.Storage.Driver {
	case "file":
		persister, err := filestore.NewFilePersister(app.config.Storage.SnapshotPath, app.logger)
		if err != nil {
			return fmt.Errorf("failed to create file persister: %w", err)
		}
		app.persister = persister

	case "postgres":
		db, err := setupAppDatabase(app.config, app.logger)
		if err != nil {
			return fmt.Errorf("failed to set up database: %w", err)
		}
		app.db = db
		app.persister = postgres.NewStatePersister(db, app.logger)

	case "none":
		app.logger.Warn("Persistence disabled, state will not survive restarts")

	default:
		return fmt.Errorf("unknown storage driver: %q", app.config.Storage.Driver)
	}

	return nil
}

// restoreState loads the persisted snapshot, if one exists, and seeds
// the in-memory store with it.
func (app *application) restoreState() error {
	if app.persister == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snapshot, err := app.persister.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoSnapshot) {
			app.logger.Info("No persisted state found, starting empty")
			return nil
		}
		return fmt.Errorf("failed to load persisted state: %w", err)
	}

	seed := store.ImportData{
		Cars:     &snapshot.Cars,
		Services: &snapshot.Services,
		Expenses: &snapshot.Expenses,
	}
	if err := app.store.Import(ctx, seed); err != nil {
		return fmt.Errorf("failed to seed store from persisted state: %w", err)
	}

	app.logger.Info("Restored persisted state",
		"cars", len(snapshot.Cars),
		"services", len(snapshot.Services),
		"expenses", len(snapshot.Expenses))
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.subscriber != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.subscriber.Flush(ctx); err != nil {
			app.logger.Error("Error flushing pending snapshot", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

// snapshot returns the current store contents. Used by tests.
func (app *application) snapshot(ctx context.Context) domain.Snapshot {
	return app.store.Snapshot(ctx)
}
