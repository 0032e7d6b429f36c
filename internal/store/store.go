package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/garagelog/garagelog-api/internal/domain"
)

// ImportData carries the collections of a backup document into the store.
// The merge policy is last-write-wins at collection granularity: a nil
// collection means "absent" and leaves the store's collection untouched,
// while a non-nil empty slice is a valid replacement that clears the
// collection. Record-level merging is never performed.
type ImportData struct {
	Cars     *[]domain.Car
	Services *[]domain.ServiceRecord
	Expenses *[]domain.Expense
}

// Store is the single source of truth for the three collections.
//
// All operations are synchronous and total: for well-typed input they
// never panic, and update/remove/dismiss operations on a non-existent ID
// are silent no-ops rather than errors, matching forgiving UI-driven
// mutation semantics. Field validation happens before the store is
// reached; the store only enforces referential integrity (a service
// record or expense must reference a live car at creation time) and the
// cascade-delete invariant (no orphans ever persist).
//
// Every successful mutation synchronously notifies subscribers with the
// full updated snapshot. Persistence to durable storage is a subscriber
// concern, not part of any operation's contract.
type Store interface {
	// AddCar appends the car to the vehicle collection.
	AddCar(ctx context.Context, car *domain.Car) error

	// UpdateCarMileage replaces the car's current mileage unconditionally.
	// The store does not enforce mileage monotonicity; rejecting a
	// regression is the calling layer's responsibility. A no-op if the
	// car does not exist.
	UpdateCarMileage(ctx context.Context, carID uuid.UUID, mileage int64) error

	// RemoveCar removes the car and cascades: every service record and
	// expense whose carId matches is removed in the same atomic step.
	// Idempotent; a no-op if the car does not exist.
	RemoveCar(ctx context.Context, carID uuid.UUID) error

	// GetCar retrieves a car by ID. Returns ErrCarNotFound if it does
	// not exist.
	GetCar(ctx context.Context, carID uuid.UUID) (*domain.Car, error)

	// AddService appends the record to the service collection.
	// Returns ErrCarNotFound if the record references a car that is not
	// live. Pairing a Maintenance expense with the record is the
	// caller's decision, not the store's.
	AddService(ctx context.Context, record *domain.ServiceRecord) error

	// UpdateService merges the non-nil fields of the update into the
	// existing record; ID and CarID are immutable. A no-op if the record
	// does not exist.
	UpdateService(ctx context.Context, id uuid.UUID, update domain.ServiceRecordUpdate) error

	// RemoveService removes the single record. No cascade: expenses are
	// linked to cars, not to service records. A no-op if the record does
	// not exist.
	RemoveService(ctx context.Context, id uuid.UUID) error

	// DismissReminder sets the record's reminder-dismissed flag.
	// One-way and idempotent; a no-op if the record does not exist.
	DismissReminder(ctx context.Context, id uuid.UUID) error

	// GetService retrieves a service record by ID. Returns
	// ErrServiceNotFound if it does not exist.
	GetService(ctx context.Context, id uuid.UUID) (*domain.ServiceRecord, error)

	// AddExpense appends the expense to the expense collection.
	// Returns ErrCarNotFound if the expense references a car that is
	// not live.
	AddExpense(ctx context.Context, expense *domain.Expense) error

	// RemoveExpense removes the single expense. A no-op if it does not
	// exist.
	RemoveExpense(ctx context.Context, id uuid.UUID) error

	// Import replaces each collection wholesale with the corresponding
	// collection from the data, but only where present (non-nil).
	Import(ctx context.Context, data ImportData) error

	// Snapshot returns a deep-copied view of all three collections in
	// insertion order.
	Snapshot(ctx context.Context) domain.Snapshot
}
