package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/garagelog/garagelog-api/internal/domain"
	"github.com/garagelog/garagelog-api/internal/events"
)

// MemoryStore implements the Store interface with in-memory collections.
//
// A single mutex serializes writers, so each mutation is atomic with
// respect to readers invoked synchronously afterward; no intermediate
// state is ever observable where children exist without a parent.
// Collections are held as slices in insertion order, and no mutable
// references escape: every read hands out a deep copy.
type MemoryStore struct {
	mu       sync.RWMutex
	cars     []domain.Car
	services []domain.ServiceRecord
	expenses []domain.Expense

	emitter events.Emitter
	logger  *slog.Logger
}

// NewMemoryStore creates a new empty MemoryStore. The emitter may be nil,
// in which case mutations are not broadcast. If logger is nil, the
// default logger is used.
func NewMemoryStore(emitter events.Emitter, logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryStore{
		emitter: emitter,
		logger:  logger.With(slog.String("component", "memory_store")),
	}
}

// Ensure MemoryStore implements the Store interface
var _ Store = (*MemoryStore)(nil)

// AddCar implements Store.AddCar.
func (m *MemoryStore) AddCar(ctx context.Context, car *domain.Car) error {
	if car == nil {
		return fmt.Errorf("%w: car is nil", ErrInvalidEntity)
	}

	m.mu.Lock()
	m.cars = append(m.cars, *car)
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(ctx, "add_car", snapshot)
	return nil
}

// UpdateCarMileage implements Store.UpdateCarMileage. The new mileage is
// written unconditionally; the comparison against the previous value is
// exposed through GetCar so callers can warn about regressions before
// committing.
func (m *MemoryStore) UpdateCarMileage(ctx context.Context, carID uuid.UUID, mileage int64) error {
	m.mu.Lock()
	changed := false
	for i := range m.cars {
		if m.cars[i].ID == carID {
			m.cars[i].CurrentMileage = mileage
			changed = true
			break
		}
	}
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	if changed {
		m.notify(ctx, "update_car_mileage", snapshot)
	}
	return nil
}

// RemoveCar implements Store.RemoveCar.
func (m *MemoryStore) RemoveCar(ctx context.Context, carID uuid.UUID) error {
	m.mu.Lock()
	changed := false
	for i := range m.cars {
		if m.cars[i].ID == carID {
			m.cars = append(m.cars[:i], m.cars[i+1:]...)
			changed = true
			break
		}
	}

	if changed {
		// Cascade under the same lock so no orphaned child is ever
		// observable.
		services := m.services[:0]
		for _, record := range m.services {
			if record.CarID != carID {
				services = append(services, record)
			}
		}
		m.services = services

		expenses := m.expenses[:0]
		for _, expense := range m.expenses {
			if expense.CarID != carID {
				expenses = append(expenses, expense)
			}
		}
		m.expenses = expenses
	}
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	if changed {
		m.notify(ctx, "remove_car", snapshot)
	}
	return nil
}

// GetCar implements Store.GetCar.
func (m *MemoryStore) GetCar(ctx context.Context, carID uuid.UUID) (*domain.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, car := range m.cars {
		if car.ID == carID {
			out := car
			return &out, nil
		}
	}
	return nil, ErrCarNotFound
}

// AddService implements Store.AddService.
func (m *MemoryStore) AddService(ctx context.Context, record *domain.ServiceRecord) error {
	if record == nil {
		return fmt.Errorf("%w: service record is nil", ErrInvalidEntity)
	}

	m.mu.Lock()
	if !m.carExistsLocked(record.CarID) {
		m.mu.Unlock()
		return ErrCarNotFound
	}

	stored := *record
	if record.NextServiceMileage != nil {
		next := *record.NextServiceMileage
		stored.NextServiceMileage = &next
	}
	m.services = append(m.services, stored)
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(ctx, "add_service", snapshot)
	return nil
}

// UpdateService implements Store.UpdateService.
func (m *MemoryStore) UpdateService(ctx context.Context, id uuid.UUID, update domain.ServiceRecordUpdate) error {
	m.mu.Lock()
	changed := false
	for i := range m.services {
		if m.services[i].ID == id {
			update.Apply(&m.services[i])
			changed = true
			break
		}
	}
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	if changed {
		m.notify(ctx, "update_service", snapshot)
	}
	return nil
}

// RemoveService implements Store.RemoveService.
func (m *MemoryStore) RemoveService(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	changed := false
	for i := range m.services {
		if m.services[i].ID == id {
			m.services = append(m.services[:i], m.services[i+1:]...)
			changed = true
			break
		}
	}
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	if changed {
		m.notify(ctx, "remove_service", snapshot)
	}
	return nil
}

// DismissReminder implements Store.DismissReminder.
func (m *MemoryStore) DismissReminder(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	changed := false
	for i := range m.services {
		if m.services[i].ID == id {
			changed = !m.services[i].IsReminderDismissed
			m.services[i].Dismiss()
			break
		}
	}
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	if changed {
		m.notify(ctx, "dismiss_reminder", snapshot)
	}
	return nil
}

// GetService implements Store.GetService.
func (m *MemoryStore) GetService(ctx context.Context, id uuid.UUID) (*domain.ServiceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.services {
		if record.ID == id {
			out := record
			if record.NextServiceMileage != nil {
				next := *record.NextServiceMileage
				out.NextServiceMileage = &next
			}
			return &out, nil
		}
	}
	return nil, ErrServiceNotFound
}

// AddExpense implements Store.AddExpense.
func (m *MemoryStore) AddExpense(ctx context.Context, expense *domain.Expense) error {
	if expense == nil {
		return fmt.Errorf("%w: expense is nil", ErrInvalidEntity)
	}

	m.mu.Lock()
	if !m.carExistsLocked(expense.CarID) {
		m.mu.Unlock()
		return ErrCarNotFound
	}
	m.expenses = append(m.expenses, *expense)
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(ctx, "add_expense", snapshot)
	return nil
}

// RemoveExpense implements Store.RemoveExpense.
func (m *MemoryStore) RemoveExpense(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	changed := false
	for i := range m.expenses {
		if m.expenses[i].ID == id {
			m.expenses = append(m.expenses[:i], m.expenses[i+1:]...)
			changed = true
			break
		}
	}
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	if changed {
		m.notify(ctx, "remove_expense", snapshot)
	}
	return nil
}

// Import implements Store.Import. Collections are replaced wholesale
// where present; a nil collection leaves the existing one untouched and a
// non-nil empty slice clears it.
func (m *MemoryStore) Import(ctx context.Context, data ImportData) error {
	m.mu.Lock()
	if data.Cars != nil {
		m.cars = append([]domain.Car(nil), *data.Cars...)
	}
	if data.Services != nil {
		m.services = make([]domain.ServiceRecord, 0, len(*data.Services))
		for _, record := range *data.Services {
			if record.NextServiceMileage != nil {
				next := *record.NextServiceMileage
				record.NextServiceMileage = &next
			}
			m.services = append(m.services, record)
		}
	}
	if data.Expenses != nil {
		m.expenses = append([]domain.Expense(nil), *data.Expenses...)
	}
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(ctx, "import", snapshot)
	return nil
}

// Snapshot implements Store.Snapshot.
func (m *MemoryStore) Snapshot(ctx context.Context) domain.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// snapshotLocked builds a deep-copied snapshot. Callers must hold at
// least a read lock.
func (m *MemoryStore) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		Cars:     m.cars,
		Services: m.services,
		Expenses: m.expenses,
	}.Clone()
}

// carExistsLocked reports whether a car with the given ID is live.
// Callers must hold the lock.
func (m *MemoryStore) carExistsLocked(carID uuid.UUID) bool {
	for _, car := range m.cars {
		if car.ID == carID {
			return true
		}
	}
	return false
}

// notify broadcasts the post-mutation snapshot to subscribers. Handler
// failures never fail the mutation itself; they are logged and dropped.
func (m *MemoryStore) notify(ctx context.Context, operation string, snapshot domain.Snapshot) {
	if m.emitter == nil {
		return
	}

	event := events.NewStateChangedEvent(operation, snapshot)
	if err := m.emitter.EmitStateChanged(ctx, event); err != nil {
		m.logger.Error("state change handler failed",
			"error", err,
			"operation", operation,
			"event_id", event.ID)
	}
}
