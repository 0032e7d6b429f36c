package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/garagelog/garagelog-api/internal/backup"
	"github.com/garagelog/garagelog-api/internal/domain"
	"github.com/garagelog/garagelog-api/internal/domain/reminder"
	"github.com/garagelog/garagelog-api/internal/store"
)

// MaintenanceInput carries everything needed to log a service event.
type MaintenanceInput struct {
	CarID              uuid.UUID
	Title              string
	Date               string
	Cost               float64
	MileageAtService   int64
	NextServiceMileage *int64
	Notes              string
	ServiceCenter      string
	ProductBrand       string

	// TrackExpense pairs a Maintenance-category expense with the
	// logged service. The pairing is a deliberate workflow decision,
	// not a store side effect.
	TrackExpense bool
}

// MaintenanceResult reports what RecordMaintenance created: the service
// record, and the paired expense when one was requested.
type MaintenanceResult struct {
	Service domain.ServiceRecord
	Expense *domain.Expense
}

// ExpenseInput carries everything needed to add a standalone expense.
type ExpenseInput struct {
	CarID    uuid.UUID
	Title    string
	Amount   float64
	Date     string
	Category domain.ExpenseCategory
}

// MileageUpdate reports the outcome of a guarded mileage update,
// including the records whose reminder thresholds were crossed by this
// update so the caller can raise a one-time notification.
type MileageUpdate struct {
	Car             domain.Car
	PreviousMileage int64
	NewlyDue        []domain.ServiceRecord
}

// GarageService provides the vehicle-maintenance workflows.
type GarageService interface {
	// RegisterCar validates and stores a new car.
	RegisterCar(ctx context.Context, name, make, model string, year int, currentMileage int64) (*domain.Car, error)

	// Cars returns all cars in insertion order.
	Cars(ctx context.Context) ([]domain.Car, error)

	// Car returns a single car. Returns store.ErrCarNotFound if absent.
	Car(ctx context.Context, carID uuid.UUID) (*domain.Car, error)

	// UpdateMileage applies a guarded mileage update. A proposed value
	// lower than the current mileage is rejected with
	// ErrMileageRegression unless confirmed is set.
	UpdateMileage(ctx context.Context, carID uuid.UUID, mileage int64, confirmed bool) (*MileageUpdate, error)

	// DeleteCar removes the car and all of its service records and
	// expenses. Idempotent.
	DeleteCar(ctx context.Context, carID uuid.UUID) error

	// RecordMaintenance logs a service event and, when requested, its
	// paired Maintenance-category expense.
	RecordMaintenance(ctx context.Context, input MaintenanceInput) (*MaintenanceResult, error)

	// History returns the car's service records in insertion order.
	History(ctx context.Context, carID uuid.UUID) ([]domain.ServiceRecord, error)

	// EditService merges a partial update into an existing record.
	EditService(ctx context.Context, id uuid.UUID, update domain.ServiceRecordUpdate) error

	// DeleteService removes a single service record.
	DeleteService(ctx context.Context, id uuid.UUID) error

	// DismissReminder permanently excludes the record from reminder
	// derivation.
	DismissReminder(ctx context.Context, id uuid.UUID) error

	// Reminders derives the car's reminder schedule from a fresh
	// snapshot. Returns store.ErrCarNotFound if the car is absent.
	Reminders(ctx context.Context, carID uuid.UUID) (*reminder.Schedule, error)

	// AddExpense validates and stores a standalone expense.
	AddExpense(ctx context.Context, input ExpenseInput) (*domain.Expense, error)

	// Expenses returns the car's expenses in insertion order.
	Expenses(ctx context.Context, carID uuid.UUID) ([]domain.Expense, error)

	// DeleteExpense removes a single expense.
	DeleteExpense(ctx context.Context, id uuid.UUID) error

	// ExportAll produces a whole-store backup document.
	ExportAll(ctx context.Context) (*backup.Document, error)

	// ExportCar produces a per-vehicle backup document.
	ExportCar(ctx context.Context, carID uuid.UUID) (*backup.Document, error)

	// Import parses a backup document and merges it into the store.
	// On any decode failure no mutation occurs.
	Import(ctx context.Context, data []byte) error
}

// garageServiceImpl implements the GarageService interface.
type garageServiceImpl struct {
	store  store.Store
	params *reminder.Params
	logger *slog.Logger
}

// NewGarageService creates a new GarageService backed by the given store.
// It returns an error if the store is nil. If params is nil, default
// reminder parameters are used; if logger is nil, the default logger is
// used.
func NewGarageService(
	s store.Store,
	params *reminder.Params,
	logger *slog.Logger,
) (GarageService, error) {
	if s == nil {
		return nil, domain.NewValidationError("store", "cannot be nil", domain.ErrValidation)
	}

	if params == nil {
		params = reminder.NewDefaultParams()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &garageServiceImpl{
		store:  s,
		params: params,
		logger: logger.With(slog.String("component", "garage_service")),
	}, nil
}

// RegisterCar implements GarageService.RegisterCar.
func (s *garageServiceImpl) RegisterCar(
	ctx context.Context,
	name, make, model string,
	year int,
	currentMileage int64,
) (*domain.Car, error) {
	car, err := domain.NewCar(name, make, model, year, currentMileage)
	if err != nil {
		return nil, err
	}

	if err := s.store.AddCar(ctx, car); err != nil {
		return nil, NewGarageServiceError("register_car", "failed to store car", err)
	}

	s.logger.Info("registered car",
		slog.String("car_id", car.ID.String()),
		slog.String("make", car.Make),
		slog.String("model", car.Model))
	return car, nil
}

// Cars implements GarageService.Cars.
func (s *garageServiceImpl) Cars(ctx context.Context) ([]domain.Car, error) {
	return s.store.Snapshot(ctx).Cars, nil
}

// Car implements GarageService.Car.
func (s *garageServiceImpl) Car(ctx context.Context, carID uuid.UUID) (*domain.Car, error) {
	return s.store.GetCar(ctx, carID)
}

// UpdateMileage implements GarageService.UpdateMileage.
//
// The regression comparison lives here, at the boundary, by design: the
// store replaces the mileage unconditionally so a confirmed correction
// can always go through.
func (s *garageServiceImpl) UpdateMileage(
	ctx context.Context,
	carID uuid.UUID,
	mileage int64,
	confirmed bool,
) (*MileageUpdate, error) {
	if mileage < 0 {
		return nil, domain.NewValidationError("mileage", "cannot be negative", domain.ErrCarMileageNegative)
	}

	car, err := s.store.GetCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	previous := car.CurrentMileage
	if mileage < previous && !confirmed {
		return nil, fmt.Errorf("%w: current %d, proposed %d", ErrMileageRegression, previous, mileage)
	}

	// Detect thresholds crossed by this update before applying it; the
	// "newly due" set is a derived query, never a stored flag.
	newlyDue := reminder.DueBetween(previous, mileage, s.store.Snapshot(ctx).ServicesForCar(carID))

	if err := s.store.UpdateCarMileage(ctx, carID, mileage); err != nil {
		return nil, NewGarageServiceError("update_mileage", "failed to store mileage", err)
	}

	car.CurrentMileage = mileage
	s.logger.Info("updated car mileage",
		slog.String("car_id", carID.String()),
		slog.Int64("previous", previous),
		slog.Int64("mileage", mileage),
		slog.Int("newly_due", len(newlyDue)))

	return &MileageUpdate{
		Car:             *car,
		PreviousMileage: previous,
		NewlyDue:        newlyDue,
	}, nil
}

// DeleteCar implements GarageService.DeleteCar.
func (s *garageServiceImpl) DeleteCar(ctx context.Context, carID uuid.UUID) error {
	return s.store.RemoveCar(ctx, carID)
}

// RecordMaintenance implements GarageService.RecordMaintenance.
//
// When a paired expense is requested and cannot be stored, the service
// record is removed again so the workflow stays all-or-nothing from the
// caller's perspective.
func (s *garageServiceImpl) RecordMaintenance(
	ctx context.Context,
	input MaintenanceInput,
) (*MaintenanceResult, error) {
	record, err := domain.NewServiceRecord(
		input.CarID,
		input.Title,
		input.Date,
		input.Cost,
		input.MileageAtService,
	)
	if err != nil {
		return nil, err
	}

	record.Notes = input.Notes
	record.ServiceCenter = input.ServiceCenter
	record.ProductBrand = input.ProductBrand
	if input.NextServiceMileage != nil {
		next := *input.NextServiceMileage
		record.NextServiceMileage = &next
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.AddService(ctx, record); err != nil {
		return nil, err
	}

	result := &MaintenanceResult{Service: *record}

	if input.TrackExpense {
		expense, err := domain.NewExpense(
			input.CarID,
			fmt.Sprintf("Service: %s", input.Title),
			input.Cost,
			input.Date,
			domain.ExpenseCategoryMaintenance,
		)
		if err == nil {
			err = s.store.AddExpense(ctx, expense)
		}
		if err != nil {
			// Compensate so the caller never observes a half-applied
			// workflow.
			if removeErr := s.store.RemoveService(ctx, record.ID); removeErr != nil {
				s.logger.Error("failed to remove service record after expense failure",
					"error", removeErr,
					slog.String("service_id", record.ID.String()))
			}
			return nil, NewGarageServiceError("record_maintenance", "failed to store paired expense", err)
		}
		result.Expense = expense
	}

	s.logger.Info("recorded maintenance",
		slog.String("car_id", input.CarID.String()),
		slog.String("service_id", record.ID.String()),
		slog.Bool("expense_tracked", input.TrackExpense))
	return result, nil
}

// History implements GarageService.History.
func (s *garageServiceImpl) History(ctx context.Context, carID uuid.UUID) ([]domain.ServiceRecord, error) {
	if _, err := s.store.GetCar(ctx, carID); err != nil {
		return nil, err
	}
	return s.store.Snapshot(ctx).ServicesForCar(carID), nil
}

// EditService implements GarageService.EditService.
func (s *garageServiceImpl) EditService(
	ctx context.Context,
	id uuid.UUID,
	update domain.ServiceRecordUpdate,
) error {
	if update.NextServiceMileage != nil && *update.NextServiceMileage <= 0 {
		return domain.NewValidationError(
			"nextServiceMileage", "must be a positive integer", domain.ErrNextServiceMileageInvalid)
	}
	return s.store.UpdateService(ctx, id, update)
}

// DeleteService implements GarageService.DeleteService.
func (s *garageServiceImpl) DeleteService(ctx context.Context, id uuid.UUID) error {
	return s.store.RemoveService(ctx, id)
}

// DismissReminder implements GarageService.DismissReminder.
func (s *garageServiceImpl) DismissReminder(ctx context.Context, id uuid.UUID) error {
	return s.store.DismissReminder(ctx, id)
}

// Reminders implements GarageService.Reminders.
func (s *garageServiceImpl) Reminders(ctx context.Context, carID uuid.UUID) (*reminder.Schedule, error) {
	car, err := s.store.GetCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	schedule := reminder.Classify(
		car.CurrentMileage,
		s.store.Snapshot(ctx).ServicesForCar(carID),
		s.params,
	)
	return &schedule, nil
}

// AddExpense implements GarageService.AddExpense.
func (s *garageServiceImpl) AddExpense(ctx context.Context, input ExpenseInput) (*domain.Expense, error) {
	expense, err := domain.NewExpense(input.CarID, input.Title, input.Amount, input.Date, input.Category)
	if err != nil {
		return nil, err
	}

	if err := s.store.AddExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// Expenses implements GarageService.Expenses.
func (s *garageServiceImpl) Expenses(ctx context.Context, carID uuid.UUID) ([]domain.Expense, error) {
	if _, err := s.store.GetCar(ctx, carID); err != nil {
		return nil, err
	}
	return s.store.Snapshot(ctx).ExpensesForCar(carID), nil
}

// DeleteExpense implements GarageService.DeleteExpense.
func (s *garageServiceImpl) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.store.RemoveExpense(ctx, id)
}

// ExportAll implements GarageService.ExportAll.
func (s *garageServiceImpl) ExportAll(ctx context.Context) (*backup.Document, error) {
	return backup.Encode(s.store.Snapshot(ctx)), nil
}

// ExportCar implements GarageService.ExportCar.
func (s *garageServiceImpl) ExportCar(ctx context.Context, carID uuid.UUID) (*backup.Document, error) {
	doc, err := backup.EncodeCar(s.store.Snapshot(ctx), carID)
	if err != nil {
		return nil, store.ErrCarNotFound
	}
	return doc, nil
}

// Import implements GarageService.Import.
func (s *garageServiceImpl) Import(ctx context.Context, data []byte) error {
	doc, err := backup.Decode(data)
	if err != nil {
		return err
	}

	if err := s.store.Import(ctx, doc.ImportData()); err != nil {
		return NewGarageServiceError("import", "failed to merge document", err)
	}

	s.logger.Info("imported backup document",
		slog.Int("version", doc.Version),
		slog.Bool("cars_present", doc.Cars != nil),
		slog.Bool("services_present", doc.Services != nil),
		slog.Bool("expenses_present", doc.Expenses != nil))
	return nil
}
