package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ServiceRecord-specific validation errors
var (
	// ErrServiceIDEmpty is returned when a service record ID is empty or nil.
	ErrServiceIDEmpty = errors.New("service record ID cannot be empty")

	// ErrServiceCarIDEmpty is returned when a service record's car ID is empty or nil.
	ErrServiceCarIDEmpty = errors.New("service record car ID cannot be empty")

	// ErrServiceTitleEmpty is returned when a service record's title is empty.
	ErrServiceTitleEmpty = errors.New("service record title cannot be empty")

	// ErrServiceDateEmpty is returned when a service record's date is empty.
	ErrServiceDateEmpty = errors.New("service record date cannot be empty")

	// ErrServiceCostNegative is returned when a service record's cost is negative.
	ErrServiceCostNegative = errors.New("service record cost cannot be negative")

	// ErrServiceMileageNegative is returned when the mileage at service time is negative.
	ErrServiceMileageNegative = errors.New("service record mileage cannot be negative")

	// ErrNextServiceMileageInvalid is returned when a reminder threshold is zero or negative.
	ErrNextServiceMileageInvalid = errors.New("next service mileage must be a positive integer")
)

// CommonServiceTitles is the fixed catalog of frequently logged service types.
// Callers may use one of these or supply free text.
var CommonServiceTitles = []string{
	"Oil Change",
	"Tire Rotation",
	"Brake Pads",
	"Inspection",
	"Battery",
}

// ServiceRecord represents a logged maintenance event for a car.
// NextServiceMileage, when set, marks the mileage at which the service
// is due again and drives reminder derivation; nil means no reminder.
// IsReminderDismissed is a one-way flag: once true the record is
// permanently excluded from reminder derivation.
type ServiceRecord struct {
	ID                  uuid.UUID `json:"id"`
	CarID               uuid.UUID `json:"carId"`
	Title               string    `json:"title"`
	Date                string    `json:"date"`
	Cost                float64   `json:"cost"`
	MileageAtService    int64     `json:"mileageAtService"`
	NextServiceMileage  *int64    `json:"nextServiceMileage,omitempty"`
	Notes               string    `json:"notes,omitempty"`
	ServiceCenter       string    `json:"serviceCenter,omitempty"`
	ProductBrand        string    `json:"productBrand,omitempty"`
	IsReminderDismissed bool      `json:"isReminderDismissed,omitempty"`
}

// NewServiceRecord creates a new ServiceRecord with the required fields.
// It generates a new UUID for the record ID. Optional fields (notes,
// service center, product brand, reminder threshold) may be set on the
// returned record before it is stored; call Validate again after doing so.
// Returns an error if validation fails.
func NewServiceRecord(
	carID uuid.UUID,
	title string,
	date string,
	cost float64,
	mileageAtService int64,
) (*ServiceRecord, error) {
	record := &ServiceRecord{
		ID:               uuid.New(),
		CarID:            carID,
		Title:            title,
		Date:             date,
		Cost:             cost,
		MileageAtService: mileageAtService,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the ServiceRecord has valid data.
// Returns an error if any field fails validation.
func (s *ServiceRecord) Validate() error {
	if s.ID == uuid.Nil {
		return ErrServiceIDEmpty
	}

	if s.CarID == uuid.Nil {
		return ErrServiceCarIDEmpty
	}

	if s.Title == "" {
		return ErrServiceTitleEmpty
	}

	if s.Date == "" {
		return ErrServiceDateEmpty
	}

	if s.Cost < 0 {
		return ErrServiceCostNegative
	}

	if s.MileageAtService < 0 {
		return ErrServiceMileageNegative
	}

	if s.NextServiceMileage != nil && *s.NextServiceMileage <= 0 {
		return ErrNextServiceMileageInvalid
	}

	return nil
}

// Dismiss marks the record's reminder as permanently dismissed.
// Dismissal is one-way and idempotent.
func (s *ServiceRecord) Dismiss() {
	s.IsReminderDismissed = true
}

// ServiceRecordUpdate is a partial patch for an existing ServiceRecord.
// Nil fields are left untouched by the merge; ID and CarID are immutable
// and cannot be patched. Setting ClearNextServiceMileage removes the
// reminder threshold; it takes precedence over NextServiceMileage.
type ServiceRecordUpdate struct {
	Title                   *string
	Date                    *string
	Cost                    *float64
	MileageAtService        *int64
	NextServiceMileage      *int64
	ClearNextServiceMileage bool
	Notes                   *string
	ServiceCenter           *string
	ProductBrand            *string
}

// Apply merges the non-nil fields of the update into the record.
func (u ServiceRecordUpdate) Apply(s *ServiceRecord) {
	if u.Title != nil {
		s.Title = *u.Title
	}
	if u.Date != nil {
		s.Date = *u.Date
	}
	if u.Cost != nil {
		s.Cost = *u.Cost
	}
	if u.MileageAtService != nil {
		s.MileageAtService = *u.MileageAtService
	}
	if u.ClearNextServiceMileage {
		s.NextServiceMileage = nil
	} else if u.NextServiceMileage != nil {
		next := *u.NextServiceMileage
		s.NextServiceMileage = &next
	}
	if u.Notes != nil {
		s.Notes = *u.Notes
	}
	if u.ServiceCenter != nil {
		s.ServiceCenter = *u.ServiceCenter
	}
	if u.ProductBrand != nil {
		s.ProductBrand = *u.ProductBrand
	}
}
