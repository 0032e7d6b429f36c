package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Car-specific validation errors
var (
	// ErrCarIDEmpty is returned when a car ID is empty or nil.
	ErrCarIDEmpty = errors.New("car ID cannot be empty")

	// ErrCarNameEmpty is returned when a car's display name is empty.
	ErrCarNameEmpty = errors.New("car name cannot be empty")

	// ErrCarMakeEmpty is returned when a car's make is empty.
	ErrCarMakeEmpty = errors.New("car make cannot be empty")

	// ErrCarModelEmpty is returned when a car's model is empty.
	ErrCarModelEmpty = errors.New("car model cannot be empty")

	// ErrCarYearInvalid is returned when a car's year is zero or negative.
	ErrCarYearInvalid = errors.New("car year must be a positive integer")

	// ErrCarMileageNegative is returned when a car's mileage is negative.
	ErrCarMileageNegative = errors.New("car mileage cannot be negative")
)

// Car represents a tracked vehicle with its identity and current mileage.
// The JSON field names are the persisted camelCase names so that backup
// documents written by earlier clients continue to round-trip.
type Car struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Make           string    `json:"make"`
	Model          string    `json:"model"`
	Year           int       `json:"year"`
	CurrentMileage int64     `json:"currentMileage"`
}

// NewCar creates a new Car with the given identity fields and starting mileage.
// It generates a new UUID for the car ID.
// Returns an error if validation fails.
func NewCar(name, make, model string, year int, currentMileage int64) (*Car, error) {
	car := &Car{
		ID:             uuid.New(),
		Name:           name,
		Make:           make,
		Model:          model,
		Year:           year,
		CurrentMileage: currentMileage,
	}

	if err := car.Validate(); err != nil {
		return nil, err
	}

	return car, nil
}

// Validate checks if the Car has valid data.
// Returns an error if any field fails validation.
func (c *Car) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCarIDEmpty
	}

	if c.Name == "" {
		return ErrCarNameEmpty
	}

	if c.Make == "" {
		return ErrCarMakeEmpty
	}

	if c.Model == "" {
		return ErrCarModelEmpty
	}

	if c.Year <= 0 {
		return ErrCarYearInvalid
	}

	if c.CurrentMileage < 0 {
		return ErrCarMileageNegative
	}

	return nil
}
