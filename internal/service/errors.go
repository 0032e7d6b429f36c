package service

import (
	"errors"
	"fmt"
)

// ErrMileageRegression is returned when a proposed mileage is lower than
// the car's current mileage and the caller has not confirmed the
// correction. This is a boundary guard, not a storage invariant: the
// store itself writes any mileage unconditionally, because a user may
// legitimately need to correct a bad entry.
var ErrMileageRegression = errors.New("new mileage is lower than current mileage")

// GarageServiceError is a custom error type for garage service errors.
type GarageServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for GarageServiceError.
func (e *GarageServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("garage service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("garage service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GarageServiceError) Unwrap() error {
	return e.Err
}

// NewGarageServiceError creates a new GarageServiceError.
func NewGarageServiceError(operation, message string, err error) *GarageServiceError {
	return &GarageServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
