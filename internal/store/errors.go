package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. This is the generic version of the entity-specific not
	// found errors.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific details.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrCarNotFound indicates that the requested car does not exist in
	// the store. It is also returned when a service record or expense
	// references a car that is not live.
	ErrCarNotFound = fmt.Errorf("%w: car", ErrNotFound)

	// ErrServiceNotFound indicates that the requested service record does
	// not exist in the store.
	ErrServiceNotFound = fmt.Errorf("%w: service record", ErrNotFound)

	// ErrExpenseNotFound indicates that the requested expense does not
	// exist in the store.
	ErrExpenseNotFound = fmt.Errorf("%w: expense", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
