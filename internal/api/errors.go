package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/garagelog/garagelog-api/internal/backup"
	"github.com/garagelog/garagelog-api/internal/domain"
	"github.com/garagelog/garagelog-api/internal/service"
	"github.com/garagelog/garagelog-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Constraint warnings: the mutation was not applied and the caller
	// must confirm before retrying.
	case errors.Is(err, service.ErrMileageRegression):
		return http.StatusConflict

	// Bad request errors
	case errors.As(err, &validationErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, backup.ErrInvalidDocument),
		errors.Is(err, store.ErrInvalidEntity),
		isDomainValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal
// details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, store.ErrCarNotFound):
		return "Car not found"

	case errors.Is(err, store.ErrServiceNotFound):
		return "Service record not found"

	case errors.Is(err, store.ErrExpenseNotFound):
		return "Expense not found"

	case store.IsNotFoundError(err):
		return "Not found"

	case errors.Is(err, service.ErrMileageRegression):
		return "New mileage is lower than the current mileage; confirm to apply the correction"

	case errors.Is(err, backup.ErrMissingCollections):
		return "Invalid file format"

	case errors.Is(err, backup.ErrInvalidDocument):
		return "Failed to import data"

	case errors.As(err, &validationErr), isDomainValidationError(err):
		// Domain validation messages are written for users and carry no
		// internal detail.
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Extract the field name and validation tag
		// Example format: "Key: 'RegisterCarRequest.Name' Error:Field validation for 'Name' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "uuid":
		return "invalid identifier format"
	case "min":
		return "value too small"
	case "max":
		return "value too large"
	case "gte":
		return "value out of range"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// isDomainValidationError reports whether the error is one of the bare
// domain validation sentinels returned by the entity constructors.
func isDomainValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrCarNameEmpty,
		domain.ErrCarMakeEmpty,
		domain.ErrCarModelEmpty,
		domain.ErrCarYearInvalid,
		domain.ErrCarMileageNegative,
		domain.ErrServiceTitleEmpty,
		domain.ErrServiceDateEmpty,
		domain.ErrServiceCostNegative,
		domain.ErrServiceMileageNegative,
		domain.ErrNextServiceMileageInvalid,
		domain.ErrExpenseTitleEmpty,
		domain.ErrExpenseDateEmpty,
		domain.ErrExpenseCategoryInvalid,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
