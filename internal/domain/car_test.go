package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestNewCar(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Test valid car creation
	car, err := NewCar("Daily Driver", "Toyota", "Corolla", 2019, 42000)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if car.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if car.Name != "Daily Driver" {
		t.Errorf("Expected name %q, got %q", "Daily Driver", car.Name)
	}

	if car.Make != "Toyota" || car.Model != "Corolla" {
		t.Errorf("Expected Toyota Corolla, got %s %s", car.Make, car.Model)
	}

	if car.Year != 2019 {
		t.Errorf("Expected year 2019, got %d", car.Year)
	}

	if car.CurrentMileage != 42000 {
		t.Errorf("Expected mileage 42000, got %d", car.CurrentMileage)
	}

	// Test invalid name
	_, err = NewCar("", "Toyota", "Corolla", 2019, 42000)
	if err != ErrCarNameEmpty {
		t.Errorf("Expected error %v, got %v", ErrCarNameEmpty, err)
	}

	// Test invalid make
	_, err = NewCar("Daily Driver", "", "Corolla", 2019, 42000)
	if err != ErrCarMakeEmpty {
		t.Errorf("Expected error %v, got %v", ErrCarMakeEmpty, err)
	}

	// Test invalid model
	_, err = NewCar("Daily Driver", "Toyota", "", 2019, 42000)
	if err != ErrCarModelEmpty {
		t.Errorf("Expected error %v, got %v", ErrCarModelEmpty, err)
	}

	// Test invalid year
	_, err = NewCar("Daily Driver", "Toyota", "Corolla", 0, 42000)
	if err != ErrCarYearInvalid {
		t.Errorf("Expected error %v, got %v", ErrCarYearInvalid, err)
	}

	// Test negative mileage
	_, err = NewCar("Daily Driver", "Toyota", "Corolla", 2019, -1)
	if err != ErrCarMileageNegative {
		t.Errorf("Expected error %v, got %v", ErrCarMileageNegative, err)
	}

	// Zero mileage is a valid starting odometer
	car, err = NewCar("New Car", "Honda", "Civic", 2024, 0)
	if err != nil {
		t.Fatalf("Expected no error for zero mileage, got %v", err)
	}
	if car.CurrentMileage != 0 {
		t.Errorf("Expected mileage 0, got %d", car.CurrentMileage)
	}
}

func TestCarValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validCar := Car{
		ID:             uuid.New(),
		Name:           "Weekend Car",
		Make:           "Mazda",
		Model:          "MX-5",
		Year:           2021,
		CurrentMileage: 12000,
	}

	if err := validCar.Validate(); err != nil {
		t.Errorf("Expected valid car to pass validation, got %v", err)
	}

	// A zero-value ID must be rejected
	noID := validCar
	noID.ID = uuid.Nil
	if err := noID.Validate(); err != ErrCarIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrCarIDEmpty, err)
	}
}

func TestCarJSONFieldNames(t *testing.T) {
	t.Parallel() // Enable parallel execution
	car := Car{
		ID:             uuid.New(),
		Name:           "Daily Driver",
		Make:           "Toyota",
		Model:          "Corolla",
		Year:           2019,
		CurrentMileage: 42000,
	}

	data, err := json.Marshal(car)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The camelCase names are the persisted backup format and must not drift
	for _, key := range []string{"id", "name", "make", "model", "year", "currentMileage"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("Expected JSON field %q to be present", key)
		}
	}
}
