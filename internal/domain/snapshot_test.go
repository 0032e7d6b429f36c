package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestSnapshotClone(t *testing.T) {
	t.Parallel() // Enable parallel execution
	carID := uuid.New()
	threshold := int64(53000)

	original := Snapshot{
		Cars: []Car{
			{ID: carID, Name: "Daily Driver", Make: "Toyota", Model: "Corolla", Year: 2019, CurrentMileage: 48000},
		},
		Services: []ServiceRecord{
			{
				ID:                 uuid.New(),
				CarID:              carID,
				Title:              "Oil Change",
				Date:               "2025-06-14",
				MileageAtService:   48000,
				NextServiceMileage: &threshold,
			},
		},
		Expenses: []Expense{
			{ID: uuid.New(), CarID: carID, Title: "Fill-up", Amount: 62.40, Date: "2025-07-02", Category: ExpenseCategoryFuel},
		},
	}

	clone := original.Clone()

	// Mutating the clone must not leak into the original
	clone.Cars[0].CurrentMileage = 99999
	if original.Cars[0].CurrentMileage != 48000 {
		t.Error("Expected clone mutation to not affect original car")
	}

	*clone.Services[0].NextServiceMileage = 1
	if *original.Services[0].NextServiceMileage != 53000 {
		t.Error("Expected threshold pointer to be duplicated, not aliased")
	}
}

func TestSnapshotPerCarFilters(t *testing.T) {
	t.Parallel() // Enable parallel execution
	carA := uuid.New()
	carB := uuid.New()

	snapshot := Snapshot{
		Services: []ServiceRecord{
			{ID: uuid.New(), CarID: carA, Title: "Oil Change", Date: "2025-01-01", MileageAtService: 1000},
			{ID: uuid.New(), CarID: carB, Title: "Brake Pads", Date: "2025-02-01", MileageAtService: 2000},
			{ID: uuid.New(), CarID: carA, Title: "Inspection", Date: "2025-03-01", MileageAtService: 3000},
		},
		Expenses: []Expense{
			{ID: uuid.New(), CarID: carB, Title: "Fill-up", Date: "2025-01-15", Category: ExpenseCategoryFuel},
		},
	}

	services := snapshot.ServicesForCar(carA)
	if len(services) != 2 {
		t.Fatalf("Expected 2 services for car A, got %d", len(services))
	}
	// Insertion order is preserved
	if services[0].Title != "Oil Change" || services[1].Title != "Inspection" {
		t.Errorf("Expected insertion order, got %q then %q", services[0].Title, services[1].Title)
	}

	if got := snapshot.ExpensesForCar(carA); len(got) != 0 {
		t.Errorf("Expected no expenses for car A, got %d", len(got))
	}
	if got := snapshot.ExpensesForCar(carB); len(got) != 1 {
		t.Errorf("Expected 1 expense for car B, got %d", len(got))
	}
}
