package domain

import "github.com/google/uuid"

// Snapshot is an immutable point-in-time view of the three collections.
// Snapshots are always deep copies: mutating one never affects the store
// it was read from, and the contained slices preserve insertion order.
type Snapshot struct {
	Cars     []Car           `json:"cars"`
	Services []ServiceRecord `json:"services"`
	Expenses []Expense       `json:"expenses"`
}

// Clone returns a deep copy of the snapshot. Pointer-typed fields inside
// the records (the reminder threshold) are duplicated so no aliasing
// escapes.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Cars:     make([]Car, len(s.Cars)),
		Services: make([]ServiceRecord, len(s.Services)),
		Expenses: make([]Expense, len(s.Expenses)),
	}

	copy(out.Cars, s.Cars)
	copy(out.Expenses, s.Expenses)

	for i, record := range s.Services {
		out.Services[i] = record
		if record.NextServiceMileage != nil {
			next := *record.NextServiceMileage
			out.Services[i].NextServiceMileage = &next
		}
	}

	return out
}

// ServicesForCar returns the service records belonging to the given car,
// in insertion order.
func (s Snapshot) ServicesForCar(carID uuid.UUID) []ServiceRecord {
	var out []ServiceRecord
	for _, record := range s.Services {
		if record.CarID == carID {
			out = append(out, record)
		}
	}
	return out
}

// ExpensesForCar returns the expenses belonging to the given car, in
// insertion order.
func (s Snapshot) ExpensesForCar(carID uuid.UUID) []Expense {
	var out []Expense
	for _, expense := range s.Expenses {
		if expense.CarID == carID {
			out = append(out, expense)
		}
	}
	return out
}
