package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/garagelog/garagelog-api/internal/domain"
	"github.com/garagelog/garagelog-api/internal/store"
)

// Version is the current backup document version.
const Version = 1

// Codec errors.
var (
	// ErrInvalidDocument is returned when input cannot be parsed as a
	// backup document at all.
	ErrInvalidDocument = errors.New("invalid backup document")

	// ErrMissingCollections is returned when a parsed document lacks the
	// required cars and services keys. Presence of those two keys is the
	// only structural validation performed.
	ErrMissingCollections = fmt.Errorf("%w: cars and services keys are required", ErrInvalidDocument)

	// ErrCarNotInSnapshot is returned by EncodeCar when the requested
	// car is not part of the snapshot.
	ErrCarNotInSnapshot = errors.New("car not present in snapshot")
)

// Document is the portable snapshot format:
//
//	{ "version": 1, "date": <ISO-8601>, "cars": [...], "services": [...], "expenses": [...] }
//
// The three collections are pointers so that an absent key and an
// explicitly empty array stay distinguishable through a round trip: nil
// means the key was omitted, a non-nil empty slice means the collection
// was exported empty. Unknown extra fields in imported documents are
// ignored.
type Document struct {
	Version  int                     `json:"version"`
	Date     time.Time               `json:"date"`
	Cars     *[]domain.Car           `json:"cars,omitempty"`
	Services *[]domain.ServiceRecord `json:"services,omitempty"`
	Expenses *[]domain.Expense       `json:"expenses,omitempty"`
}

// Encode produces a whole-store document from the snapshot, stamped with
// the current time.
func Encode(snapshot domain.Snapshot) *Document {
	cars := append([]domain.Car{}, snapshot.Cars...)
	services := append([]domain.ServiceRecord{}, snapshot.Services...)
	expenses := append([]domain.Expense{}, snapshot.Expenses...)

	return &Document{
		Version:  Version,
		Date:     time.Now().UTC(),
		Cars:     &cars,
		Services: &services,
		Expenses: &expenses,
	}
}

// EncodeCar produces a per-vehicle document: the single car plus only its
// own service records and expenses. Returns ErrCarNotInSnapshot if the
// car is not part of the snapshot.
func EncodeCar(snapshot domain.Snapshot, carID uuid.UUID) (*Document, error) {
	var car *domain.Car
	for i := range snapshot.Cars {
		if snapshot.Cars[i].ID == carID {
			car = &snapshot.Cars[i]
			break
		}
	}
	if car == nil {
		return nil, ErrCarNotInSnapshot
	}

	cars := []domain.Car{*car}
	services := append([]domain.ServiceRecord{}, snapshot.ServicesForCar(carID)...)
	expenses := append([]domain.Expense{}, snapshot.ExpensesForCar(carID)...)

	return &Document{
		Version:  Version,
		Date:     time.Now().UTC(),
		Cars:     &cars,
		Services: &services,
		Expenses: &expenses,
	}, nil
}

// Marshal renders the document as UTF-8 JSON text, indented for human
// inspection of exported files.
func (d *Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Decode parses and minimally validates a backup document. It requires
// the cars and services keys to be present; field-level type mismatches
// are decode errors, never silently coerced. On any failure the returned
// document is nil, so a failed import can never mutate anything.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if doc.Cars == nil || doc.Services == nil {
		return nil, ErrMissingCollections
	}

	return &doc, nil
}

// ImportData converts the document into the store's import payload,
// preserving the absent-versus-empty distinction per collection.
func (d *Document) ImportData() store.ImportData {
	return store.ImportData{
		Cars:     d.Cars,
		Services: d.Services,
		Expenses: d.Expenses,
	}
}

// SuggestedFilename derives a shareable file name for a per-vehicle
// export from the car's make and model, e.g. "history_Toyota_Corolla.json".
func SuggestedFilename(car domain.Car) string {
	name := fmt.Sprintf("history_%s_%s.json", car.Make, car.Model)
	return strings.Join(strings.Fields(name), "_")
}
