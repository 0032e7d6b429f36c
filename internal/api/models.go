package api

import (
	"github.com/garagelog/garagelog-api/internal/domain"
	"github.com/garagelog/garagelog-api/internal/domain/reminder"
	"github.com/garagelog/garagelog-api/internal/service"
)

// Common request/response structures.
//
// Cars, service records, and expenses are returned as their domain
// types directly: their JSON tags are the persisted camelCase names,
// which double as the API shape.

// RegisterCarRequest defines the payload for the car registration endpoint.
type RegisterCarRequest struct {
	Name           string `json:"name"           validate:"required"`
	Make           string `json:"make"           validate:"required"`
	Model          string `json:"model"          validate:"required"`
	Year           int    `json:"year"           validate:"required,gt=0"`
	CurrentMileage int64  `json:"currentMileage" validate:"gte=0"`
}

// UpdateMileageRequest defines the payload for the mileage update endpoint.
// Confirmed must be set to apply a mileage lower than the current one
// (correcting a bad entry); without it such an update is rejected.
type UpdateMileageRequest struct {
	Mileage   int64 `json:"mileage"   validate:"gte=0"`
	Confirmed bool  `json:"confirmed"`
}

// MileageUpdateResponse reports the applied update and the services that
// became due because of it.
type MileageUpdateResponse struct {
	Car             domain.Car             `json:"car"`
	PreviousMileage int64                  `json:"previousMileage"`
	NewlyDue        []domain.ServiceRecord `json:"newlyDue"`
}

// RecordMaintenanceRequest defines the payload for logging a service event.
type RecordMaintenanceRequest struct {
	Title              string  `json:"title"                        validate:"required"`
	Date               string  `json:"date"                         validate:"required"`
	Cost               float64 `json:"cost"                         validate:"gte=0"`
	MileageAtService   int64   `json:"mileageAtService"             validate:"gte=0"`
	NextServiceMileage *int64  `json:"nextServiceMileage,omitempty" validate:"omitempty,gt=0"`
	Notes              string  `json:"notes,omitempty"`
	ServiceCenter      string  `json:"serviceCenter,omitempty"`
	ProductBrand       string  `json:"productBrand,omitempty"`
	TrackExpense       bool    `json:"trackExpense"`
}

// RecordMaintenanceResponse reports the created record and, when
// requested, its paired expense.
type RecordMaintenanceResponse struct {
	Service domain.ServiceRecord `json:"service"`
	Expense *domain.Expense      `json:"expense,omitempty"`
}

// EditServiceRequest defines the partial-update payload for a service
// record. Absent fields are left untouched. Setting clearNextServiceMileage
// removes the reminder threshold.
type EditServiceRequest struct {
	Title                   *string  `json:"title,omitempty"              validate:"omitempty,min=1"`
	Date                    *string  `json:"date,omitempty"               validate:"omitempty,min=1"`
	Cost                    *float64 `json:"cost,omitempty"               validate:"omitempty,gte=0"`
	MileageAtService        *int64   `json:"mileageAtService,omitempty"   validate:"omitempty,gte=0"`
	NextServiceMileage      *int64   `json:"nextServiceMileage,omitempty" validate:"omitempty,gt=0"`
	ClearNextServiceMileage bool     `json:"clearNextServiceMileage"`
	Notes                   *string  `json:"notes,omitempty"`
	ServiceCenter           *string  `json:"serviceCenter,omitempty"`
	ProductBrand            *string  `json:"productBrand,omitempty"`
}

// Update converts the request into the domain patch type.
func (r EditServiceRequest) Update() domain.ServiceRecordUpdate {
	return domain.ServiceRecordUpdate{
		Title:                   r.Title,
		Date:                    r.Date,
		Cost:                    r.Cost,
		MileageAtService:        r.MileageAtService,
		NextServiceMileage:      r.NextServiceMileage,
		ClearNextServiceMileage: r.ClearNextServiceMileage,
		Notes:                   r.Notes,
		ServiceCenter:           r.ServiceCenter,
		ProductBrand:            r.ProductBrand,
	}
}

// AddExpenseRequest defines the payload for the standalone expense endpoint.
type AddExpenseRequest struct {
	CarID    string  `json:"carId"    validate:"required,uuid"`
	Title    string  `json:"title"    validate:"required"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"     validate:"required"`
	Category string  `json:"category" validate:"required,oneof=Fuel Maintenance Insurance Tax Other"`
}

// ReminderItemResponse is one derived reminder.
type ReminderItemResponse struct {
	Service   domain.ServiceRecord `json:"service"`
	Remaining int64                `json:"remaining"`
	OverdueBy int64                `json:"overdueBy"`
	Progress  float64              `json:"progress"`
}

// RemindersResponse is the derived schedule for one car.
type RemindersResponse struct {
	Upcoming []ReminderItemResponse `json:"upcoming"`
	Overdue  []ReminderItemResponse `json:"overdue"`
}

// remindersToResponse transforms a derived schedule into the response shape.
func remindersToResponse(schedule *reminder.Schedule) RemindersResponse {
	resp := RemindersResponse{
		Upcoming: make([]ReminderItemResponse, 0, len(schedule.Upcoming)),
		Overdue:  make([]ReminderItemResponse, 0, len(schedule.Overdue)),
	}
	for _, item := range schedule.Upcoming {
		resp.Upcoming = append(resp.Upcoming, ReminderItemResponse{
			Service:   item.Record,
			Remaining: item.Remaining,
			Progress:  item.Progress,
		})
	}
	for _, item := range schedule.Overdue {
		resp.Overdue = append(resp.Overdue, ReminderItemResponse{
			Service:   item.Record,
			OverdueBy: item.OverdueBy,
			Progress:  item.Progress,
		})
	}
	return resp
}

// mileageUpdateToResponse transforms a service-layer update result.
func mileageUpdateToResponse(update *service.MileageUpdate) MileageUpdateResponse {
	newlyDue := update.NewlyDue
	if newlyDue == nil {
		newlyDue = []domain.ServiceRecord{}
	}
	return MileageUpdateResponse{
		Car:             update.Car,
		PreviousMileage: update.PreviousMileage,
		NewlyDue:        newlyDue,
	}
}
