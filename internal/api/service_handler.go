package api

import (
	"log/slog"
	"net/http"

	"github.com/garagelog/garagelog-api/internal/api/shared"
	"github.com/garagelog/garagelog-api/internal/platform/logger"
	"github.com/garagelog/garagelog-api/internal/service"
)

// ServiceHandler handles maintenance-record HTTP requests.
type ServiceHandler struct {
	garage service.GarageService
	logger *slog.Logger
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(garage service.GarageService, log *slog.Logger) *ServiceHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ServiceHandler")
	}

	return &ServiceHandler{
		garage: garage,
		logger: log.With(slog.String("component", "service_handler")),
	}
}

// RecordMaintenance handles POST /cars/{id}/services requests. The
// optional trackExpense flag pairs a Maintenance-category expense with
// the logged service.
func (h *ServiceHandler) RecordMaintenance(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	carID, ok := carIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid car ID")
		return
	}

	var req RecordMaintenanceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.garage.RecordMaintenance(r.Context(), service.MaintenanceInput{
		CarID:              carID,
		Title:              req.Title,
		Date:               req.Date,
		Cost:               req.Cost,
		MileageAtService:   req.MileageAtService,
		NextServiceMileage: req.NextServiceMileage,
		Notes:              req.Notes,
		ServiceCenter:      req.ServiceCenter,
		ProductBrand:       req.ProductBrand,
		TrackExpense:       req.TrackExpense,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("recorded maintenance",
		slog.String("car_id", carID.String()),
		slog.String("service_id", result.Service.ID.String()),
		slog.Bool("expense_tracked", result.Expense != nil))
	shared.RespondWithJSON(w, r, http.StatusCreated, RecordMaintenanceResponse{
		Service: result.Service,
		Expense: result.Expense,
	})
}

// GetHistory handles GET /cars/{id}/services requests.
func (h *ServiceHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	carID, ok := carIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid car ID")
		return
	}

	records, err := h.garage.History(r.Context(), carID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, records)
}

// EditService handles PATCH /services/{id} requests. Absent fields are
// left untouched; editing a nonexistent record is a no-op.
func (h *ServiceHandler) EditService(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := carIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid service ID")
		return
	}

	var req EditServiceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.garage.EditService(r.Context(), serviceID, req.Update()); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteService handles DELETE /services/{id} requests. Idempotent.
func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := carIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid service ID")
		return
	}

	if err := h.garage.DeleteService(r.Context(), serviceID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DismissReminder handles POST /services/{id}/dismiss requests. Dismissal
// is permanent and survives later edits to the record.
func (h *ServiceHandler) DismissReminder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	serviceID, ok := carIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid service ID")
		return
	}

	if err := h.garage.DismissReminder(r.Context(), serviceID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("dismissed reminder", slog.String("service_id", serviceID.String()))
	w.WriteHeader(http.StatusNoContent)
}
