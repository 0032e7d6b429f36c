package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/garagelog/garagelog-api/internal/api/shared"
	"github.com/garagelog/garagelog-api/internal/platform/logger"
	"github.com/garagelog/garagelog-api/internal/service"
)

// CarHandler handles car-related HTTP requests.
type CarHandler struct {
	garage service.GarageService
	logger *slog.Logger
}

// NewCarHandler creates a new CarHandler.
func NewCarHandler(garage service.GarageService, log *slog.Logger) *CarHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CarHandler")
	}

	return &CarHandler{
		garage: garage,
		logger: log.With(slog.String("component", "car_handler")),
	}
}

// carIDFromRequest extracts and parses the {id} URL parameter.
func carIDFromRequest(r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// RegisterCar handles POST /cars requests.
func (h *CarHandler) RegisterCar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterCarRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	car, err := h.garage.RegisterCar(r.Context(), req.Name, req.Make, req.Model, req.Year, req.CurrentMileage)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("registered car", slog.String("car_id", car.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, car)
}

// ListCars handles GET /cars requests.
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.garage.Cars(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cars)
}

// GetCar handles GET /cars/{id} requests.
func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	carID, ok := carIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid car ID")
		return
	}

	car, err := h.garage.Car(r.Context(), carID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, car)
}

// UpdateMileage handles PUT /cars/{id}/mileage requests. A mileage lower
// than the current one is rejected with 409 unless the request carries
// confirmed=true; the response lists the services that became due.
func (h *CarHandler) UpdateMileage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	carID, ok := carIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid car ID")
		return
	}

	var req UpdateMileageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	update, err := h.garage.UpdateMileage(r.Context(), carID, req.Mileage, req.Confirmed)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("updated mileage",
		slog.String("car_id", carID.String()),
		slog.Int("newly_due", len(update.NewlyDue)))
	shared.RespondWithJSON(w, r, http.StatusOK, mileageUpdateToResponse(update))
}

// DeleteCar handles DELETE /cars/{id} requests. Deletion cascades to the
// car's service records and expenses and is idempotent.
func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	carID, ok := carIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid car ID")
		return
	}

	if err := h.garage.DeleteCar(r.Context(), carID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetReminders handles GET /cars/{id}/reminders requests.
func (h *CarHandler) GetReminders(w http.ResponseWriter, r *http.Request) {
	carID, ok := carIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid car ID")
		return
	}

	schedule, err := h.garage.Reminders(r.Context(), carID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, remindersToResponse(schedule))
}
