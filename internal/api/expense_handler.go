package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/garagelog/garagelog-api/internal/api/shared"
	"github.com/garagelog/garagelog-api/internal/domain"
	"github.com/garagelog/garagelog-api/internal/platform/logger"
	"github.com/garagelog/garagelog-api/internal/service"
)

// ExpenseHandler handles expense-related HTTP requests.
type ExpenseHandler struct {
	garage service.GarageService
	logger *slog.Logger
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(garage service.GarageService, log *slog.Logger) *ExpenseHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ExpenseHandler")
	}

	return &ExpenseHandler{
		garage: garage,
		logger: log.With(slog.String("component", "expense_handler")),
	}
}

// AddExpense handles POST /expenses requests.
func (h *ExpenseHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AddExpenseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid car ID")
		return
	}

	expense, err := h.garage.AddExpense(r.Context(), service.ExpenseInput{
		CarID:    carID,
		Title:    req.Title,
		Amount:   req.Amount,
		Date:     req.Date,
		Category: domain.ExpenseCategory(req.Category),
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("added expense",
		slog.String("car_id", carID.String()),
		slog.String("expense_id", expense.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, expense)
}

// GetExpenses handles GET /cars/{id}/expenses requests.
func (h *ExpenseHandler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	carID, ok := carIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid car ID")
		return
	}

	expenses, err := h.garage.Expenses(r.Context(), carID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, expenses)
}

// DeleteExpense handles DELETE /expenses/{id} requests. Idempotent.
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, ok := carIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	if err := h.garage.DeleteExpense(r.Context(), expenseID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
