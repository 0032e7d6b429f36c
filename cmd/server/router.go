package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/garagelog/garagelog-api/internal/api"
	apiMiddleware "github.com/garagelog/garagelog-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	carHandler := api.NewCarHandler(app.garage, app.logger)
	serviceHandler := api.NewServiceHandler(app.garage, app.logger)
	expenseHandler := api.NewExpenseHandler(app.garage, app.logger)
	backupHandler := api.NewBackupHandler(app.garage, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Car endpoints
		r.Post("/cars", carHandler.RegisterCar)
		r.Get("/cars", carHandler.ListCars)
		r.Get("/cars/{id}", carHandler.GetCar)
		r.Put("/cars/{id}/mileage", carHandler.UpdateMileage)
		r.Delete("/cars/{id}", carHandler.DeleteCar)
		r.Get("/cars/{id}/reminders", carHandler.GetReminders)

		// Maintenance endpoints
		r.Post("/cars/{id}/services", serviceHandler.RecordMaintenance)
		r.Get("/cars/{id}/services", serviceHandler.GetHistory)
		r.Patch("/services/{id}", serviceHandler.EditService)
		r.Delete("/services/{id}", serviceHandler.DeleteService)
		r.Post("/services/{id}/dismiss", serviceHandler.DismissReminder)

		// Expense endpoints
		r.Post("/expenses", expenseHandler.AddExpense)
		r.Get("/cars/{id}/expenses", expenseHandler.GetExpenses)
		r.Delete("/expenses/{id}", expenseHandler.DeleteExpense)

		// Backup endpoints
		r.Get("/export", backupHandler.ExportAll)
		r.Get("/cars/{id}/export", backupHandler.ExportCar)
		r.Post("/import", backupHandler.Import)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
