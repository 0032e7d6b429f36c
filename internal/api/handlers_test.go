package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagelog/garagelog-api/internal/domain"
	"github.com/garagelog/garagelog-api/internal/service"
	"github.com/garagelog/garagelog-api/internal/store"
)

// newTestServer wires the full handler stack against a real in-memory
// store, mirroring the production router layout.
func newTestServer(t *testing.T) (*httptest.Server, service.GarageService, *store.MemoryStore) {
	t.Helper()

	memStore := store.NewMemoryStore(nil, nil)
	garage, err := service.NewGarageService(memStore, nil, nil)
	require.NoError(t, err)

	logger := slog.Default()
	carHandler := NewCarHandler(garage, logger)
	serviceHandler := NewServiceHandler(garage, logger)
	expenseHandler := NewExpenseHandler(garage, logger)
	backupHandler := NewBackupHandler(garage, logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/cars", carHandler.RegisterCar)
		r.Get("/cars", carHandler.ListCars)
		r.Get("/cars/{id}", carHandler.GetCar)
		r.Put("/cars/{id}/mileage", carHandler.UpdateMileage)
		r.Delete("/cars/{id}", carHandler.DeleteCar)
		r.Get("/cars/{id}/reminders", carHandler.GetReminders)
		r.Post("/cars/{id}/services", serviceHandler.RecordMaintenance)
		r.Get("/cars/{id}/services", serviceHandler.GetHistory)
		r.Patch("/services/{id}", serviceHandler.EditService)
		r.Delete("/services/{id}", serviceHandler.DeleteService)
		r.Post("/services/{id}/dismiss", serviceHandler.DismissReminder)
		r.Post("/expenses", expenseHandler.AddExpense)
		r.Get("/cars/{id}/expenses", expenseHandler.GetExpenses)
		r.Delete("/expenses/{id}", expenseHandler.DeleteExpense)
		r.Get("/export", backupHandler.ExportAll)
		r.Get("/cars/{id}/export", backupHandler.ExportCar)
		r.Post("/import", backupHandler.Import)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, garage, memStore
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func registerCarViaAPI(t *testing.T, serverURL string) domain.Car {
	t.Helper()
	resp := doJSON(t, http.MethodPost, serverURL+"/api/cars", map[string]interface{}{
		"name":           "Daily Driver",
		"make":           "Toyota",
		"model":          "Corolla",
		"year":           2019,
		"currentMileage": 48000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var car domain.Car
	decodeBody(t, resp, &car)
	return car
}

func TestRegisterCarEndpoint(t *testing.T) {
	t.Parallel()
	server, _, _ := newTestServer(t)

	car := registerCarViaAPI(t, server.URL)
	assert.NotEqual(t, uuid.Nil, car.ID)
	assert.Equal(t, int64(48000), car.CurrentMileage)

	// Validation failures map to 400
	resp := doJSON(t, http.MethodPost, server.URL+"/api/cars", map[string]interface{}{
		"name": "", "make": "Toyota", "model": "Corolla", "year": 2019,
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Malformed JSON maps to 400
	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/cars", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	badResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = badResp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
}

func TestGetCarEndpoint(t *testing.T) {
	t.Parallel()
	server, _, _ := newTestServer(t)
	car := registerCarViaAPI(t, server.URL)

	resp, err := http.Get(server.URL + "/api/cars/" + car.ID.String())
	require.NoError(t, err)
	var got domain.Car
	decodeBody(t, resp, &got)
	assert.Equal(t, car.ID, got.ID)

	// Unknown ID maps to 404
	missing, err := http.Get(server.URL + "/api/cars/" + uuid.NewString())
	require.NoError(t, err)
	defer func() { _ = missing.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	// Malformed ID maps to 400
	malformed, err := http.Get(server.URL + "/api/cars/not-a-uuid")
	require.NoError(t, err)
	defer func() { _ = malformed.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, malformed.StatusCode)
}

func TestUpdateMileageEndpoint(t *testing.T) {
	t.Parallel()
	server, _, _ := newTestServer(t)
	car := registerCarViaAPI(t, server.URL)

	url := fmt.Sprintf("%s/api/cars/%s/mileage", server.URL, car.ID)

	// Forward update succeeds
	resp := doJSON(t, http.MethodPut, url, map[string]interface{}{"mileage": 48500})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var update MileageUpdateResponse
	decodeBody(t, resp, &update)
	assert.Equal(t, int64(48500), update.Car.CurrentMileage)
	assert.Equal(t, int64(48000), update.PreviousMileage)

	// Unconfirmed regression maps to 409
	resp = doJSON(t, http.MethodPut, url, map[string]interface{}{"mileage": 40000})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Confirmed regression succeeds
	resp = doJSON(t, http.MethodPut, url, map[string]interface{}{"mileage": 40000, "confirmed": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &update)
	assert.Equal(t, int64(40000), update.Car.CurrentMileage)
}

func TestUpdateMileageReportsNewlyDueServices(t *testing.T) {
	t.Parallel()
	server, _, _ := newTestServer(t)
	car := registerCarViaAPI(t, server.URL)

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/cars/%s/services", server.URL, car.ID), map[string]interface{}{
		"title":              "Oil Change",
		"date":               "2025-06-14",
		"cost":               89.50,
		"mileageAtService":   44000,
		"nextServiceMileage": 49000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/cars/%s/mileage", server.URL, car.ID),
		map[string]interface{}{"mileage": 50000})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var update MileageUpdateResponse
	decodeBody(t, resp, &update)
	require.Len(t, update.NewlyDue, 1)
	assert.Equal(t, "Oil Change", update.NewlyDue[0].Title)
}

func TestDeleteCarCascadesViaAPI(t *testing.T) {
	t.Parallel()
	server, _, memStore := newTestServer(t)
	car := registerCarViaAPI(t, server.URL)

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/cars/%s/services", server.URL, car.ID), map[string]interface{}{
		"title": "Oil Change", "date": "2025-06-14", "cost": 89.50, "mileageAtService": 48000, "trackExpense": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	del := doJSON(t, http.MethodDelete, server.URL+"/api/cars/"+car.ID.String(), nil)
	defer func() { _ = del.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)

	snapshot := memStore.Snapshot(context.Background())
	assert.Empty(t, snapshot.Cars)
	assert.Empty(t, snapshot.Services)
	assert.Empty(t, snapshot.Expenses)

	// Deleting again is still 204: the operation is idempotent
	again := doJSON(t, http.MethodDelete, server.URL+"/api/cars/"+car.ID.String(), nil)
	defer func() { _ = again.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, again.StatusCode)
}

func TestRemindersEndpoint(t *testing.T) {
	t.Parallel()
	server, _, _ := newTestServer(t)
	car := registerCarViaAPI(t, server.URL)

	for _, svc := range []map[string]interface{}{
		{"title": "Oil Change", "date": "2025-06-14", "mileageAtService": 44000, "nextServiceMileage": 53000},
		{"title": "Brake Pads", "date": "2024-11-20", "mileageAtService": 42000, "nextServiceMileage": 47000},
	} {
		resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/cars/%s/services", server.URL, car.ID), svc)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	}

	resp, err := http.Get(fmt.Sprintf("%s/api/cars/%s/reminders", server.URL, car.ID))
	require.NoError(t, err)
	var reminders RemindersResponse
	decodeBody(t, resp, &reminders)

	require.Len(t, reminders.Upcoming, 1)
	assert.Equal(t, int64(5000), reminders.Upcoming[0].Remaining)
	require.Len(t, reminders.Overdue, 1)
	assert.Equal(t, int64(1000), reminders.Overdue[0].OverdueBy)
	assert.Equal(t, float64(1), reminders.Overdue[0].Progress)
}

func TestDismissReminderEndpoint(t *testing.T) {
	t.Parallel()
	server, garage, _ := newTestServer(t)
	car := registerCarViaAPI(t, server.URL)

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/cars/%s/services", server.URL, car.ID), map[string]interface{}{
		"title": "Oil Change", "date": "2025-06-14", "mileageAtService": 44000, "nextServiceMileage": 47000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created RecordMaintenanceResponse
	decodeBody(t, resp, &created)

	dismiss := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/services/%s/dismiss", server.URL, created.Service.ID), nil)
	defer func() { _ = dismiss.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, dismiss.StatusCode)

	schedule, err := garage.Reminders(context.Background(), car.ID)
	require.NoError(t, err)
	assert.Empty(t, schedule.Overdue)
	assert.Empty(t, schedule.Upcoming)
}

func TestEditServiceEndpoint(t *testing.T) {
	t.Parallel()
	server, garage, _ := newTestServer(t)
	car := registerCarViaAPI(t, server.URL)

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/cars/%s/services", server.URL, car.ID), map[string]interface{}{
		"title": "Oil Change", "date": "2025-06-14", "cost": 89.50, "mileageAtService": 48000, "nextServiceMileage": 53000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created RecordMaintenanceResponse
	decodeBody(t, resp, &created)

	edit := doJSON(t, http.MethodPatch, server.URL+"/api/services/"+created.Service.ID.String(), map[string]interface{}{
		"cost": 104.25, "clearNextServiceMileage": true,
	})
	defer func() { _ = edit.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, edit.StatusCode)

	history, err := garage.History(context.Background(), car.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 104.25, history[0].Cost)
	assert.Nil(t, history[0].NextServiceMileage)
	// Untouched fields survive the patch
	assert.Equal(t, "Oil Change", history[0].Title)
}

func TestExpenseEndpoints(t *testing.T) {
	t.Parallel()
	server, _, _ := newTestServer(t)
	car := registerCarViaAPI(t, server.URL)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/expenses", map[string]interface{}{
		"carId":    car.ID.String(),
		"title":    "Fill-up",
		"amount":   62.40,
		"date":     "2025-07-02",
		"category": "Fuel",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var expense domain.Expense
	decodeBody(t, resp, &expense)
	assert.Equal(t, domain.ExpenseCategoryFuel, expense.Category)

	// An invalid category maps to 400
	bad := doJSON(t, http.MethodPost, server.URL+"/api/expenses", map[string]interface{}{
		"carId": car.ID.String(), "title": "Groceries", "date": "2025-07-02", "category": "Groceries",
	})
	defer func() { _ = bad.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)

	// An unknown car maps to 404
	orphan := doJSON(t, http.MethodPost, server.URL+"/api/expenses", map[string]interface{}{
		"carId": uuid.NewString(), "title": "Fill-up", "date": "2025-07-02", "category": "Fuel",
	})
	defer func() { _ = orphan.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, orphan.StatusCode)

	list, err := http.Get(fmt.Sprintf("%s/api/cars/%s/expenses", server.URL, car.ID))
	require.NoError(t, err)
	var expenses []domain.Expense
	decodeBody(t, list, &expenses)
	assert.Len(t, expenses, 1)

	del := doJSON(t, http.MethodDelete, server.URL+"/api/expenses/"+expense.ID.String(), nil)
	defer func() { _ = del.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)
}

func TestExportEndpoints(t *testing.T) {
	t.Parallel()
	server, _, _ := newTestServer(t)
	car := registerCarViaAPI(t, server.URL)

	resp, err := http.Get(server.URL + "/api/export")
	require.NoError(t, err)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var doc struct {
		Version  int               `json:"version"`
		Cars     []domain.Car      `json:"cars"`
		Services []json.RawMessage `json:"services"`
	}
	decodeBody(t, resp, &doc)
	assert.Equal(t, 1, doc.Version)
	require.Len(t, doc.Cars, 1)
	assert.Equal(t, car.ID, doc.Cars[0].ID)

	// Per-car export suggests a filename from make and model
	perCar, err := http.Get(fmt.Sprintf("%s/api/cars/%s/export", server.URL, car.ID))
	require.NoError(t, err)
	defer func() { _ = perCar.Body.Close() }()
	assert.Equal(t, http.StatusOK, perCar.StatusCode)
	assert.Contains(t, perCar.Header.Get("Content-Disposition"), "history_Toyota_Corolla.json")

	missing, err := http.Get(fmt.Sprintf("%s/api/cars/%s/export", server.URL, uuid.NewString()))
	require.NoError(t, err)
	defer func() { _ = missing.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestImportEndpoint(t *testing.T) {
	t.Parallel()
	server, _, memStore := newTestServer(t)
	registerCarViaAPI(t, server.URL)

	// A document missing the required keys maps to 400 and mutates nothing
	bad := doJSON(t, http.MethodPost, server.URL+"/api/import", map[string]interface{}{
		"version": 1,
		"cars":    []interface{}{},
	})
	defer func() { _ = bad.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
	assert.Len(t, memStore.Snapshot(context.Background()).Cars, 1)

	// A valid document replaces the present collections
	imported := domain.Car{
		ID: uuid.New(), Name: "Imported", Make: "Honda", Model: "Civic", Year: 2022, CurrentMileage: 5000,
	}
	good := doJSON(t, http.MethodPost, server.URL+"/api/import", map[string]interface{}{
		"version":  1,
		"cars":     []domain.Car{imported},
		"services": []interface{}{},
	})
	defer func() { _ = good.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, good.StatusCode)

	snapshot := memStore.Snapshot(context.Background())
	require.Len(t, snapshot.Cars, 1)
	assert.Equal(t, imported.ID, snapshot.Cars[0].ID)
}
