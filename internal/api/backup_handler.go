package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/garagelog/garagelog-api/internal/api/shared"
	"github.com/garagelog/garagelog-api/internal/backup"
	"github.com/garagelog/garagelog-api/internal/platform/logger"
	"github.com/garagelog/garagelog-api/internal/service"
)

// maxImportBytes caps the accepted import payload size.
const maxImportBytes = 10 << 20

// BackupHandler handles export and import HTTP requests.
type BackupHandler struct {
	garage service.GarageService
	logger *slog.Logger
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(garage service.GarageService, log *slog.Logger) *BackupHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BackupHandler")
	}

	return &BackupHandler{
		garage: garage,
		logger: log.With(slog.String("component", "backup_handler")),
	}
}

// ExportAll handles GET /export requests. The response body is a
// versioned backup document covering the whole store.
func (h *BackupHandler) ExportAll(w http.ResponseWriter, r *http.Request) {
	doc, err := h.garage.ExportAll(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.writeDocument(w, r, doc, "garagelog_backup.json")
}

// ExportCar handles GET /cars/{id}/export requests. The response body is
// a versioned backup document scoped to the one car.
func (h *BackupHandler) ExportCar(w http.ResponseWriter, r *http.Request) {
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

	doc, err := h.garage.ExportCar(r.Context(), carID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.writeDocument(w, r, doc, backup.SuggestedFilename(*car))
}

// Import handles POST /import requests. The body is a backup document;
// a document that fails to decode leaves the store untouched.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := h.garage.Import(r.Context(), data); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("imported backup document", slog.Int("bytes", len(data)))
	w.WriteHeader(http.StatusNoContent)
}

// writeDocument marshals the backup document and writes it as a JSON
// attachment.
func (h *BackupHandler) writeDocument(
	w http.ResponseWriter,
	r *http.Request,
	doc *backup.Document,
	filename string,
) {
	data, err := doc.Marshal()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to encode backup", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write export response", slog.String("error", err.Error()))
	}
}
