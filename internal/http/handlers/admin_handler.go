package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/stock-ahora/api-sales/internal/service/ingest"
	"go.uber.org/zap"
)

type importStarted struct {
	Status string    `json:"status"`
	RunID  uuid.UUID `json:"run_id"`
	Source string    `json:"source"`
}

type AdminHandler struct {
	Importer ingest.ImportService
	Config   ingest.Config
	Log      *zap.Logger
}

// Import starts a background CSV import and returns immediately.
func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	runID, err := h.Importer.Start(r.Context(), h.Config)
	switch {
	case errors.Is(err, ingest.ErrImportRunning):
		writeError(w, h.Log, http.StatusConflict, "import already running")
		return
	case errors.Is(err, ingest.ErrNoSource):
		writeError(w, h.Log, http.StatusServiceUnavailable, "no import source configured")
		return
	case err != nil:
		h.Log.Error("start import", zap.Error(err))
		writeError(w, h.Log, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, h.Log, http.StatusAccepted, importStarted{
		Status: "import_started",
		RunID:  runID,
		Source: h.Config.Source,
	})
}
