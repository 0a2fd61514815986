package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

type StatusHandler struct {
	log *zap.Logger
}

func NewStatusHandler(log *zap.Logger) *StatusHandler {
	return &StatusHandler{log: log}
}

func (h *StatusHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.log, http.StatusOK, map[string]string{"status": "ok"})
}
