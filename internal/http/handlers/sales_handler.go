package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stock-ahora/api-sales/internal/service/sales"
	"go.uber.org/zap"
)

const listTimeout = 30 * time.Second

type SalesHandler struct {
	Service sales.SalesService
	Log     *zap.Logger
}

// List never rejects parameters; malformed values fall back to defaults.
func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), listTimeout)
	defer cancel()

	page, err := h.Service.List(ctx, r.URL.Query())
	if err != nil {
		h.Log.Error("list sales",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("query", r.URL.RawQuery),
			zap.Error(err),
		)
		writeError(w, h.Log, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, h.Log, http.StatusOK, page)
}
