package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/stock-ahora/api-sales/internal/service/eventservice"
	"github.com/stock-ahora/api-sales/internal/service/ingest"
	"github.com/wagslane/go-rabbitmq"
	"go.uber.org/zap"
)

// handleImportRequested starts a background import. Malformed messages and
// imports that cannot start are discarded; a running import counts as handled.
func (l *Listener) handleImportRequested(ctx context.Context, d rabbitmq.Delivery) rabbitmq.Action {
	var event eventservice.ImportRequestedEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		l.log.Warn("discarding malformed import request", zap.Error(err))
		return rabbitmq.NackDiscard
	}

	runID, err := l.importer.Start(ctx, l.cfg)
	switch {
	case errors.Is(err, ingest.ErrImportRunning):
		l.log.Info("import request ignored, import already running", zap.String("event_id", event.EventID))
		return rabbitmq.Ack
	case err != nil:
		l.log.Error("import request failed", zap.String("event_id", event.EventID), zap.Error(err))
		return rabbitmq.NackDiscard
	}

	l.log.Info("import started from message",
		zap.String("event_id", event.EventID),
		zap.String("requested_by", event.RequestedBy),
		zap.String("run_id", runID.String()),
	)
	return rabbitmq.Ack
}
