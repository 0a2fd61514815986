package consumer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stock-ahora/api-sales/internal/service/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/wagslane/go-rabbitmq"
	"go.uber.org/zap/zaptest"
)

type stubImporter struct {
	ingest.ImportService
	err     error
	started int
}

func (s *stubImporter) Start(context.Context, ingest.Config) (uuid.UUID, error) {
	s.started++
	return uuid.New(), s.err
}

func delivery(body string) rabbitmq.Delivery {
	return rabbitmq.Delivery{Delivery: amqp.Delivery{RoutingKey: "sales.import.requested", Body: []byte(body)}}
}

func TestHandleImportRequested(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		err         error
		want        rabbitmq.Action
		wantStarted int
	}{
		{name: "started", body: `{"event_id":"e1","requested_by":"backoffice"}`, want: rabbitmq.Ack, wantStarted: 1},
		{name: "already running", body: `{}`, err: ingest.ErrImportRunning, want: rabbitmq.Ack, wantStarted: 1},
		{name: "no source", body: `{}`, err: ingest.ErrNoSource, want: rabbitmq.NackDiscard, wantStarted: 1},
		{name: "malformed", body: `not json`, want: rabbitmq.NackDiscard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := &stubImporter{err: tt.err}
			l := &Listener{importer: imp, cfg: ingest.Config{Source: "sales.csv"}, log: zaptest.NewLogger(t)}

			got := l.handleImportRequested(context.Background(), delivery(tt.body))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStarted, imp.started)
		})
	}
}
