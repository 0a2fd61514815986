package eventservice

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagslane/go-rabbitmq"
	"go.uber.org/zap/zaptest"
)

type recordingPublisher struct {
	body        []byte
	routingKeys []string
	options     rabbitmq.PublishOptions
	err         error
}

func (r *recordingPublisher) PublishWithContext(_ context.Context, data []byte, routingKeys []string, optionFuncs ...func(*rabbitmq.PublishOptions)) error {
	r.body = data
	r.routingKeys = routingKeys
	for _, fn := range optionFuncs {
		fn(&r.options)
	}
	return r.err
}

func TestPublishImported(t *testing.T) {
	rec := &recordingPublisher{}
	p := &MQPublisher{pub: rec, log: zaptest.NewLogger(t)}

	runID := uuid.New()
	err := p.PublishImported(context.Background(), SalesImportedEvent{
		RunID:   runID,
		Rows:    12000,
		Batches: 3,
		Status:  ImportSucceeded,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{SalesImportedTopic}, rec.routingKeys)
	assert.Equal(t, ExchangeName, rec.options.Exchange)
	assert.Equal(t, "application/json", rec.options.ContentType)

	var got SalesImportedEvent
	require.NoError(t, json.Unmarshal(rec.body, &got))
	assert.Equal(t, runID, got.RunID)
	assert.Equal(t, 12000, got.Rows)
	assert.Equal(t, SalesImportedTopic, got.EventType)
	assert.Equal(t, "1", got.Version)
	assert.Equal(t, runID.String(), got.CorrelationID)
	assert.NotEmpty(t, got.EventID)
	assert.Equal(t, got.EventID, rec.options.MessageID)
	assert.False(t, got.OccurredAt.IsZero())
	assert.Equal(t, runID.String(), rec.options.Headers["correlationId"])
}

func TestPublishImportedWrapsError(t *testing.T) {
	boom := errors.New("channel closed")
	p := &MQPublisher{pub: &recordingPublisher{err: boom}, log: zaptest.NewLogger(t)}

	err := p.PublishImported(context.Background(), SalesImportedEvent{Status: ImportFailed})
	assert.ErrorIs(t, err, boom)
}

func TestNopPublisher(t *testing.T) {
	var p EventPublisher = NopPublisher{}
	assert.NoError(t, p.PublishImported(context.Background(), SalesImportedEvent{}))
}
