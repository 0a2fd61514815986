package eventservice

import (
	"context"

	"github.com/wagslane/go-rabbitmq"
	"go.uber.org/zap"
)

type EventPublisher interface {
	PublishImported(ctx context.Context, e SalesImportedEvent) error
}

// amqpPublisher is the subset of *rabbitmq.Publisher used here.
type amqpPublisher interface {
	PublishWithContext(ctx context.Context, data []byte, routingKeys []string, optionFuncs ...func(*rabbitmq.PublishOptions)) error
}

type MQPublisher struct {
	pub amqpPublisher
	log *zap.Logger
}

func NewMQPublisher(pub *rabbitmq.Publisher, log *zap.Logger) *MQPublisher {
	return &MQPublisher{pub: pub, log: log}
}

func (p *MQPublisher) PublishImported(ctx context.Context, e SalesImportedEvent) error {
	e.BaseEvent = e.BaseEvent.withDefaults(SalesImportedTopic)
	if e.CorrelationID == "" {
		e.CorrelationID = e.RunID.String()
	}

	p.log.Info("publishing sales imported event",
		zap.String("event_id", e.EventID),
		zap.String("run_id", e.RunID.String()),
		zap.String("status", e.Status),
		zap.Int("rows", e.Rows),
	)
	return p.publishJSON(ctx, SalesImportedTopic, e.EventID, e, map[string]any{
		"type":          e.EventType,
		"version":       e.Version,
		"correlationId": e.CorrelationID,
	})
}

// NopPublisher drops events; used when RabbitMQ is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishImported(context.Context, SalesImportedEvent) error { return nil }
