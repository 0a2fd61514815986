package consumer

import (
	"context"
	"fmt"

	"github.com/stock-ahora/api-sales/internal/service/eventservice"
	"github.com/stock-ahora/api-sales/internal/service/ingest"
	"github.com/wagslane/go-rabbitmq"
	"go.uber.org/zap"
)

// Listener consumes sales.import.requested messages from a durable queue
// bound to the events exchange.
type Listener struct {
	consumer *rabbitmq.Consumer
	importer ingest.ImportService
	cfg      ingest.Config
	log      *zap.Logger
}

func NewListener(conn *rabbitmq.Conn, queue string, importer ingest.ImportService, cfg ingest.Config, log *zap.Logger) (*Listener, error) {
	log = log.Named("consumer")

	c, err := rabbitmq.NewConsumer(
		conn,
		queue,
		rabbitmq.WithConsumerOptionsRoutingKey(eventservice.SalesImportRequestedTopic),
		rabbitmq.WithConsumerOptionsExchangeName(eventservice.ExchangeName),
		rabbitmq.WithConsumerOptionsExchangeKind(eventservice.ExchangeKindTopic),
		rabbitmq.WithConsumerOptionsExchangeDurable,
		rabbitmq.WithConsumerOptionsExchangeDeclare,
		rabbitmq.WithConsumerOptionsQueueDurable,
		rabbitmq.WithConsumerOptionsLogger(log.Sugar()),
	)
	if err != nil {
		return nil, fmt.Errorf("create consumer for %s: %w", queue, err)
	}

	return &Listener{consumer: c, importer: importer, cfg: cfg, log: log}, nil
}

// StartListening runs the consumer in the background until Close.
func (l *Listener) StartListening(ctx context.Context) {
	go func() {
		err := l.consumer.Run(func(d rabbitmq.Delivery) rabbitmq.Action {
			l.log.Debug("message received", zap.String("routing_key", d.RoutingKey))
			return l.handleImportRequested(ctx, d)
		})
		if err != nil {
			l.log.Error("consumer stopped", zap.Error(err))
		}
	}()
	l.log.Info("listening for import requests", zap.String("routing_key", eventservice.SalesImportRequestedTopic))
}

func (l *Listener) Close() {
	l.consumer.Close()
}
