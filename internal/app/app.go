package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/stock-ahora/api-sales/internal/config"
	"github.com/stock-ahora/api-sales/internal/query"
	"github.com/stock-ahora/api-sales/internal/repository"
	"github.com/stock-ahora/api-sales/internal/service/consumer"
	"github.com/stock-ahora/api-sales/internal/service/eventservice"
	"github.com/stock-ahora/api-sales/internal/service/ingest"
	"github.com/stock-ahora/api-sales/internal/service/sales"
	"github.com/wagslane/go-rabbitmq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the services shared by the HTTP server and the CLI.
type App struct {
	DB       *gorm.DB
	Repo     repository.SaleRepository
	Sales    sales.SalesService
	Importer ingest.ImportService
	Import   ingest.Config

	mqConn  *rabbitmq.Conn
	closers []func()
}

// New connects every dependency selected by cfg. Close releases them.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	a := &App{
		Import: ingest.Config{Source: cfg.Import.Source, BatchSize: cfg.Import.BatchSize},
	}

	db, err := config.NewDB(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	a.DB = db
	a.closers = append(a.closers, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	a.Repo = repository.NewSaleRepository(db)
	a.Sales = sales.NewSalesService(a.Repo, query.Options{MaxLimit: cfg.SalesMaxLimit}, log)

	var downloader ingest.S3Downloader
	if strings.HasPrefix(strings.ToLower(cfg.Import.Source), "s3://") {
		s3svc, err := config.NewS3Service(ctx, cfg.AWSRegion)
		if err != nil {
			a.Close()
			return nil, err
		}
		downloader = s3svc.Downloader
	}

	publisher, err := a.publisher(cfg.MQ, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Importer = ingest.NewImportService(a.Repo, downloader, publisher, log)
	return a, nil
}

func (a *App) publisher(mq config.MQConfig, log *zap.Logger) (eventservice.EventPublisher, error) {
	if !mq.Enabled() {
		return eventservice.NopPublisher{}, nil
	}

	conn, err := config.RabbitConn(mq, log)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	pub, err := config.RabbitPublisher(conn, eventservice.ExchangeName, eventservice.ExchangeKindTopic, log)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("create rabbitmq publisher: %w", err)
	}
	a.mqConn = conn
	a.closers = append(a.closers, func() {
		pub.Close()
		_ = conn.Close()
	})

	log.Info("rabbitmq publisher ready", zap.String("exchange", eventservice.ExchangeName))
	return eventservice.NewMQPublisher(pub, log), nil
}

// StartImportListener consumes import requests from queue. It is a no-op
// when RabbitMQ is not configured or queue is empty.
func (a *App) StartImportListener(ctx context.Context, queue string, log *zap.Logger) error {
	if a.mqConn == nil || queue == "" {
		return nil
	}

	l, err := consumer.NewListener(a.mqConn, queue, a.Importer, a.Import, log)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, l.Close)

	l.StartListening(ctx)
	return nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
