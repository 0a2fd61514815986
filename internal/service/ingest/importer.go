package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/stock-ahora/api-sales/internal/models"
	"github.com/stock-ahora/api-sales/internal/service/eventservice"
	"go.uber.org/zap"
)

// SaleStore is the write side of the sales repository.
type SaleStore interface {
	Count(ctx context.Context) (int64, error)
	InsertBatch(ctx context.Context, sales []models.Sale) error
}

type Result struct {
	RunID      uuid.UUID
	Source     string
	Rows       int
	Batches    int
	Coerced    int
	StartedAt  time.Time
	FinishedAt time.Time
}

type ImportService interface {
	// Run imports synchronously.
	Run(ctx context.Context, cfg Config) (Result, error)
	// Start runs an import in the background and returns its run id.
	Start(ctx context.Context, cfg Config) (uuid.UUID, error)
	// Bootstrap starts a background import when the table is empty.
	Bootstrap(ctx context.Context, cfg Config) bool
	// Wait blocks until the background import, if any, has finished.
	Wait()
	// Shutdown cancels a background import and waits for it until ctx is
	// done. Batches committed before the cancel stay in place.
	Shutdown(ctx context.Context) error
}

type importService struct {
	store     SaleStore
	sources   func(raw string) (Source, error)
	publisher eventservice.EventPublisher
	log       *zap.Logger

	running atomic.Bool
	wg      sync.WaitGroup

	stopCtx context.Context
	stop    context.CancelFunc
}

// NewImportService wires the importer. downloader may be nil when no s3://
// sources are used and publisher may be nil when events are disabled.
func NewImportService(store SaleStore, downloader S3Downloader, publisher eventservice.EventPublisher, log *zap.Logger) ImportService {
	if publisher == nil {
		publisher = eventservice.NopPublisher{}
	}
	stopCtx, stop := context.WithCancel(context.Background())
	return &importService{
		store: store,
		sources: func(raw string) (Source, error) {
			return NewSource(raw, downloader)
		},
		publisher: publisher,
		log:       log.Named("ingest"),
		stopCtx:   stopCtx,
		stop:      stop,
	}
}

func (s *importService) Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Source == "" {
		return Result{}, ErrNoSource
	}
	if !s.running.CompareAndSwap(false, true) {
		return Result{}, ErrImportRunning
	}
	defer s.running.Store(false)

	return s.run(ctx, uuid.New(), cfg)
}

func (s *importService) Start(ctx context.Context, cfg Config) (uuid.UUID, error) {
	if cfg.Source == "" {
		return uuid.Nil, ErrNoSource
	}
	if !s.running.CompareAndSwap(false, true) {
		return uuid.Nil, ErrImportRunning
	}

	runID := uuid.New()
	s.wg.Add(1)

	// detached from the request that triggered it, cancelled by Shutdown
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stopAfter := context.AfterFunc(s.stopCtx, cancel)
	go func() {
		defer s.wg.Done()
		defer s.running.Store(false)
		defer stopAfter()
		defer cancel()

		// finish logs the outcome
		_, _ = s.run(ctx, runID, cfg)
	}()

	return runID, nil
}

func (s *importService) Bootstrap(ctx context.Context, cfg Config) bool {
	n, err := s.store.Count(ctx)
	switch {
	case err != nil:
		s.log.Warn("could not count sales, importing anyway", zap.Error(err))
	case n > 0:
		s.log.Info("sales table already populated, skipping import", zap.Int64("rows", n))
		return false
	}

	runID, err := s.Start(ctx, cfg)
	if err != nil {
		s.log.Error("startup import not started", zap.Error(err))
		return false
	}
	s.log.Info("startup import started", zap.String("run_id", runID.String()), zap.String("source", cfg.Source))
	return true
}

func (s *importService) Wait() {
	s.wg.Wait()
}

func (s *importService) Shutdown(ctx context.Context) error {
	s.stop()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for import: %w", ctx.Err())
	}
}

func (s *importService) run(ctx context.Context, runID uuid.UUID, cfg Config) (res Result, err error) {
	res = Result{RunID: runID, Source: cfg.Source, StartedAt: time.Now().UTC()}
	log := s.log.With(zap.String("run_id", runID.String()), zap.String("source", cfg.Source))

	defer func() {
		res.FinishedAt = time.Now().UTC()
		s.finish(ctx, log, res, err)
	}()

	src, err := s.sources(cfg.Source)
	if err != nil {
		return res, err
	}

	log.Info("downloading CSV")
	rc, err := src.Open(ctx)
	if err != nil {
		return res, err
	}
	defer rc.Close()

	return s.load(ctx, log, rc, cfg, res)
}

// load streams records into batches of cfg.BatchSize rows. Each batch is
// committed in its own transaction; a failure leaves earlier batches in place.
func (s *importService) load(ctx context.Context, log *zap.Logger, r io.Reader, cfg Config, res Result) (Result, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	// short rows leave the missing cells null, extra cells are ignored
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return res, fmt.Errorf("read CSV header: %w", ErrUnknownHeader)
		}
		return res, fmt.Errorf("read CSV header: %w", err)
	}
	mapper, err := newRowMapper(header)
	if err != nil {
		return res, err
	}

	size := cfg.batchSize()
	batch := make([]models.Sale, 0, size)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.store.InsertBatch(ctx, batch); err != nil {
			return fmt.Errorf("insert batch %d: %w", res.Batches+1, err)
		}
		res.Rows += len(batch)
		res.Batches++
		importRows.Add(float64(len(batch)))
		batch = batch[:0]

		log.Info("inserted rows so far", zap.Int("rows", res.Rows), zap.Int("batches", res.Batches))
		if cfg.Progress != nil {
			cfg.Progress(res.Rows)
		}
		return nil
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read CSV after %d rows: %w", res.Rows+len(batch), err)
		}

		sale, coerced := mapper.Sale(record)
		res.Coerced += coerced
		batch = append(batch, sale)

		if len(batch) >= size {
			if err := flush(); err != nil {
				return res, err
			}
		}
	}

	if err := flush(); err != nil {
		return res, err
	}
	return res, nil
}

func (s *importService) finish(ctx context.Context, log *zap.Logger, res Result, err error) {
	status := eventservice.ImportSucceeded
	event := eventservice.SalesImportedEvent{
		RunID:      res.RunID,
		DataSource: res.Source,
		Rows:       res.Rows,
		Batches:    res.Batches,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
	}
	if err != nil {
		status = eventservice.ImportFailed
		event.Error = err.Error()
		log.Error("import failed", zap.Int("rows", res.Rows), zap.Int("batches", res.Batches), zap.Error(err))
	} else {
		log.Info("import finished",
			zap.Int("rows", res.Rows),
			zap.Int("batches", res.Batches),
			zap.Int("coerced_fields", res.Coerced),
			zap.Duration("took", res.FinishedAt.Sub(res.StartedAt)),
		)
	}
	event.Status = status

	importRuns.WithLabelValues(status).Inc()
	importCoerced.Add(float64(res.Coerced))
	importLatency.Observe(res.FinishedAt.Sub(res.StartedAt).Seconds())

	// a cancelled run still reports its outcome
	if perr := s.publisher.PublishImported(context.WithoutCancel(ctx), event); perr != nil {
		log.Warn("publish import event", zap.Error(perr))
	}
}
