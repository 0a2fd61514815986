package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/stock-ahora/api-sales/internal/app"
	"github.com/stock-ahora/api-sales/internal/config"
	httpserver "github.com/stock-ahora/api-sales/internal/http"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := config.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	cfg.LogSummary(logger)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
	defer a.Close()

	if err := a.Repo.EnsureSchema(ctx); err != nil {
		logger.Fatal("ensure schema", zap.Error(err))
	}

	if cfg.Import.AdminEnabled {
		if err := a.StartImportListener(ctx, cfg.MQ.ImportQueue, logger); err != nil {
			logger.Fatal("start import listener", zap.Error(err))
		}
	}

	if cfg.Import.OnStartup {
		a.Importer.Bootstrap(ctx, a.Import)
	}

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: httpserver.NewRouter(httpserver.Deps{
			Sales:       a.Sales,
			Importer:    a.Importer,
			Import:      a.Import,
			AdminImport: cfg.Import.AdminEnabled,
			CORSOrigins: cfg.CORSOrigins,
			Log:         logger,
		}),
	}

	go func() {
		logger.Info("API listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen and serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", zap.Error(err))
	}
	if err := a.Importer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("import still running at shutdown", zap.Error(err))
	}
}
