package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stock-ahora/api-sales/internal/app"
	"github.com/stock-ahora/api-sales/internal/config"
	"go.uber.org/zap"
)

var (
	source    string
	batchSize int
	dbURL     string
	sqlite    string
)

var rootCmd = &cobra.Command{
	Use:          "salesctl",
	Short:        "Operate the sales database",
	Long:         `salesctl creates the sales table and loads the retail sales CSV into it. Settings come from the same environment as the API server; flags override them.`,
	SilenceUsage: true,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the sales CSV synchronously",
	RunE:  runImport,
}

var createTablesCmd = &cobra.Command{
	Use:   "create-tables",
	Short: "Create the sales table if it does not exist",
	RunE:  runCreateTables,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&sqlite, "sqlite", "", "SQLite database file path (overrides DB_DRIVER/DB_PATH)")

	importCmd.Flags().StringVarP(&source, "source", "s", "", "CSV source: http(s) URL, s3://bucket/key or path (overrides CSV_URL)")
	importCmd.Flags().IntVarP(&batchSize, "batch-size", "b", 0, "rows per committed batch (overrides IMPORT_BATCH_SIZE)")

	rootCmd.AddCommand(importCmd, createTablesCmd)
}

func setup(ctx context.Context) (*app.App, *zap.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if dbURL != "" {
		cfg.DB.Driver = config.DriverPostgres
		cfg.DB.URL = dbURL
	}
	if sqlite != "" {
		cfg.DB.Driver = config.DriverSQLite
		cfg.DB.Path = sqlite
	}
	if source != "" {
		cfg.Import.Source = source
	}
	if batchSize > 0 {
		cfg.Import.BatchSize = batchSize
	}

	logger, err := config.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return a, logger, nil
}

func runCreateTables(cmd *cobra.Command, _ []string) error {
	a, logger, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	defer func() { _ = logger.Sync() }()

	if err := a.Repo.EnsureSchema(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "sales table ready")
	return nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, logger, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	defer func() { _ = logger.Sync() }()

	if err := a.Repo.EnsureSchema(ctx); err != nil {
		return err
	}

	cfg := a.Import
	cfg.Progress = func(n int) {
		fmt.Fprintf(cmd.OutOrStdout(), "inserted rows so far: %d\n", n)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "using CSV source: %s\n", cfg.Source)
	res, err := a.Importer.Run(ctx, cfg)
	if err != nil {
		return fmt.Errorf("import after %d rows: %w", res.Rows, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "import finished, total rows inserted: %d (%d batches)\n", res.Rows, res.Batches)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
