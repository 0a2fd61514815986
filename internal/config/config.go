package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Load reads the environment (after .env) and, when APP_SECRET_ID is set,
// overlays the credentials stored in Secrets Manager.
func Load(ctx context.Context) (Config, error) {
	cfg := Config{
		Addr:            getEnv("ADDR", ":8080"),
		Env:             getEnv("APP_ENV", "production"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "*")),
		SalesMaxLimit:   getEnvInt("SALES_MAX_LIMIT", 0),
		AWSRegion:       getEnv("AWS_REGION", "us-east-2"),
		SecretID:        getEnv("APP_SECRET_ID", ""),
		DB: DBConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			URL:      getEnv("DATABASE_URL", ""),
			Path:     getEnv("DB_PATH", "sales.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "sales"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			LogLevel: getEnv("DB_LOG_LEVEL", "warn"),
		},
		MQ: MQConfig{
			Host:        getEnv("MQ_HOST", ""),
			Port:        getEnvInt("MQ_PORT", 5671),
			User:        getEnv("MQ_USER", ""),
			Password:    getEnv("MQ_PASSWORD", ""),
			VHost:       getEnv("MQ_VHOST", ""),
			TLS:         getEnvBool("MQ_TLS", true),
			ImportQueue: getEnv("MQ_IMPORT_QUEUE", "api-sales.import-requests"),
		},
		Import: ImportConfig{
			Source:       getEnv("CSV_URL", ""),
			BatchSize:    getEnvInt("IMPORT_BATCH_SIZE", 5000),
			OnStartup:    getEnvBool("IMPORT_ON_STARTUP", false),
			AdminEnabled: getEnvBool("ADMIN_IMPORT_ENABLED", false),
		},
	}

	if cfg.SecretID != "" {
		secret, err := LoadSecretManager(ctx, cfg.SecretID, cfg.AWSRegion)
		if err != nil {
			return Config{}, err
		}
		secret.apply(&cfg)
	}

	return cfg, nil
}

// LogSummary writes the effective, non-secret settings.
func (c Config) LogSummary(log *zap.Logger) {
	if dotenvErr != nil {
		log.Debug("no .env file loaded", zap.Error(dotenvErr))
	}
	log.Info("configuration loaded",
		zap.String("addr", c.Addr),
		zap.String("env", c.Env),
		zap.String("db_driver", c.DB.Driver),
		zap.Bool("secrets_manager", c.SecretID != ""),
		zap.Bool("mq_enabled", c.MQ.Enabled()),
		zap.Bool("import_on_startup", c.Import.OnStartup),
		zap.Bool("admin_import", c.Import.AdminEnabled),
		zap.Int("import_batch_size", c.Import.BatchSize),
		zap.Int("sales_max_limit", c.SalesMaxLimit),
	)
}

// functions for configs
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(k string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return d
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
