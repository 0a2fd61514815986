package config

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/stock-ahora/api-sales/internal/config_lib"
)

var dotenvErr error

func LoadSecretManager(ctx context.Context, secretID, region string) (*SecretApp, error) {
	if secretID == "" {
		return nil, fmt.Errorf("APP_SECRET_ID not set")
	}

	sm, err := config_lib.New(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("create secrets manager: %w", err)
	}

	raw, err := sm.GetSecretString(ctx, secretID, "AWSCURRENT")
	if err != nil {
		return nil, fmt.Errorf("get secret %s: %w", secretID, err)
	}

	return parseSecret(raw)
}

func parseSecret(raw string) (*SecretApp, error) {
	var cfg SecretApp
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("parse secret JSON: %w", err)
	}
	return &cfg, nil
}

func init() {
	dotenvErr = godotenv.Load()
}
