// Package config loads client settings from ~/.rx/config.yaml, an optional
// .env file and RX_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file
const (
	EnvAuthURL         = "RX_AUTH_API_URL"
	EnvPatientURL      = "RX_PATIENT_API_URL"
	EnvPrescriptionURL = "RX_PRESCRIPTION_API_URL"
	EnvCatalogURL      = "RX_CATALOG_API_URL"
	EnvCartURL         = "RX_CART_API_URL"
	EnvOrderURL        = "RX_ORDER_API_URL"
	EnvStorage         = "RX_STORAGE"
	EnvStateDir        = "RX_STATE_DIR"
	EnvLogLevel        = "RX_LOG_LEVEL"
	EnvTimeout         = "RX_TIMEOUT_SECONDS"
	EnvProxyListen     = "RX_PROXY_LISTEN"
)

// Load reads the config file, then .env files (the working directory's
// .env when none are given), then applies environment overrides. Missing
// files are not an error. Variables already set in the environment win
// over .env entries.
func Load(envFiles ...string) (*LocalConfig, error) {
	cfg, err := LoadLocalConfig()
	if err != nil {
		return nil, err
	}

	if err := loadDotenv(envFiles...); err != nil {
		return nil, err
	}

	ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with any RX_* variables that are set
func ApplyEnv(cfg *LocalConfig) {
	cfg.API.Auth = getEnv(EnvAuthURL, cfg.API.Auth)
	cfg.API.Patient = getEnv(EnvPatientURL, cfg.API.Patient)
	cfg.API.Prescription = getEnv(EnvPrescriptionURL, cfg.API.Prescription)
	cfg.API.Catalog = getEnv(EnvCatalogURL, cfg.API.Catalog)
	cfg.API.Cart = getEnv(EnvCartURL, cfg.API.Cart)
	cfg.API.Order = getEnv(EnvOrderURL, cfg.API.Order)
	cfg.API.TimeoutSeconds = getEnvInt(EnvTimeout, cfg.API.TimeoutSeconds)
	cfg.Storage.Backend = strings.ToLower(getEnv(EnvStorage, cfg.Storage.Backend))
	cfg.Storage.Dir = getEnv(EnvStateDir, cfg.Storage.Dir)
	cfg.Log.Level = getEnv(EnvLogLevel, cfg.Log.Level)
	cfg.Proxy.Listen = getEnv(EnvProxyListen, cfg.Proxy.Listen)
}

// ParseLevel maps a config level name to a slog level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
