package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends accepted by StorageConfig.Backend
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// LocalConfig holds the client configuration stored in ~/.rx/config.yaml
type LocalConfig struct {
	API        APIConfig        `yaml:"api"`
	Storage    StorageConfig    `yaml:"storage"`
	Resilience ResilienceConfig `yaml:"resilience"`
	Log        LogConfig        `yaml:"log"`
	Proxy      ProxyConfig      `yaml:"proxy"`
}

// APIConfig holds the base URL of each backend
type APIConfig struct {
	Auth           string `yaml:"auth"`
	Patient        string `yaml:"patient"`
	Prescription   string `yaml:"prescription"`
	Catalog        string `yaml:"catalog"`
	Cart           string `yaml:"cart"`
	Order          string `yaml:"order"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the per-request timeout
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StorageConfig selects where the session and cart slots live
type StorageConfig struct {
	Backend string `yaml:"backend"`
	// Dir defaults to ~/.rx/state
	Dir string `yaml:"dir,omitempty"`
}

// ResilienceConfig controls the per-backend resilience wrapper
type ResilienceConfig struct {
	Enabled        bool `yaml:"enabled"`
	CircuitBreaker bool `yaml:"circuit_breaker"`
	Retry          bool `yaml:"retry"`
	MaxAttempts    int  `yaml:"max_attempts"`
	Bulkhead       bool `yaml:"bulkhead"`
	MaxConcurrent  int  `yaml:"max_concurrent"`
	RateLimit      bool `yaml:"rate_limit"`
	RatePerSecond  int  `yaml:"rate_per_second"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// ProxyConfig holds the development proxy settings
type ProxyConfig struct {
	Listen  string `yaml:"listen"`
	Metrics bool   `yaml:"metrics"`
}

// RxDir returns the path to ~/.rx
func RxDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".rx"), nil
}

// EnsureRxDir creates ~/.rx and its subdirectories if they don't exist
func EnsureRxDir() (string, error) {
	dir, err := RxDir()
	if err != nil {
		return "", err
	}

	for _, subdir := range []string{"", "logs", "state"} {
		path := filepath.Join(dir, subdir)
		if err := os.MkdirAll(path, 0700); err != nil {
			return "", fmt.Errorf("create dir %s: %w", path, err)
		}
	}

	return dir, nil
}

// DefaultLocalConfig returns the local development topology: every backend
// on its own port, the auth service at the root and the rest under /api.
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{
		API: APIConfig{
			Auth:           "http://localhost:8081",
			Patient:        "http://localhost:8082/api",
			Prescription:   "http://localhost:8083/api",
			Catalog:        "http://localhost:8084/api",
			Cart:           "http://localhost:8085/api",
			Order:          "http://localhost:8086/api",
			TimeoutSeconds: 30,
		},
		Storage: StorageConfig{
			Backend: StorageFile,
		},
		Resilience: ResilienceConfig{
			Enabled:        true,
			CircuitBreaker: true,
			Retry:          true,
			MaxAttempts:    3,
			Bulkhead:       true,
			MaxConcurrent:  8,
			RateLimit:      false,
			RatePerSecond:  20,
		},
		Log: LogConfig{
			Level: "info",
		},
		Proxy: ProxyConfig{
			Listen:  "127.0.0.1:3000",
			Metrics: true,
		},
	}
}

// Validate checks values that would otherwise fail late
func (c *LocalConfig) Validate() error {
	switch c.Storage.Backend {
	case StorageFile, StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (valid: file, sqlite, memory)", c.Storage.Backend)
	}

	for name, url := range map[string]string{
		"auth":         c.API.Auth,
		"patient":      c.API.Patient,
		"prescription": c.API.Prescription,
		"catalog":      c.API.Catalog,
		"cart":         c.API.Cart,
		"order":        c.API.Order,
	} {
		if url == "" {
			return fmt.Errorf("api.%s: base URL required", name)
		}
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// StateDir returns the directory holding the storage slots
func (c *LocalConfig) StateDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	dir, err := RxDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state"), nil
}

// LoadLocalConfig loads configuration from ~/.rx/config.yaml
func LoadLocalConfig() (*LocalConfig, error) {
	dir, err := RxDir()
	if err != nil {
		return nil, err
	}
	return loadFile(filepath.Join(dir, "config.yaml"))
}

func loadFile(path string) (*LocalConfig, error) {
	cfg := DefaultLocalConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveLocalConfig saves configuration to ~/.rx/config.yaml
func SaveLocalConfig(cfg *LocalConfig) error {
	dir, err := EnsureRxDir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
