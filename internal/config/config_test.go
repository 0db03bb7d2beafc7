package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvCatalogURL, "http://localhost:3000/catalog-api")
	t.Setenv(EnvStorage, "SQLite")
	t.Setenv(EnvStateDir, "/tmp/rx-state")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvTimeout, "5")

	cfg := DefaultLocalConfig()
	ApplyEnv(cfg)

	if cfg.API.Catalog != "http://localhost:3000/catalog-api" {
		t.Errorf("API.Catalog = %q", cfg.API.Catalog)
	}
	if cfg.API.Cart != "http://localhost:8085/api" {
		t.Errorf("unset variables should keep the file value, API.Cart = %q", cfg.API.Cart)
	}
	if cfg.Storage.Backend != StorageSQLite {
		t.Errorf("Storage.Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Storage.Dir != "/tmp/rx-state" {
		t.Errorf("Storage.Dir = %q", cfg.Storage.Dir)
	}
	if cfg.Log.Level != "debug" || cfg.API.TimeoutSeconds != 5 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestApplyEnv_InvalidIntKeepsDefault(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")
	cfg := DefaultLocalConfig()
	ApplyEnv(cfg)
	if cfg.API.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.API.TimeoutSeconds)
	}
}

func TestLoad_Dotenv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	envFile := filepath.Join(t.TempDir(), ".env")
	content := EnvOrderURL + "=http://orders.test/api\n" + EnvStorage + "=memory\n"
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvOrderURL, "")
	t.Setenv(EnvStorage, "")
	os.Unsetenv(EnvOrderURL)
	os.Unsetenv(EnvStorage)

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Order != "http://orders.test/api" {
		t.Errorf("API.Order = %q", cfg.API.Order)
	}
	if cfg.Storage.Backend != StorageMemory {
		t.Errorf("Storage.Backend = %q", cfg.Storage.Backend)
	}
}

func TestLoad_EnvironmentBeatsDotenv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvCartURL, "http://from-env/api")

	envFile := filepath.Join(t.TempDir(), ".env")
	os.WriteFile(envFile, []byte(EnvCartURL+"=http://from-dotenv/api\n"), 0600)

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Cart != "http://from-env/api" {
		t.Errorf("API.Cart = %q, want environment value", cfg.API.Cart)
	}
}

func TestLoad_MissingDotenv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("Load() with missing .env error = %v", err)
	}
}

func TestLoad_InvalidStorage(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvStorage, "etcd")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Error("Load() should reject unknown storage backend")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}
