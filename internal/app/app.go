// Package app wires storage, state stores, API clients and services into one
// client process with an explicit Open/Close lifecycle, and implements the
// workflows that pair a backend call with a store update.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/rxclient/internal/apiclient"
	"github.com/felixgeelhaar/rxclient/internal/config"
	"github.com/felixgeelhaar/rxclient/internal/service"
	"github.com/felixgeelhaar/rxclient/internal/state"
	"github.com/felixgeelhaar/rxclient/internal/storage"
	"github.com/felixgeelhaar/rxclient/internal/storage/local"
	"github.com/felixgeelhaar/rxclient/internal/storage/sqlite"
)

// sqliteFile is the database name used by the sqlite storage backend
const sqliteFile = "rx.db"

// Options are the process-specific collaborators of an App
type Options struct {
	// Navigator receives the login route when a backend rejects the session
	Navigator apiclient.Navigator
	Logger    *slog.Logger
	// Slots replaces the configured storage backend when set
	Slots      storage.Slots
	HTTPClient *http.Client
}

// App is an opened client
type App struct {
	Config   *config.LocalConfig
	Stores   *state.Stores
	Clients  *apiclient.Set
	Services *service.Services

	slots  storage.Slots
	closer io.Closer
	logger *slog.Logger
}

// Open opens slot storage, rehydrates the stores and builds the clients
func Open(cfg *config.LocalConfig, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	slots, closer := opts.Slots, io.Closer(nil)
	if slots == nil {
		var err error
		slots, closer, err = OpenSlots(cfg)
		if err != nil {
			return nil, err
		}
	}

	stores := state.Open(slots, logger)

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = apiclient.NewHTTPClient(cfg.API.Timeout())
	}

	clients, err := apiclient.NewSet(apiclient.SetConfig{
		Endpoints: apiclient.Endpoints{
			Auth:         cfg.API.Auth,
			Patient:      cfg.API.Patient,
			Prescription: cfg.API.Prescription,
			Catalog:      cfg.API.Catalog,
			Cart:         cfg.API.Cart,
			Order:        cfg.API.Order,
		},
		Slots:      slots,
		Session:    stores.Auth,
		Navigator:  opts.Navigator,
		HTTPClient: httpClient,
		Resilience: resilienceConfig(cfg.Resilience),
		Logger:     logger,
	})
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, fmt.Errorf("build clients: %w", err)
	}

	return &App{
		Config:   cfg,
		Stores:   stores,
		Clients:  clients,
		Services: service.New(clients),
		slots:    slots,
		closer:   closer,
		logger:   logger,
	}, nil
}

// Close releases the clients and the storage backend
func (a *App) Close() error {
	var errs []error
	if err := a.Clients.Close(); err != nil {
		errs = append(errs, err)
	}
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Slots returns the storage the stores persist to
func (a *App) Slots() storage.Slots {
	return a.slots
}

// OpenSlots opens the storage backend named in cfg. The returned closer is
// nil for backends that hold no resources.
func OpenSlots(cfg *config.LocalConfig) (storage.Slots, io.Closer, error) {
	if cfg.Storage.Backend == config.StorageMemory {
		return storage.NewMemory(), nil, nil
	}

	dir, err := cfg.StateDir()
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Storage.Backend {
	case config.StorageSQLite:
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, nil, fmt.Errorf("create state dir: %w", err)
		}
		store, err := sqlite.OpenSlotStore(filepath.Join(dir, sqliteFile))
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return store, store, nil
	case config.StorageFile, "":
		store, err := local.NewStore(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file storage: %w", err)
		}
		return store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func resilienceConfig(c config.ResilienceConfig) *apiclient.ResilienceConfig {
	if !c.Enabled {
		return nil
	}
	rc := apiclient.DefaultResilienceConfig()
	rc.EnableCircuitBreaker = c.CircuitBreaker
	rc.EnableRetry = c.Retry
	rc.EnableBulkhead = c.Bulkhead
	rc.EnableRateLimit = c.RateLimit
	if c.MaxAttempts > 0 {
		rc.MaxAttempts = c.MaxAttempts
	}
	if c.MaxConcurrent > 0 {
		rc.MaxConcurrent = c.MaxConcurrent
	}
	if c.RatePerSecond > 0 {
		rc.RatePerSecond = c.RatePerSecond
	}
	return &rc
}
