package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felixgeelhaar/rxclient/internal/config"
	"github.com/felixgeelhaar/rxclient/internal/devproxy"
	"github.com/felixgeelhaar/rxclient/internal/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("proxy error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	rxDir, err := config.EnsureRxDir()
	if err != nil {
		return fmt.Errorf("ensure rx dir: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logFile, err := logging.Setup(rxDir, "rxproxy", level, true)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer logFile.Close()

	server, err := devproxy.NewServer(devproxy.ServerConfig{
		Listen:  cfg.Proxy.Listen,
		Routes:  devproxy.Routes(cfg.API),
		Metrics: cfg.Proxy.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		slog.Info("received signal, shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		close(done)
	}()

	if err := server.Start(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	slog.Info("proxy stopped")
	return nil
}
