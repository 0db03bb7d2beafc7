package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/felixgeelhaar/rxclient/internal/apiclient"
	"github.com/felixgeelhaar/rxclient/internal/app"
	"github.com/felixgeelhaar/rxclient/internal/config"
	"github.com/felixgeelhaar/rxclient/internal/domain"
	"github.com/felixgeelhaar/rxclient/internal/logging"
)

// reloginNavigator is the CLI's answer to a rejected session: there is no
// login screen, so it tells the user how to get one
type reloginNavigator struct {
	out io.Writer
}

func (n reloginNavigator) Navigate(route string) {
	if route == apiclient.LoginRoute {
		fmt.Fprintln(n.out, "Session expired or revoked. Run 'rx login <email>' to sign in again.")
	}
}

// openApp loads config, sets up logging and opens the client. Logs go to
// the log file only, except in debug mode where they are also mirrored to
// stderr.
func openApp() (*app.App, func(), error) {
	rxDir, err := config.EnsureRxDir()
	if err != nil {
		return nil, nil, fmt.Errorf("ensure rx dir: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logFile, err := logging.Setup(rxDir, "rx", level, level == slog.LevelDebug)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logging: %w", err)
	}

	a, err := app.Open(cfg, app.Options{
		Navigator: reloginNavigator{out: os.Stderr},
		Logger:    slog.Default(),
	})
	if err != nil {
		logFile.Close()
		return nil, nil, fmt.Errorf("open client: %w", err)
	}

	cleanup := func() {
		if err := a.Close(); err != nil {
			slog.Warn("close client", "error", err)
		}
		logFile.Close()
	}
	return a, cleanup, nil
}

// withApp runs fn against an opened client with a context cancelled on
// SIGINT or SIGTERM
func withApp(fn func(ctx context.Context, a *app.App) error) error {
	a, cleanup, err := openApp()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return fn(ctx, a)
}

// requirePatient wraps RequireRole with a CLI hint
func requirePatient(a *app.App) error {
	err := a.RequireRole(domain.RolePatient)
	if errors.Is(err, domain.ErrUnauthorized) {
		return fmt.Errorf("not signed in (run 'rx login <email>' first)")
	}
	return err
}

var stdin = bufio.NewReader(os.Stdin)

// prompt prints label and reads one trimmed line from stdin
func prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.TrimSpace(label), ":"), err)
	}
	return strings.TrimSpace(line), nil
}

// password reads RX_PASSWORD or prompts for it
func password() (string, error) {
	if p := os.Getenv("RX_PASSWORD"); p != "" {
		return p, nil
	}
	return prompt("Password: ")
}
