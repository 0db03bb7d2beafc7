// Package logging configures the process-wide slog logger for the rx
// binaries.
package logging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup sends JSON logs to <rxDir>/logs/<name>.log and, when stderr is
// set, text logs to stderr at the same level. The caller closes the
// returned file.
func Setup(rxDir, name string, level slog.Level, stderr bool) (*os.File, error) {
	logPath := filepath.Join(rxDir, "logs", name+".log")

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	handlers := Fanout{slog.NewJSONHandler(logFile, opts)}
	if stderr {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, opts))
	}
	slog.SetDefault(slog.New(handlers))

	return logFile, nil
}

// Fanout sends each record to every handler that accepts its level
type Fanout []slog.Handler

func (f Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f Fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(Fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f Fanout) WithGroup(name string) slog.Handler {
	out := make(Fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
