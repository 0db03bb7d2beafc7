package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFanout(t *testing.T) {
	var a, b bytes.Buffer
	h := Fanout{
		slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}
	logger := slog.New(h).With("component", "test").WithGroup("req")

	logger.Debug("quiet", "id", 1)
	logger.Warn("loud", "id", 2)

	if !strings.Contains(a.String(), "quiet") || !strings.Contains(a.String(), "loud") {
		t.Errorf("json handler output = %q", a.String())
	}
	if strings.Contains(b.String(), "quiet") {
		t.Errorf("text handler logged below its level: %q", b.String())
	}
	if !strings.Contains(b.String(), "component=test") || !strings.Contains(b.String(), "req.id=2") {
		t.Errorf("text handler output = %q", b.String())
	}
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Enabled(debug) = false, want true")
	}
	if h.Enabled(context.Background(), slog.LevelDebug-4) {
		t.Error("Enabled(below debug) = true, want false")
	}
}

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0700); err != nil {
		t.Fatal(err)
	}
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	f, err := Setup(dir, "rx", slog.LevelInfo, false)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	slog.Debug("dropped")
	slog.Info("hello", "k", "v")
	f.Close()

	data, err := os.ReadFile(filepath.Join(dir, "logs", "rx.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) || strings.Contains(string(data), "dropped") {
		t.Errorf("log file = %q", data)
	}
}

func TestSetup_MissingDir(t *testing.T) {
	if _, err := Setup(filepath.Join(t.TempDir(), "nope"), "rx", slog.LevelInfo, false); err == nil {
		t.Error("Setup() expected error for missing logs dir")
	}
}
