package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/felixgeelhaar/rxclient/internal/mcp"
)

// cmdMCP serves the client as MCP tools on stdio. Stdout carries the
// protocol, so logs only go to the log file.
func cmdMCP() error {
	a, cleanup, err := openApp()
	if err != nil {
		return err
	}
	defer cleanup()

	mcpSrv := mcpserver.NewServer(mcpserver.Config{App: a, Version: Version})

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := mcpSrv.ServeStdio(ctx); err != nil {
		return fmt.Errorf("serve mcp: %w", err)
	}
	return nil
}
