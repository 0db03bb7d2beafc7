package main

import (
	"fmt"

	"github.com/felixgeelhaar/rxclient/internal/config"
)

func cmdConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Println("rx Configuration")

	fmt.Println("\nAPI:")
	fmt.Printf("  auth:         %s\n", cfg.API.Auth)
	fmt.Printf("  patient:      %s\n", cfg.API.Patient)
	fmt.Printf("  prescription: %s\n", cfg.API.Prescription)
	fmt.Printf("  catalog:      %s\n", cfg.API.Catalog)
	fmt.Printf("  cart:         %s\n", cfg.API.Cart)
	fmt.Printf("  order:        %s\n", cfg.API.Order)
	fmt.Printf("  timeout:      %s\n", cfg.API.Timeout())

	fmt.Println("\nStorage:")
	fmt.Printf("  backend: %s\n", cfg.Storage.Backend)
	if dir, err := cfg.StateDir(); err == nil && cfg.Storage.Backend != config.StorageMemory {
		fmt.Printf("  dir:     %s\n", dir)
	}

	fmt.Println("\nResilience:")
	if cfg.Resilience.Enabled {
		r := cfg.Resilience
		fmt.Printf("  circuit_breaker=%t retry=%t(max %d) bulkhead=%t(max %d) rate_limit=%t(%d/s)\n",
			r.CircuitBreaker, r.Retry, r.MaxAttempts, r.Bulkhead, r.MaxConcurrent, r.RateLimit, r.RatePerSecond)
	} else {
		fmt.Println("  disabled")
	}

	fmt.Println("\nLogging:")
	fmt.Printf("  level: %s\n", cfg.Log.Level)

	fmt.Println("\nDev proxy:")
	fmt.Printf("  listen:  %s\n", cfg.Proxy.Listen)
	fmt.Printf("  metrics: %t\n", cfg.Proxy.Metrics)

	rxDir, _ := config.RxDir()
	fmt.Printf("\nConfig path: %s/config.yaml\n", rxDir)
	return nil
}
