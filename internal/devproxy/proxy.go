// Package devproxy serves the pharmacy backends behind one origin, mapping
// a path prefix per backend onto that backend's base URL.
package devproxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/felixgeelhaar/rxclient/internal/config"
)

// Route maps a path prefix onto a backend base URL
type Route struct {
	Prefix string
	Target string
}

// Routes returns the prefix table for the configured backends. The prefix
// is stripped and the remainder joined onto the target path.
func Routes(api config.APIConfig) []Route {
	return []Route{
		{Prefix: "/api", Target: api.Auth},
		{Prefix: "/patient-api", Target: api.Patient},
		{Prefix: "/prescription-api", Target: api.Prescription},
		{Prefix: "/catalog-api", Target: api.Catalog},
		{Prefix: "/cart-api", Target: api.Cart},
		{Prefix: "/order-api", Target: api.Order},
	}
}

// ServerConfig holds configuration for creating a proxy server
type ServerConfig struct {
	Listen  string
	Routes  []Route
	Metrics bool
	// Transport overrides the upstream round tripper (for testing)
	Transport http.RoundTripper
}

// Server is the development reverse proxy
type Server struct {
	router  chi.Router
	server  *http.Server
	routes  []Route
	metrics *metrics
}

// NewServer builds the router and one reverse proxy per route
func NewServer(cfg ServerConfig) (*Server, error) {
	if len(cfg.Routes) == 0 {
		return nil, errors.New("no routes configured")
	}

	s := &Server{
		router: chi.NewRouter(),
		routes: cfg.Routes,
	}
	if cfg.Metrics {
		s.metrics = newMetrics()
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(correlationIDMiddleware)
	s.router.Use(loggingMiddleware)
	if s.metrics != nil {
		s.router.Use(s.metrics.instrument)
		s.router.Method(http.MethodGet, "/metrics", s.metrics.handler())
	}

	s.router.Get("/healthz", s.handleHealth)

	for _, rt := range cfg.Routes {
		proxy, err := newReverseProxy(rt, cfg.Transport)
		if err != nil {
			return nil, err
		}
		s.router.Mount(rt.Prefix, http.StripPrefix(rt.Prefix, proxy))
	}

	s.server = &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

func newReverseProxy(rt Route, transport http.RoundTripper) (*httputil.ReverseProxy, error) {
	if !strings.HasPrefix(rt.Prefix, "/") || strings.HasSuffix(rt.Prefix, "/") {
		return nil, fmt.Errorf("route prefix %q: must start and not end with /", rt.Prefix)
	}
	target, err := url.Parse(rt.Target)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("route %s: invalid target %q", rt.Prefix, rt.Target)
	}

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		Transport: transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			slog.Error("upstream request failed",
				"correlation_id", GetCorrelationID(r.Context()),
				"route", rt.Prefix,
				"target", rt.Target,
				"error", err,
			)
			writeJSON(w, http.StatusBadGateway, map[string]string{
				"message": "upstream unavailable",
			})
		},
	}, nil
}

// Handler returns the proxy's root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	for _, rt := range s.routes {
		slog.Info("proxy route", "prefix", rt.Prefix, "target", rt.Target)
	}
	slog.Info("starting rx dev proxy", "addr", s.server.Addr, "metrics", s.metrics != nil)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down dev proxy...")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"routes":    len(s.routes),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
