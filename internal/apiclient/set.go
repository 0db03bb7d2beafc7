package apiclient

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/felixgeelhaar/rxclient/internal/storage"
)

// Endpoints are the base URLs of the six backends
type Endpoints struct {
	Auth         string `yaml:"auth"`
	Patient      string `yaml:"patient"`
	Prescription string `yaml:"prescription"`
	Catalog      string `yaml:"catalog"`
	Cart         string `yaml:"cart"`
	Order        string `yaml:"order"`
}

// SetConfig wires a Set to its session storage and presentation layer
type SetConfig struct {
	Endpoints Endpoints
	// Slots is read by BearerAuth on every request
	Slots storage.Slots
	// Session is logged out when a backend answers 401
	Session    SessionClearer
	Navigator  Navigator
	HTTPClient *http.Client
	Resilience *ResilienceConfig
	Logger     *slog.Logger
}

// Set holds one configured client per backend
type Set struct {
	Auth         *Client
	Patient      *Client
	Prescription *Client
	Catalog      *Client
	Cart         *Client
	Order        *Client
}

// NewSet builds the six clients. The auth client sends the bearer token but
// no X-User-Id header; the other five send both. Every client handles 401.
func NewSet(cfg SetConfig) (*Set, error) {
	if cfg.Slots == nil {
		return nil, errors.New("client set: slots required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}

	build := func(name, baseURL string, withUserID bool) (*Client, error) {
		return New(Config{
			Name:       name,
			BaseURL:    baseURL,
			HTTPClient: httpClient,
			RequestInterceptors: []RequestInterceptor{
				RequestID(),
				BearerAuth(cfg.Slots, withUserID),
			},
			ResponseInterceptors: []ResponseInterceptor{
				Unauthorized(cfg.Session, cfg.Navigator),
				StatusError(),
			},
			Resilience: cfg.Resilience,
			Logger:     cfg.Logger,
		})
	}

	s := &Set{}
	specs := []struct {
		name       string
		baseURL    string
		withUserID bool
		dst        **Client
	}{
		{"auth", cfg.Endpoints.Auth, false, &s.Auth},
		{"patient", cfg.Endpoints.Patient, true, &s.Patient},
		{"prescription", cfg.Endpoints.Prescription, true, &s.Prescription},
		{"catalog", cfg.Endpoints.Catalog, true, &s.Catalog},
		{"cart", cfg.Endpoints.Cart, true, &s.Cart},
		{"order", cfg.Endpoints.Order, true, &s.Order},
	}

	for _, sp := range specs {
		c, err := build(sp.name, sp.baseURL, sp.withUserID)
		if err != nil {
			return nil, fmt.Errorf("build %s client: %w", sp.name, err)
		}
		*sp.dst = c
	}
	return s, nil
}

// All returns the clients in a fixed order
func (s *Set) All() []*Client {
	return []*Client{s.Auth, s.Patient, s.Prescription, s.Catalog, s.Cart, s.Order}
}

// Close releases per-client resources
func (s *Set) Close() error {
	var errs []error
	for _, c := range s.All() {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
