// Package service exposes one typed method per backend operation. Each
// method builds the request, sends it through the backend's API client and
// unwraps the envelope-or-raw response body.
package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/felixgeelhaar/rxclient/internal/apiclient"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

// Requester sends requests to one backend. *apiclient.Client satisfies it.
type Requester interface {
	Do(ctx context.Context, req *apiclient.Request) (*apiclient.Response, error)
	PostMultipart(ctx context.Context, path, field, filename string, r io.Reader) (*apiclient.Response, error)
}

// Services bundles the per-backend services
type Services struct {
	Auth         *AuthService
	Patient      *PatientService
	Prescription *PrescriptionService
	Catalog      *CatalogService
	Cart         *CartService
	Order        *OrderService
}

// New binds every service to its client in set
func New(set *apiclient.Set) *Services {
	return &Services{
		Auth:         NewAuthService(set.Auth),
		Patient:      NewPatientService(set.Patient),
		Prescription: NewPrescriptionService(set.Prescription),
		Catalog:      NewCatalogService(set.Catalog),
		Cart:         NewCartService(set.Cart),
		Order:        NewOrderService(set.Order),
	}
}

// call sends req and unwraps the result into T
func call[T any](ctx context.Context, r Requester, req *apiclient.Request) (T, error) {
	resp, err := r.Do(ctx, req)
	if err != nil {
		var zero T
		return zero, err
	}
	return apiclient.Unwrap[T](resp)
}

// idSegment validates and escapes an id used as a path segment
func idSegment(kind, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%w: empty %s id", domain.ErrInvalidInput, kind)
	}
	return url.PathEscape(id), nil
}
