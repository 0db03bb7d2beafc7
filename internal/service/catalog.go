package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/felixgeelhaar/rxclient/internal/apiclient"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

// CatalogService talks to the catalog backend. The catalog is publicly
// browsable, so these calls work without a session.
type CatalogService struct {
	client Requester
}

func NewCatalogService(client Requester) *CatalogService {
	return &CatalogService{client: client}
}

// ListMedicines returns medicines matching the optional filters
func (s *CatalogService) ListMedicines(ctx context.Context, params domain.MedicineSearchParams) ([]domain.Medicine, error) {
	meds, err := call[[]domain.Medicine](ctx, s.client, &apiclient.Request{
		Method: http.MethodGet,
		Path:   "/catalog/medicines",
		Query:  params.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	return meds, nil
}

// GetMedicine returns one medicine
func (s *CatalogService) GetMedicine(ctx context.Context, id string) (*domain.Medicine, error) {
	seg, err := idSegment("medicine", id)
	if err != nil {
		return nil, err
	}
	med, err := call[*domain.Medicine](ctx, s.client, &apiclient.Request{
		Method: http.MethodGet,
		Path:   "/catalog/medicines/" + seg,
	})
	if err != nil {
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	return med, nil
}

// SearchMedicines runs a free-text search
func (s *CatalogService) SearchMedicines(ctx context.Context, query string) ([]domain.Medicine, error) {
	meds, err := call[[]domain.Medicine](ctx, s.client, &apiclient.Request{
		Method: http.MethodGet,
		Path:   "/catalog/medicines/search",
		Query:  url.Values{"q": {query}},
	})
	if err != nil {
		return nil, fmt.Errorf("search medicines: %w", err)
	}
	return meds, nil
}
