package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/felixgeelhaar/rxclient/internal/apiclient"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

// OrderService talks to the order backend
type OrderService struct {
	client Requester
}

func NewOrderService(client Requester) *OrderService {
	return &OrderService{client: client}
}

// CreateOrder places an order from the current cart
func (s *OrderService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	if strings.TrimSpace(req.ShippingAddress) == "" {
		return nil, fmt.Errorf("%w: shipping address required", domain.ErrInvalidInput)
	}
	order, err := call[*domain.Order](ctx, s.client, &apiclient.Request{
		Method: http.MethodPost,
		Path:   "/orders",
		Body:   req,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// ListOrders returns the caller's orders
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := call[[]domain.Order](ctx, s.client, &apiclient.Request{Method: http.MethodGet, Path: "/orders"})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns one order
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	seg, err := idSegment("order", id)
	if err != nil {
		return nil, err
	}
	order, err := call[*domain.Order](ctx, s.client, &apiclient.Request{
		Method: http.MethodGet,
		Path:   "/orders/" + seg,
	})
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}
