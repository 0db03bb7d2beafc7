package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/felixgeelhaar/rxclient/internal/apiclient"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

// CartService talks to the cart backend. Every mutation returns the full
// server-computed cart snapshot.
type CartService struct {
	client Requester
}

func NewCartService(client Requester) *CartService {
	return &CartService{client: client}
}

// GetCart returns the caller's cart
func (s *CartService) GetCart(ctx context.Context) (*domain.Cart, error) {
	cart, err := call[*domain.Cart](ctx, s.client, &apiclient.Request{Method: http.MethodGet, Path: "/cart"})
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// AddToCart adds a medicine line
func (s *CartService) AddToCart(ctx context.Context, req domain.AddToCartRequest) (*domain.Cart, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	cart, err := call[*domain.Cart](ctx, s.client, &apiclient.Request{
		Method: http.MethodPost,
		Path:   "/cart/items",
		Body:   req,
	})
	if err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	return cart, nil
}

// UpdateCartItem changes the quantity of a line
func (s *CartService) UpdateCartItem(ctx context.Context, itemID string, req domain.UpdateCartItemRequest) (*domain.Cart, error) {
	seg, err := idSegment("cart item", itemID)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	cart, err := call[*domain.Cart](ctx, s.client, &apiclient.Request{
		Method: http.MethodPut,
		Path:   "/cart/items/" + seg,
		Body:   req,
	})
	if err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	return cart, nil
}

// RemoveFromCart deletes a line
func (s *CartService) RemoveFromCart(ctx context.Context, itemID string) (*domain.Cart, error) {
	seg, err := idSegment("cart item", itemID)
	if err != nil {
		return nil, err
	}
	cart, err := call[*domain.Cart](ctx, s.client, &apiclient.Request{
		Method: http.MethodDelete,
		Path:   "/cart/items/" + seg,
	})
	if err != nil {
		return nil, fmt.Errorf("remove from cart: %w", err)
	}
	return cart, nil
}

// ClearCart empties the cart
func (s *CartService) ClearCart(ctx context.Context) error {
	if _, err := s.client.Do(ctx, &apiclient.Request{Method: http.MethodDelete, Path: "/cart"}); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
