package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/felixgeelhaar/rxclient/internal/apiclient"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

// AuthService talks to the auth backend
type AuthService struct {
	client Requester
}

func NewAuthService(client Requester) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges credentials for a user and bearer token
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	resp, err := call[domain.LoginResponse](ctx, s.client, &apiclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   req,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &resp, nil
}

// Register creates an account. Backends that sign the new user in
// immediately return a token; others return only the user.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	resp, err := call[domain.LoginResponse](ctx, s.client, &apiclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   req,
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &resp, nil
}
