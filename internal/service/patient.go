package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/felixgeelhaar/rxclient/internal/apiclient"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

// PatientService talks to the patient backend
type PatientService struct {
	client Requester
}

func NewPatientService(client Requester) *PatientService {
	return &PatientService{client: client}
}

// GetProfile returns the caller's patient profile
func (s *PatientService) GetProfile(ctx context.Context) (*domain.Patient, error) {
	p, err := call[*domain.Patient](ctx, s.client, &apiclient.Request{Method: http.MethodGet, Path: "/patients/me"})
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// CreateProfile creates the caller's patient profile
func (s *PatientService) CreateProfile(ctx context.Context, req domain.CreatePatientRequest) (*domain.Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := call[*domain.Patient](ctx, s.client, &apiclient.Request{
		Method: http.MethodPost,
		Path:   "/patients",
		Body:   req,
	})
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// UpdateProfile changes the fields set in req
func (s *PatientService) UpdateProfile(ctx context.Context, req domain.UpdatePatientRequest) (*domain.Patient, error) {
	p, err := call[*domain.Patient](ctx, s.client, &apiclient.Request{
		Method: http.MethodPut,
		Path:   "/patients/me",
		Body:   req,
	})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}
