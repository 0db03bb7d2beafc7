package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/rxclient/internal/apiclient"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

// PrescriptionService talks to the prescription backend
type PrescriptionService struct {
	client Requester
}

func NewPrescriptionService(client Requester) *PrescriptionService {
	return &PrescriptionService{client: client}
}

// Upload sends a prescription file as the single "file" form field
func (s *PrescriptionService) Upload(ctx context.Context, filename string, r io.Reader) (*domain.Prescription, error) {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: file name required", domain.ErrInvalidInput)
	}

	resp, err := s.client.PostMultipart(ctx, "/prescriptions/upload", "file", name, r)
	if err != nil {
		return nil, fmt.Errorf("upload prescription: %w", err)
	}
	p, err := apiclient.Unwrap[*domain.Prescription](resp)
	if err != nil {
		return nil, fmt.Errorf("upload prescription: %w", err)
	}
	return p, nil
}

// List returns the caller's prescriptions
func (s *PrescriptionService) List(ctx context.Context) ([]domain.Prescription, error) {
	list, err := call[[]domain.Prescription](ctx, s.client, &apiclient.Request{Method: http.MethodGet, Path: "/prescriptions"})
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	return list, nil
}

// Get returns one prescription
func (s *PrescriptionService) Get(ctx context.Context, id string) (*domain.Prescription, error) {
	seg, err := idSegment("prescription", id)
	if err != nil {
		return nil, err
	}
	p, err := call[*domain.Prescription](ctx, s.client, &apiclient.Request{
		Method: http.MethodGet,
		Path:   "/prescriptions/" + seg,
	})
	if err != nil {
		return nil, fmt.Errorf("get prescription: %w", err)
	}
	return p, nil
}

// Delete removes a prescription
func (s *PrescriptionService) Delete(ctx context.Context, id string) error {
	seg, err := idSegment("prescription", id)
	if err != nil {
		return err
	}
	if _, err := s.client.Do(ctx, &apiclient.Request{Method: http.MethodDelete, Path: "/prescriptions/" + seg}); err != nil {
		return fmt.Errorf("delete prescription: %w", err)
	}
	return nil
}

// StreamFile fetches a stored prescription file. The file URL travels in
// the JSON body so it is never re-encoded as a query parameter. The bytes
// are returned as-is, without envelope unwrapping.
func (s *PrescriptionService) StreamFile(ctx context.Context, fileURL string) ([]byte, error) {
	if strings.TrimSpace(fileURL) == "" {
		return nil, fmt.Errorf("%w: file url required", domain.ErrInvalidInput)
	}
	resp, err := s.client.Do(ctx, &apiclient.Request{
		Method: http.MethodPost,
		Path:   "/prescriptions/file",
		Body:   map[string]string{"url": fileURL},
		Binary: true,
	})
	if err != nil {
		return nil, fmt.Errorf("stream prescription file: %w", err)
	}
	return resp.Body, nil
}
