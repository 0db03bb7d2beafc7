package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/felixgeelhaar/rxclient/internal/domain"
)

func fastResilience() *ResilienceConfig {
	return &ResilienceConfig{
		EnableRetry:  true,
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
	}
}

func newResilientClient(t *testing.T, url string, resp ...ResponseInterceptor) *Client {
	t.Helper()
	c, err := New(Config{
		Name:                 "catalog",
		BaseURL:              url,
		ResponseInterceptors: resp,
		Resilience:           fastResilience(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestResilience_RetriesGetOnUnavailable(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"id":"m1"}`))
	}))
	defer server.Close()

	c := newResilientClient(t, server.URL, StatusError())
	resp, err := c.Get(context.Background(), "/catalog/medicines/m1", nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	if n := hits.Load(); n != 3 {
		t.Errorf("hits = %d, want 3", n)
	}
}

func TestResilience_DoesNotRetryPost(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := newResilientClient(t, server.URL, StatusError())
	_, err := c.Post(context.Background(), "/orders", map[string]string{})
	if StatusCode(err) != http.StatusServiceUnavailable {
		t.Errorf("error = %v, want status 503", err)
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("hits = %d, want 1", n)
	}
}

func TestResilience_UnauthorizedNotRetried(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	session := &countingSession{}
	nav := &recordingNavigator{}
	c := newResilientClient(t, server.URL, Unauthorized(session, nav), StatusError())

	_, err := c.Get(context.Background(), "/cart", nil)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("hits = %d, want 1", n)
	}
	if session.logouts != 1 || len(nav.routes) != 1 {
		t.Errorf("logouts = %d, routes = %v; want one each", session.logouts, nav.routes)
	}
}

func TestResilience_ExhaustedRetriesReturnLastResponse(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusGatewayTimeout)
		w.Write([]byte(`{"message":"upstream timeout"}`))
	}))
	defer server.Close()

	var seen atomic.Int32
	c := newResilientClient(t, server.URL, func(*Response) error {
		seen.Add(1)
		return nil
	}, StatusError())

	_, err := c.Get(context.Background(), "/orders", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message != "upstream timeout" {
		t.Errorf("error = %v, want *Error with backend message", err)
	}
	if hits.Load() < 2 {
		t.Errorf("hits = %d, want retries", hits.Load())
	}
	if n := seen.Load(); n != 1 {
		t.Errorf("response interceptors ran %d times, want 1", n)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	tests := map[int]bool{
		http.StatusTooManyRequests:     true,
		http.StatusBadGateway:          true,
		http.StatusServiceUnavailable:  true,
		http.StatusGatewayTimeout:      true,
		http.StatusInternalServerError: false,
		http.StatusUnauthorized:        false,
		http.StatusNotFound:            false,
		http.StatusOK:                  false,
	}
	for code, want := range tests {
		if got := isRetryableStatus(code); got != want {
			t.Errorf("isRetryableStatus(%d) = %v, want %v", code, got, want)
		}
	}
}
