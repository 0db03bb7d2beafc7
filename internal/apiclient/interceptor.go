package apiclient

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/rxclient/internal/state"
	"github.com/felixgeelhaar/rxclient/internal/storage"
	"github.com/felixgeelhaar/rxclient/internal/token"
)

const (
	// UserIDHeader carries the caller's user id to the domain backends
	UserIDHeader = "X-User-Id"
	// RequestIDHeader correlates a request across client and backend logs
	RequestIDHeader = "X-Request-ID"
	// LoginRoute is where an expired session is sent
	LoginRoute = "/login"
)

// BearerAuth attaches the persisted session to each request. The auth slot
// is read fresh every time, so a login or logout in another client of the
// same store is picked up without restarting. An empty or unreadable slot
// lets the request proceed unauthenticated.
func BearerAuth(slots storage.Slots, withUserID bool) RequestInterceptor {
	return func(r *http.Request) error {
		slot, err := slots.Get(state.AuthSlot)
		if err != nil {
			return nil
		}

		tok := token.TokenFromSlot(slot)
		if tok == "" {
			return nil
		}
		r.Header.Set("Authorization", "Bearer "+tok)

		if withUserID {
			if id := token.UserID(tok); id != "" {
				r.Header.Set(UserIDHeader, id)
			}
		}
		return nil
	}
}

// RequestID sets X-Request-ID unless the caller already chose one
func RequestID() RequestInterceptor {
	return func(r *http.Request) error {
		if r.Header.Get(RequestIDHeader) == "" {
			r.Header.Set(RequestIDHeader, uuid.New().String())
		}
		return nil
	}
}

// SessionClearer is the part of the auth store the 401 handler needs
type SessionClearer interface {
	Logout()
}

// Unauthorized ends the local session when a backend rejects the token:
// the session is cleared and persisted, the navigator is sent to the login
// route once, and the caller still receives the failure.
func Unauthorized(session SessionClearer, nav Navigator) ResponseInterceptor {
	return func(resp *Response) error {
		if resp.StatusCode != http.StatusUnauthorized {
			return nil
		}

		slog.Warn("session rejected by backend, logging out",
			"client", resp.Client,
			"method", resp.Method,
			"path", resp.Path)

		if session != nil {
			session.Logout()
		}
		if nav != nil {
			nav.Navigate(LoginRoute)
		}
		return newError(resp)
	}
}

// StatusError turns any status >= 400 into an *Error
func StatusError() ResponseInterceptor {
	return func(resp *Response) error {
		if resp.StatusCode >= http.StatusBadRequest {
			return newError(resp)
		}
		return nil
	}
}
