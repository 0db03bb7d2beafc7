package state

import (
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/rxclient/internal/domain"
	"github.com/felixgeelhaar/rxclient/internal/storage"
)

// AuthState is the persisted form of the session. Both fields are null when
// logged out.
type AuthState struct {
	User  *domain.User `json:"user"`
	Token *string      `json:"token"`
}

// AuthStore holds the current user and bearer token
type AuthStore struct {
	mu      sync.RWMutex
	session domain.Session
	persist persisted[AuthState]
}

// NewAuthStore creates the store and rehydrates it from the auth slot.
// A slot holding only half a session is treated as logged out.
func NewAuthStore(slots storage.Slots, logger *slog.Logger) *AuthStore {
	if logger == nil {
		logger = slog.Default()
	}

	s := &AuthStore{
		persist: persisted[AuthState]{slots: slots, key: AuthSlot, logger: logger},
	}

	st := s.persist.load(AuthState{})
	if st.User != nil && st.Token != nil && *st.Token != "" {
		s.session = domain.Session{User: st.User, Token: *st.Token}
	}

	return s
}

// Login stores the user and token together
func (s *AuthStore) Login(user domain.User, token string) error {
	if token == "" || user.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = domain.Session{User: &user, Token: token}
	s.persist.save(AuthState{User: &user, Token: &token})
	return nil
}

// Logout clears both user and token
func (s *AuthStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = domain.Session{}
	s.persist.save(AuthState{})
}

// IsAuthenticated reports whether a user and token are both present
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAuthenticated()
}

// User returns a copy of the current user, or nil when logged out
func (s *AuthStore) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session.User == nil {
		return nil
	}
	u := *s.session.User
	return &u
}

// Token returns the bearer token, or "" when logged out
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// Session returns a snapshot of the current session
func (s *AuthStore) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := s.session
	if sess.User != nil {
		u := *sess.User
		sess.User = &u
	}
	return sess
}
