package apiclient

import (
	"encoding/json"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/felixgeelhaar/rxclient/internal/state"
	"github.com/felixgeelhaar/rxclient/internal/storage"
)

func signToken(t *testing.T, userID string) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"sub":    userID + "@example.com",
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

// sessionSlots returns slots holding a persisted session for userID
func sessionSlots(t *testing.T, userID string) (*storage.Memory, string) {
	t.Helper()
	tok := signToken(t, userID)
	data, err := json.Marshal(map[string]any{
		"state": map[string]any{
			"user":  map[string]any{"id": userID, "email": userID + "@example.com", "role": "PATIENT"},
			"token": tok,
		},
		"version": 0,
	})
	if err != nil {
		t.Fatalf("marshal slot: %v", err)
	}
	slots := storage.NewMemory()
	if err := slots.Set(state.AuthSlot, data); err != nil {
		t.Fatalf("set slot: %v", err)
	}
	return slots, tok
}

type countingSession struct {
	logouts int
}

func (s *countingSession) Logout() { s.logouts++ }

type recordingNavigator struct {
	routes []string
}

func (n *recordingNavigator) Navigate(route string) { n.routes = append(n.routes, route) }
