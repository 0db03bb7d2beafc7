package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/felixgeelhaar/rxclient/internal/domain"
)

// fakeBackend serves the auth, cart, order and patient endpoints from one
// server. Every path is mounted at the root, matching an all-in-one gateway.
type fakeBackend struct {
	t      *testing.T
	server *httptest.Server

	mu          sync.Mutex
	role        domain.Role
	cart        *domain.Cart
	userIDs     []string
	expireToken bool
	cartFails   bool
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{t: t, role: domain.RolePatient, cart: &domain.Cart{ID: "c1", PatientID: "U"}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", b.login)
	mux.HandleFunc("GET /cart", b.getCart)
	mux.HandleFunc("DELETE /cart", b.clearCart)
	mux.HandleFunc("POST /cart/items", b.addItem)
	mux.HandleFunc("DELETE /cart/items/{id}", b.removeItem)
	mux.HandleFunc("POST /orders", b.createOrder)
	mux.HandleFunc("GET /patients/me", b.profile)

	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.userIDs = append(b.userIDs, r.Header.Get("X-User-Id"))
		expired := b.expireToken && r.Header.Get("Authorization") != ""
		b.mu.Unlock()

		if expired {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	json.NewDecoder(r.Body).Decode(&req)
	if req.Password != "secret" {
		b.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
		return
	}

	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "U",
		"sub":    req.Email,
		"role":   string(b.role),
	}).SignedString([]byte("backend-secret"))

	b.mu.Lock()
	role := b.role
	b.mu.Unlock()

	b.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": domain.LoginResponse{
			User:  domain.User{ID: "U", Email: req.Email, Role: role, FirstName: "Asha"},
			Token: tok,
		},
	})
}

func (b *fakeBackend) getCart(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cartFails {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	b.writeJSON(w, http.StatusOK, b.cart)
}

func (b *fakeBackend) clearCart(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cart = &domain.Cart{ID: "c1", PatientID: "U"}
	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) addItem(w http.ResponseWriter, r *http.Request) {
	var req domain.AddToCartRequest
	json.NewDecoder(r.Body).Decode(&req)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.cart.Items = append(b.cart.Items, domain.CartItem{
		ID:         "item-" + req.MedicineID,
		MedicineID: req.MedicineID,
		Quantity:   req.Quantity,
		UnitPrice:  10,
		TotalPrice: 10 * float64(req.Quantity),
	})
	b.recompute()
	b.writeJSON(w, http.StatusOK, map[string]any{"data": b.cart})
}

func (b *fakeBackend) removeItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b.mu.Lock()
	defer b.mu.Unlock()
	items := b.cart.Items[:0]
	for _, it := range b.cart.Items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	b.cart.Items = items
	b.recompute()
	b.writeJSON(w, http.StatusOK, b.cart)
}

func (b *fakeBackend) recompute() {
	b.cart.ItemCount, b.cart.Total = 0, 0
	for _, it := range b.cart.Items {
		b.cart.ItemCount += it.Quantity
		b.cart.Total += it.TotalPrice
	}
	b.cart.Subtotal = b.cart.Total
}

func (b *fakeBackend) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	json.NewDecoder(r.Body).Decode(&req)
	if !strings.Contains(req.ShippingAddress, `"city":"Pune"`) {
		b.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad address"})
		return
	}
	b.writeJSON(w, http.StatusCreated, map[string]any{"data": domain.Order{ID: "o1", OrderNumber: "ORD-1", ShippingAddress: req.ShippingAddress}})
}

func (b *fakeBackend) profile(w http.ResponseWriter, r *http.Request) {
	b.writeJSON(w, http.StatusOK, domain.Patient{ID: "p1", UserID: "U", FirstName: "Asha", LastName: "Rao", City: "Pune"})
}

func (b *fakeBackend) seenUserIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.userIDs...)
}
