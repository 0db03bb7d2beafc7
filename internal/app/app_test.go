package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/rxclient/internal/apiclient"
	"github.com/felixgeelhaar/rxclient/internal/config"
	"github.com/felixgeelhaar/rxclient/internal/domain"
	"github.com/felixgeelhaar/rxclient/internal/state"
	"github.com/felixgeelhaar/rxclient/internal/storage"
)

func testConfig(baseURL string) *config.LocalConfig {
	cfg := config.DefaultLocalConfig()
	cfg.API = config.APIConfig{
		Auth: baseURL, Patient: baseURL, Prescription: baseURL,
		Catalog: baseURL, Cart: baseURL, Order: baseURL,
		TimeoutSeconds: 5,
	}
	cfg.Storage.Backend = config.StorageMemory
	cfg.Resilience.Enabled = false
	return cfg
}

func openTestApp(t *testing.T, b *fakeBackend, slots storage.Slots) (*App, *apiclient.NavigationSignal) {
	t.Helper()
	nav := apiclient.NewNavigationSignal(4)
	a, err := Open(testConfig(b.server.URL), Options{Navigator: nav, Slots: slots})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a, nav
}

func TestLogin_LoadsPatientCart(t *testing.T) {
	b := newFakeBackend(t)
	b.cart.ItemCount = 3
	a, _ := openTestApp(t, b, nil)

	user, err := a.Login(context.Background(), "asha@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != "U" || !a.Session().IsAuthenticated() {
		t.Errorf("session = %+v", a.Session())
	}
	if got := a.Stores.Cart.ItemCount(); got != 3 {
		t.Errorf("ItemCount() = %d, want 3", got)
	}
	if a.Stores.Cart.Loading() {
		t.Error("Loading() should be false after the fetch")
	}
}

func TestLogin_NonPatientSkipsCart(t *testing.T) {
	b := newFakeBackend(t)
	b.role = domain.RolePharmacist
	a, _ := openTestApp(t, b, nil)

	if _, err := a.Login(context.Background(), "ph@example.com", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if a.Stores.Cart.Cart() != nil {
		t.Error("pharmacist login should not load a cart")
	}
}

func TestLogin_CartFailureIgnored(t *testing.T) {
	b := newFakeBackend(t)
	b.cartFails = true
	a, _ := openTestApp(t, b, nil)

	if _, err := a.Login(context.Background(), "asha@example.com", "secret"); err != nil {
		t.Fatalf("Login() should succeed despite cart failure: %v", err)
	}
	if !a.Session().IsAuthenticated() {
		t.Error("session should be stored")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	b := newFakeBackend(t)
	a, _ := openTestApp(t, b, nil)

	_, err := a.Login(context.Background(), "asha@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Login() error = %v, want ErrInvalidInput", err)
	}
	if a.Session().IsAuthenticated() {
		t.Error("failed login must not store a session")
	}
}

func TestAddToCart_UpdatesStore(t *testing.T) {
	b := newFakeBackend(t)
	a, _ := openTestApp(t, b, nil)
	ctx := context.Background()

	if _, err := a.Login(ctx, "asha@example.com", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	cart, err := a.AddToCart(ctx, "m1", 2)
	if err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if cart.ItemCount != 2 {
		t.Errorf("returned ItemCount = %d, want 2", cart.ItemCount)
	}
	if got := a.Stores.Cart.ItemCount(); got != 2 {
		t.Errorf("store ItemCount() = %d, want 2", got)
	}

	for _, id := range b.seenUserIDs()[1:] {
		if id != "U" {
			t.Errorf("non-auth request X-User-Id = %q, want U", id)
		}
	}
	if first := b.seenUserIDs()[0]; first != "" {
		t.Errorf("login request X-User-Id = %q, want none", first)
	}

	if _, err := a.RemoveFromCart(ctx, "item-m1"); err != nil {
		t.Fatalf("RemoveFromCart() error = %v", err)
	}
	if got := a.Stores.Cart.ItemCount(); got != 0 {
		t.Errorf("ItemCount() after remove = %d", got)
	}
}

func TestUnauthorized_ClearsSessionAndNavigates(t *testing.T) {
	b := newFakeBackend(t)
	slots := storage.NewMemory()
	a, nav := openTestApp(t, b, slots)
	ctx := context.Background()

	if _, err := a.Login(ctx, "asha@example.com", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	b.mu.Lock()
	b.expireToken = true
	b.mu.Unlock()

	_, err := a.RefreshCart(ctx)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("RefreshCart() error = %v, want ErrUnauthorized", err)
	}
	if a.Session().IsAuthenticated() {
		t.Error("session should be cleared")
	}
	if route := <-nav.Routes(); route != apiclient.LoginRoute {
		t.Errorf("route = %q", route)
	}

	reopened := state.NewAuthStore(slots, nil)
	if reopened.IsAuthenticated() {
		t.Error("cleared session should be persisted")
	}
}

func TestLogout(t *testing.T) {
	b := newFakeBackend(t)
	a, _ := openTestApp(t, b, nil)
	ctx := context.Background()

	a.Login(ctx, "asha@example.com", "secret")
	a.AddToCart(ctx, "m1", 1)
	a.Logout()

	if a.Session().IsAuthenticated() || a.Session().User != nil {
		t.Error("session should be empty")
	}
	if a.Stores.Cart.Cart() != nil || a.Stores.Cart.ItemCount() != 0 {
		t.Error("cart should be cleared on logout")
	}
}

func TestRequireRole(t *testing.T) {
	b := newFakeBackend(t)
	a, _ := openTestApp(t, b, nil)

	if err := a.RequireRole(domain.RolePatient); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("logged out: error = %v, want ErrUnauthorized", err)
	}

	a.Login(context.Background(), "asha@example.com", "secret")

	if err := a.RequireRole(domain.RolePatient); err != nil {
		t.Errorf("patient: error = %v", err)
	}
	if err := a.RequireRole(""); err != nil {
		t.Errorf("any role: error = %v", err)
	}
	if err := a.RequireRole(domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("admin: error = %v, want ErrForbidden", err)
	}
}

func TestCheckout(t *testing.T) {
	b := newFakeBackend(t)
	a, _ := openTestApp(t, b, nil)
	ctx := context.Background()

	if _, err := a.Checkout(ctx, domain.ShippingAddress{}); !errors.Is(err, domain.ErrEmptyCart) {
		t.Errorf("empty cart: error = %v, want ErrEmptyCart", err)
	}

	a.Login(ctx, "asha@example.com", "secret")
	if _, err := a.AddToCart(ctx, "m1", 1); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}

	addr, err := a.CheckoutAddress(ctx)
	if err != nil {
		t.Fatalf("CheckoutAddress() error = %v", err)
	}
	addr.AddressLine1 = "1 MG Road"
	addr.State = "MH"
	addr.PostalCode = "411001"
	addr.Country = "IN"

	order, err := a.Checkout(ctx, addr)
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if order.OrderNumber != "ORD-1" || order.Address().City != "Pune" {
		t.Errorf("order = %+v", order)
	}
	if a.Stores.Cart.Cart() != nil {
		t.Error("cart should be cleared after checkout")
	}
}

func TestClearCart(t *testing.T) {
	b := newFakeBackend(t)
	a, _ := openTestApp(t, b, nil)
	ctx := context.Background()

	a.Login(ctx, "asha@example.com", "secret")
	a.AddToCart(ctx, "m1", 2)
	if err := a.ClearCart(ctx); err != nil {
		t.Fatalf("ClearCart() error = %v", err)
	}
	if a.Stores.Cart.Cart() != nil {
		t.Error("cart should be nil after clear")
	}
}

func TestSessionSurvivesReopen(t *testing.T) {
	b := newFakeBackend(t)
	dir := t.TempDir()

	for _, backend := range []string{config.StorageFile, config.StorageSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(b.server.URL)
			cfg.Storage.Backend = backend
			cfg.Storage.Dir = filepath.Join(dir, backend)

			a, err := Open(cfg, Options{})
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if _, err := a.Login(context.Background(), "asha@example.com", "secret"); err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if err := a.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			again, err := Open(cfg, Options{})
			if err != nil {
				t.Fatalf("reopen error = %v", err)
			}
			defer again.Close()
			if !again.Session().IsAuthenticated() || again.Session().User.ID != "U" {
				t.Errorf("session after reopen = %+v", again.Session())
			}
		})
	}
}

func TestOpenSlots_UnknownBackend(t *testing.T) {
	cfg := config.DefaultLocalConfig()
	cfg.Storage.Backend = "redis"
	cfg.Storage.Dir = t.TempDir()
	if _, _, err := OpenSlots(cfg); err == nil {
		t.Error("OpenSlots() should reject unknown backends")
	}
}
