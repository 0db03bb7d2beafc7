package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/rxclient/internal/domain"
)

// Login authenticates and stores the session. Patients also get their cart
// loaded; a cart failure does not fail the login.
func (a *App) Login(ctx context.Context, email, password string) (*domain.User, error) {
	resp, err := a.Services.Auth.Login(ctx, domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return a.startSession(ctx, resp)
}

// Register creates an account. When the auth service returns a token the
// new user is signed in straight away.
func (a *App) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	resp, err := a.Services.Auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		user := resp.User
		return &user, nil
	}
	return a.startSession(ctx, resp)
}

func (a *App) startSession(ctx context.Context, resp *domain.LoginResponse) (*domain.User, error) {
	if err := a.Stores.Auth.Login(resp.User, resp.Token); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	a.logger.Info("logged in", "user_id", resp.User.ID, "role", resp.User.Role)

	if resp.User.Role == domain.RolePatient {
		if _, err := a.RefreshCart(ctx); err != nil {
			a.logger.Debug("load cart after login failed", "error", err)
		}
	}

	user := resp.User
	return &user, nil
}

// Logout clears the session and the cart snapshot
func (a *App) Logout() {
	a.Stores.Auth.Logout()
	a.Stores.Cart.SetCart(nil)
}

// Session returns the current session
func (a *App) Session() domain.Session {
	return a.Stores.Auth.Session()
}

// RequireRole guards operations that need a signed-in user. An empty role
// accepts any signed-in user.
func (a *App) RequireRole(role domain.Role) error {
	sess := a.Stores.Auth.Session()
	if !sess.IsAuthenticated() {
		return domain.ErrUnauthorized
	}
	if role != "" && sess.User.Role != role {
		return fmt.Errorf("%w: requires %s, signed in as %s", domain.ErrForbidden, role, sess.User.Role)
	}
	return nil
}

// RefreshCart fetches the cart into the cart store
func (a *App) RefreshCart(ctx context.Context) (*domain.Cart, error) {
	a.Stores.Cart.SetLoading(true)
	defer a.Stores.Cart.SetLoading(false)

	cart, err := a.Services.Cart.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	a.Stores.Cart.SetCart(cart)
	return cart, nil
}

// AddToCart adds a line and stores the returned snapshot
func (a *App) AddToCart(ctx context.Context, medicineID string, quantity int) (*domain.Cart, error) {
	cart, err := a.Services.Cart.AddToCart(ctx, domain.AddToCartRequest{MedicineID: medicineID, Quantity: quantity})
	if err != nil {
		return nil, err
	}
	a.Stores.Cart.SetCart(cart)
	return cart, nil
}

// UpdateCartItem changes a line quantity and stores the returned snapshot
func (a *App) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*domain.Cart, error) {
	cart, err := a.Services.Cart.UpdateCartItem(ctx, itemID, domain.UpdateCartItemRequest{Quantity: quantity})
	if err != nil {
		return nil, err
	}
	a.Stores.Cart.SetCart(cart)
	return cart, nil
}

// RemoveFromCart deletes a line and stores the returned snapshot
func (a *App) RemoveFromCart(ctx context.Context, itemID string) (*domain.Cart, error) {
	cart, err := a.Services.Cart.RemoveFromCart(ctx, itemID)
	if err != nil {
		return nil, err
	}
	a.Stores.Cart.SetCart(cart)
	return cart, nil
}

// ClearCart empties the cart on the server and locally
func (a *App) ClearCart(ctx context.Context) error {
	if err := a.Services.Cart.ClearCart(ctx); err != nil {
		return err
	}
	a.Stores.Cart.SetCart(nil)
	return nil
}

// Checkout places an order for the current cart. The server empties the
// cart as part of the order, so the local snapshot is dropped.
func (a *App) Checkout(ctx context.Context, addr domain.ShippingAddress) (*domain.Order, error) {
	if a.Stores.Cart.Cart().IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	req, err := domain.NewCreateOrderRequest(addr)
	if err != nil {
		return nil, err
	}

	order, err := a.Services.Order.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	a.Stores.Cart.SetCart(nil)
	return order, nil
}

// CheckoutAddress prefills a shipping address from the patient profile. A
// missing profile yields an empty address rather than an error.
func (a *App) CheckoutAddress(ctx context.Context) (domain.ShippingAddress, error) {
	p, err := a.Services.Patient.GetProfile(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ShippingAddress{}, nil
	}
	if err != nil {
		return domain.ShippingAddress{}, err
	}
	return p.ShippingAddress(), nil
}
