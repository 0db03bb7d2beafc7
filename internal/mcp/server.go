package mcp

import (
	"context"
	"fmt"
	"strings"

	mcp "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/server"

	"github.com/felixgeelhaar/rxclient/internal/app"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

// Server exposes the pharmacy client as MCP tools
type Server struct {
	mcpServer *server.Server
	app       *app.App
}

// Config contains configuration for the MCP server
type Config struct {
	App     *app.App
	Version string
}

// NewServer creates the MCP server and registers the rx tools
func NewServer(cfg Config) *Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{app: cfg.App}

	s.mcpServer = server.New(server.Info{
		Name:    "rx",
		Version: version,
	}, server.WithInstructions(`
rx is a client for an online pharmacy. It uses the session stored by "rx login";
tools that touch the cart or orders need a signed-in patient.

Available tools:
- rx_session: Show the signed-in user
- rx_catalog_search: Search the medicine catalog
- rx_medicine: Show one medicine
- rx_cart: Show the current cart
- rx_cart_add: Add a medicine to the cart
- rx_orders: List placed orders

Prices, stock and prescription rules are enforced by the pharmacy, not by rx.
`))

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("rx_session").
		Description("Show the signed-in user and role").
		Handler(s.handleSession)

	s.mcpServer.Tool("rx_catalog_search").
		Description("Search the medicine catalog by name or filter by form.").
		Handler(s.handleCatalogSearch)

	s.mcpServer.Tool("rx_medicine").
		Description("Show details for one medicine.").
		Handler(s.handleMedicine)

	s.mcpServer.Tool("rx_cart").
		Description("Show the signed-in patient's cart.").
		Handler(s.handleCart)

	s.mcpServer.Tool("rx_cart_add").
		Description("Add a medicine to the signed-in patient's cart.").
		Handler(s.handleCartAdd)

	s.mcpServer.Tool("rx_orders").
		Description("List the signed-in patient's orders.").
		Handler(s.handleOrders)
}

type SessionInput struct{}

type SessionOutput struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Role          string `json:"role,omitempty"`
}

type CatalogSearchInput struct {
	Query                string `json:"query,omitempty" jsonschema:"description=Free-text search over medicine names"`
	Form                 string `json:"form,omitempty" jsonschema:"description=Dosage form filter,enum=TABLET,enum=CAPSULE,enum=SYRUP,enum=INJECTION,enum=CREAM,enum=DROPS,enum=OTHER"`
	PrescriptionRequired *bool  `json:"prescription_required,omitempty" jsonschema:"description=Only medicines that do (true) or do not (false) need a prescription"`
}

type MedicineSummary struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Strength             string  `json:"strength,omitempty"`
	Form                 string  `json:"form"`
	PrescriptionRequired bool    `json:"prescription_required"`
	MinPrice             float64 `json:"min_price"`
	InStock              bool    `json:"in_stock"`
}

type CatalogSearchOutput struct {
	Medicines []MedicineSummary `json:"medicines"`
	Count     int               `json:"count"`
}

type MedicineInput struct {
	ID string `json:"id" jsonschema:"description=Medicine ID from rx_catalog_search"`
}

type CartInput struct {
	Refresh bool `json:"refresh,omitempty" jsonschema:"description=Fetch the cart from the server instead of the stored snapshot"`
}

type CartLine struct {
	ItemID     string  `json:"item_id"`
	MedicineID string  `json:"medicine_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

type CartOutput struct {
	Items     []CartLine `json:"items"`
	ItemCount int        `json:"item_count"`
	Total     float64    `json:"total"`
}

type CartAddInput struct {
	MedicineID string `json:"medicine_id" jsonschema:"description=Medicine ID to add"`
	Quantity   int    `json:"quantity,omitempty" jsonschema:"description=Units to add (default 1)"`
}

type OrdersInput struct {
	Status string `json:"status,omitempty" jsonschema:"description=Only orders in this status (e.g. PENDING or DELIVERED)"`
}

type OrderSummary struct {
	ID          string  `json:"id"`
	OrderNumber string  `json:"order_number"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
	CreatedAt   string  `json:"created_at"`
}

type OrdersOutput struct {
	Orders []OrderSummary `json:"orders"`
}

func (s *Server) handleSession(ctx context.Context, input SessionInput) (SessionOutput, error) {
	sess := s.app.Session()
	if !sess.IsAuthenticated() {
		return SessionOutput{}, nil
	}
	return SessionOutput{
		Authenticated: true,
		UserID:        sess.User.ID,
		Email:         sess.User.Email,
		Name:          sess.User.DisplayName(),
		Role:          string(sess.User.Role),
	}, nil
}

func (s *Server) handleCatalogSearch(ctx context.Context, input CatalogSearchInput) (CatalogSearchOutput, error) {
	var (
		meds []domain.Medicine
		err  error
	)
	if input.Query != "" && input.Form == "" && input.PrescriptionRequired == nil {
		meds, err = s.app.Services.Catalog.SearchMedicines(ctx, input.Query)
	} else {
		meds, err = s.app.Services.Catalog.ListMedicines(ctx, domain.MedicineSearchParams{
			Search:               input.Query,
			Form:                 domain.MedicineForm(input.Form),
			PrescriptionRequired: input.PrescriptionRequired,
		})
	}
	if err != nil {
		return CatalogSearchOutput{}, err
	}

	out := CatalogSearchOutput{Medicines: make([]MedicineSummary, 0, len(meds)), Count: len(meds)}
	for _, m := range meds {
		out.Medicines = append(out.Medicines, summarizeMedicine(m))
	}
	return out, nil
}

func (s *Server) handleMedicine(ctx context.Context, input MedicineInput) (domain.Medicine, error) {
	med, err := s.app.Services.Catalog.GetMedicine(ctx, input.ID)
	if err != nil {
		return domain.Medicine{}, err
	}
	if med == nil {
		return domain.Medicine{}, fmt.Errorf("medicine %s: %w", input.ID, domain.ErrNotFound)
	}
	return *med, nil
}

func (s *Server) handleCart(ctx context.Context, input CartInput) (CartOutput, error) {
	if err := s.app.RequireRole(domain.RolePatient); err != nil {
		return CartOutput{}, err
	}

	cart := s.app.Stores.Cart.Cart()
	if input.Refresh || cart == nil {
		var err error
		if cart, err = s.app.RefreshCart(ctx); err != nil {
			return CartOutput{}, err
		}
	}
	return summarizeCart(cart), nil
}

func (s *Server) handleCartAdd(ctx context.Context, input CartAddInput) (CartOutput, error) {
	if err := s.app.RequireRole(domain.RolePatient); err != nil {
		return CartOutput{}, err
	}

	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}
	cart, err := s.app.AddToCart(ctx, input.MedicineID, qty)
	if err != nil {
		return CartOutput{}, err
	}
	return summarizeCart(cart), nil
}

func (s *Server) handleOrders(ctx context.Context, input OrdersInput) (OrdersOutput, error) {
	if err := s.app.RequireRole(domain.RolePatient); err != nil {
		return OrdersOutput{}, err
	}

	orders, err := s.app.Services.Order.ListOrders(ctx)
	if err != nil {
		return OrdersOutput{}, err
	}

	out := OrdersOutput{Orders: make([]OrderSummary, 0, len(orders))}
	for _, o := range orders {
		if input.Status != "" && !strings.EqualFold(o.Status, input.Status) {
			continue
		}
		out.Orders = append(out.Orders, OrderSummary{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			Status:      o.Status,
			TotalAmount: o.TotalAmount,
			CreatedAt:   o.CreatedAt,
		})
	}
	return out, nil
}

func summarizeMedicine(m domain.Medicine) MedicineSummary {
	return MedicineSummary{
		ID:                   m.ID,
		Name:                 m.Name,
		Strength:             m.Strength,
		Form:                 string(m.Form),
		PrescriptionRequired: m.PrescriptionRequired,
		MinPrice:             m.MinPrice,
		InStock:              m.InStock,
	}
}

// summarizeCart copies the server totals as-is
func summarizeCart(cart *domain.Cart) CartOutput {
	out := CartOutput{Items: []CartLine{}}
	if cart == nil {
		return out
	}
	for _, it := range cart.Items {
		out.Items = append(out.Items, CartLine{
			ItemID:     it.ID,
			MedicineID: it.MedicineID,
			Name:       it.MedicineName,
			Quantity:   it.Quantity,
			TotalPrice: it.TotalPrice,
		})
	}
	out.ItemCount = cart.ItemCount
	out.Total = cart.Total
	return out
}

// ServeStdio starts the MCP server on stdio
func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

// ServeHTTP starts the MCP server on HTTP (alternative transport)
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr)
}

// GetMCPServer returns the underlying MCP server (for testing)
func (s *Server) GetMCPServer() *server.Server {
	return s.mcpServer
}
