package state

import (
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/rxclient/internal/domain"
	"github.com/felixgeelhaar/rxclient/internal/storage"
)

// CartState is the persisted form of the cart store
type CartState struct {
	Cart      *domain.Cart `json:"cart"`
	IsLoading bool         `json:"isLoading"`
}

// CartStore holds the latest cart snapshot returned by the cart service.
// Snapshots replace each other wholesale; concurrent mutations resolve to
// whichever SetCart ran last.
type CartStore struct {
	mu      sync.RWMutex
	state   CartState
	persist persisted[CartState]
}

// NewCartStore creates the store and rehydrates the last snapshot.
// The loading flag never survives a restart.
func NewCartStore(slots storage.Slots, logger *slog.Logger) *CartStore {
	if logger == nil {
		logger = slog.Default()
	}

	s := &CartStore{
		persist: persisted[CartState]{slots: slots, key: CartSlot, logger: logger},
	}
	s.state = s.persist.load(CartState{})
	s.state.IsLoading = false

	return s
}

// SetCart replaces the snapshot; nil clears it
func (s *CartStore) SetCart(cart *domain.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Cart = cloneCart(cart)
	s.persist.save(s.state)
}

// SetLoading records whether a cart fetch is in flight
func (s *CartStore) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsLoading = loading
	s.persist.save(s.state)
}

// Cart returns the current snapshot, or nil
func (s *CartStore) Cart() *domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneCart(s.state.Cart)
}

// Loading reports whether a cart fetch is in flight
func (s *CartStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsLoading
}

// ItemCount is the server-computed item count, 0 without a cart
func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.Cart == nil {
		return 0
	}
	return s.state.Cart.ItemCount
}

// Total is the server-computed cart total, 0 without a cart
func (s *CartStore) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.Cart == nil {
		return 0
	}
	return s.state.Cart.Total
}

func cloneCart(cart *domain.Cart) *domain.Cart {
	if cart == nil {
		return nil
	}
	c := *cart
	c.Items = append([]domain.CartItem(nil), cart.Items...)
	return &c
}
