// Package state holds the client-side session and cart stores. Every mutation
// is written through to a durable storage slot before the mutator returns, and
// each store rehydrates from its slot when constructed.
package state

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/felixgeelhaar/rxclient/internal/storage"
)

// Slot keys shared with anything that reads the persisted state directly
// (the API client interceptors read AuthSlot on every request).
const (
	AuthSlot = "auth-storage"
	CartSlot = "cart-storage"
)

const persistVersion = 0

// Envelope is the on-disk shape of a persisted store: {"state": ..., "version": 0}
type Envelope[T any] struct {
	State   T   `json:"state"`
	Version int `json:"version"`
}

// persisted serializes a whole state value into one slot
type persisted[T any] struct {
	slots  storage.Slots
	key    string
	logger *slog.Logger
}

// load returns the stored state, or def when the slot is absent or unreadable.
// Corruption is never reported to the caller.
func (p persisted[T]) load(def T) T {
	data, err := p.slots.Get(p.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.logger.Debug("state slot unreadable, using defaults", "slot", p.key, "error", err)
		}
		return def
	}

	var env Envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		p.logger.Debug("state slot malformed, using defaults", "slot", p.key, "error", err)
		return def
	}

	return env.State
}

// save overwrites the slot with v. A failed write is logged; the in-memory
// state the caller already changed stays authoritative.
func (p persisted[T]) save(v T) {
	data, err := json.Marshal(Envelope[T]{State: v, Version: persistVersion})
	if err != nil {
		p.logger.Warn("encode state failed", "slot", p.key, "error", err)
		return
	}
	if err := p.slots.Set(p.key, data); err != nil {
		p.logger.Warn("persist state failed", "slot", p.key, "error", err)
	}
}

// Stores bundles the two persisted stores of a client process
type Stores struct {
	Auth *AuthStore
	Cart *CartStore
}

// Open rehydrates both stores from slots
func Open(slots storage.Slots, logger *slog.Logger) *Stores {
	return &Stores{
		Auth: NewAuthStore(slots, logger),
		Cart: NewCartStore(slots, logger),
	}
}
