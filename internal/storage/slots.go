// Package storage defines the durable key-value slots that back the
// client-side state stores, plus an in-memory implementation.
package storage

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrNotFound is returned by Get when a slot has never been written or was removed
	ErrNotFound = errors.New("slot not found")

	// ErrInvalidKey is returned for empty keys or keys containing path separators
	ErrInvalidKey = errors.New("invalid slot key")
)

// Slots is a durable key-value store holding one serialized value per key.
// Set always overwrites the whole value; there are no partial updates.
type Slots interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// ValidateKey rejects keys that cannot be mapped safely onto a file name
func ValidateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return ErrInvalidKey
	}
	return nil
}

// Memory is a process-local Slots implementation. Values do not survive
// process exit.
type Memory struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemory creates an empty in-memory slot store
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Remove(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.slots, key)
	return nil
}

// Keys returns the written slot keys in sorted order
func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.slots))
	for k := range m.slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
