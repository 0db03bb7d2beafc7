package local

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/felixgeelhaar/rxclient/internal/storage"
)

const slotExt = ".json"

// Store keeps each slot in its own JSON file under basePath
type Store struct {
	basePath string
	mu       sync.RWMutex
}

// NewStore creates a file-backed slot store, creating basePath if needed
func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0700); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// Path returns the directory holding the slot files
func (s *Store) Path() string {
	return s.basePath
}

// Get reads the raw slot value
func (s *Store) Get(key string) ([]byte, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read slot: %w", err)
	}

	return data, nil
}

// Set replaces the slot value. The write goes to a temp file that is renamed
// over the slot so readers never observe a partial value.
func (s *Store) Set(key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.basePath, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod slot: %w", err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename slot: %w", err)
	}

	return nil
}

// Remove deletes the slot file. Removing an absent slot succeeds.
func (s *Store) Remove(key string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove slot: %w", err)
	}

	return nil
}

// Keys returns all slot keys in sorted order
func (s *Store) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read directory: %w", err)
	}

	keys := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != slotExt {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, slotExt))
	}
	sort.Strings(keys)

	return keys, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.basePath, key+slotExt)
}
