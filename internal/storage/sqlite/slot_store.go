package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/rxclient/internal/storage"
)

// SlotStore implements storage.Slots on a single SQLite table.
type SlotStore struct {
	db *DB
}

// OpenSlotStore opens (creating if needed) the database at path and applies migrations.
func OpenSlotStore(path string) (*SlotStore, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SlotStore{db: db}, nil
}

func (s *SlotStore) Get(key string) ([]byte, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.QueryRow("SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select slot: %w", err)
	}
	return value, nil
}

func (s *SlotStore) Set(key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}

func (s *SlotStore) Remove(key string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	if _, err := s.db.Exec("DELETE FROM slots WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}

// Keys returns all slot keys in sorted order.
func (s *SlotStore) Keys() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM slots ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan slot key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Close closes the underlying database.
func (s *SlotStore) Close() error {
	return s.db.Close()
}
