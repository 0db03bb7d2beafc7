package local

import "github.com/felixgeelhaar/rxclient/internal/storage"

var (
	// ErrNotFound is returned when a slot file does not exist
	ErrNotFound = storage.ErrNotFound
)
