// Package storage provides the durable key-value slots that hold the lead
// collection and the Store that reads and writes it.
package storage

import (
	"errors"
	"strings"

	"github.com/mesh-intelligence/leadboard/internal/sqlite"
)

// KV is a durable local key-value slot. Values are opaque bytes; Put
// replaces the previous value atomically.
type KV interface {
	// Get returns the value under key; ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)

	// Put stores value under key.
	Put(key string, value []byte) error

	// Delete removes key. Deleting an absent key succeeds.
	Delete(key string) error

	// Close releases backend resources.
	Close() error
}

// Compile-time interface checks.
var (
	_ KV = (*FileKV)(nil)
	_ KV = (*MemoryKV)(nil)
	_ KV = (*sqlite.Backend)(nil)
)

// ErrInvalidKey is returned for keys that are empty or would escape the
// data directory.
var ErrInvalidKey = errors.New("invalid storage key")

// validateKey rejects keys that cannot be used as a file name.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}
