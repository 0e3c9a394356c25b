// Package kv defines the opaque get/set-by-key store the tracker persists
// into. Backends are interchangeable; callers treat values as raw bytes.
package kv

import (
	"context"
	"errors"
)

// Well-known keys used by the session store.
const (
	// AccountsKey holds the registry of all accounts, keyed by normalized email.
	AccountsKey = "accounts_registry"
	// ActiveSessionKey holds a denormalized copy of the active account, absent
	// when logged out.
	ActiveSessionKey = "active_session"
)

// ErrKeyNotFound is returned by Get for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// Store is a process-wide key-value store with storage-scoped lifetime.
type Store interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
