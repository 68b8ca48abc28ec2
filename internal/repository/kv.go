// Package repository provides local key-value persistence backends.
// Each key holds one JSON document; the board keeps its entire state
// under three well-known keys.
package repository

import "context"

// Well-known storage keys.
const (
	// UsersKey holds the JSON array of registered users.
	UsersKey = "users"
	// SessionKey holds the JSON object of the active session, if any.
	SessionKey = "currentSession"
	// IncidentsKey holds the JSON array of incidents, newest first.
	IncidentsKey = "incidents"
)

// KV is a local key-value store holding one raw JSON value per key.
type KV interface {
	// Get returns the value stored under key. ok is false when the key
	// is absent; absence is not an error.
	// ctx carries deadlines, cancellation signals, and other request-scoped values.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Put stores value under key, overwriting any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
