package storage

import "errors"

// ErrNotFound is returned when no value is stored under a key.
var ErrNotFound = errors.New("key not found")

// TokenStorage is scoped key/value persistence for the session token. Any
// method may fail (locked-down runtime dir, read-only filesystem); callers
// must treat failure as "no persistence", never as fatal.
type TokenStorage interface {
	// Get retrieves the value stored under key, or ErrNotFound.
	Get(key string) (string, error)

	// Set stores the value under key.
	Set(key, value string) error

	// Delete removes the value under key. Deleting a missing key is not an
	// error.
	Delete(key string) error
}
