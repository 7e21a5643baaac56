// Package kvstore is the persistence substrate for configuration
// records: a flat key to string store. Values are JSON text, but the
// store itself makes no guarantees about their shape — callers must
// tolerate corrupt or non-JSON payloads.
package kvstore

import "errors"

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is the key-value contract the configuration engine persists
// through.
type Store interface {
	// Get returns the value under key, or ErrNotFound.
	Get(key string) (string, error)
	// Set writes value under key, creating or replacing it.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys returns every key starting with prefix, in no particular
	// order.
	Keys(prefix string) ([]string, error)
}
