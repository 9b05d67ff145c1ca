// Package store defines the key-value capability the rest of the
// application persists through, and its Redis implementation. Components
// depend on the Store interface only; per-key atomicity (counters, set
// adds, list pushes) is delegated entirely to the underlying store.
package store

import (
	"context"
	"errors"
	"time"
)

// Common errors
var (
	// ErrNotFound means the key or field does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrUnavailable means the underlying store could not be reached or
	// failed while serving the call.
	ErrUnavailable = errors.New("store: unavailable")
)

// Store is the capability contract every repository talks to.
//
// Each call is a blocking I/O operation and honors the passed context.
// There are no transactions across keys; callers must not assume any
// ordering between independent calls.
type Store interface {
	// AtomicIncrement increments the counter at counterKey by one and
	// returns the new value. Safe under concurrent callers.
	AtomicIncrement(ctx context.Context, counterKey string) (int64, error)

	// HashGet returns the value of a single hash field, or ErrNotFound.
	HashGet(ctx context.Context, key, field string) (string, error)
	// HashSet sets a single hash field.
	HashSet(ctx context.Context, key, field, value string) error
	// HashSetMulti sets several hash fields in one atomic call.
	HashSetMulti(ctx context.Context, key string, fields map[string]string) error
	// HashSetIfAbsent sets the field only if it does not exist yet and
	// reports whether this call claimed it.
	HashSetIfAbsent(ctx context.Context, key, field, value string) (bool, error)
	// HashGetAll returns every field of a hash; an empty map for a
	// missing key.
	HashGetAll(ctx context.Context, key string) (map[string]string, error)
	// HashKeys returns the field names of a hash.
	HashKeys(ctx context.Context, key string) ([]string, error)

	// SetAdd adds a member to a set; adding an existing member is a no-op.
	SetAdd(ctx context.Context, key, member string) error
	// SetMembers returns all members of a set, unordered.
	SetMembers(ctx context.Context, key string) ([]string, error)

	// ListPushFront prepends a value to a list.
	ListPushFront(ctx context.Context, key, value string) error
	// ListRange returns the values at positions [start, stop], inclusive,
	// front first. Negative indexes count from the back.
	ListRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	// ListTrim drops every list element outside [start, stop].
	ListTrim(ctx context.Context, key string, start, stop int64) error

	// Expire sets a time-to-live on a key.
	Expire(ctx context.Context, key string, ttl time.Duration) error
}
