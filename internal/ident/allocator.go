// Package ident allocates user and post identifiers from two independent
// counters in the shared store. Using the store's atomic increment rather
// than an in-process counter keeps ids unique across concurrent service
// instances.
package ident

import (
	"context"
	"fmt"

	"github.com/tareqmn/microblog/internal/store"
)

// Allocator issues monotonically increasing ids. Every value is strictly
// greater than any previously returned value from the same counter and is
// never reused; on store failure the error propagates and no id is made up.
type Allocator struct {
	store store.Store
}

// NewAllocator creates an allocator backed by the given store.
func NewAllocator(s store.Store) *Allocator {
	return &Allocator{store: s}
}

// NextUserID returns the next user id.
func (a *Allocator) NextUserID(ctx context.Context) (int64, error) {
	id, err := a.store.AtomicIncrement(ctx, store.UserIDCounter)
	if err != nil {
		return 0, fmt.Errorf("allocate user id: %w", err)
	}
	return id, nil
}

// NextPostID returns the next post id.
func (a *Allocator) NextPostID(ctx context.Context) (int64, error) {
	id, err := a.store.AtomicIncrement(ctx, store.PostIDCounter)
	if err != nil {
		return 0, fmt.Errorf("allocate post id: %w", err)
	}
	return id, nil
}
