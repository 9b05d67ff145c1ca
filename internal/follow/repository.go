// Package follow maintains the follow graph: for every username a set of
// who they follow and a set of who follows them, kept symmetric.
package follow

import (
	"context"
	"fmt"

	"github.com/tareqmn/microblog/internal/store"
)

// Repository handles follow-edge persistence. An edge is stored twice,
// once in each direction, for O(1) lookup both ways.
type Repository struct {
	store store.Store
}

// NewRepository creates a new follow repository with the store injected.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// AddEdge writes both halves of the follower -> followee edge. The store
// has no cross-key atomicity, so the second write can fail after the
// first landed; the caller surfaces the failure and a retry restores
// symmetry because set adds are idempotent.
func (r *Repository) AddEdge(ctx context.Context, follower, followee string) error {
	if err := r.store.SetAdd(ctx, store.FollowingKey(follower), followee); err != nil {
		return fmt.Errorf("add following edge: %w", err)
	}
	if err := r.store.SetAdd(ctx, store.FollowersKey(followee), follower); err != nil {
		return fmt.Errorf("add followers edge: %w", err)
	}
	return nil
}

// Following returns the usernames the given user follows, unordered.
func (r *Repository) Following(ctx context.Context, username string) ([]string, error) {
	members, err := r.store.SetMembers(ctx, store.FollowingKey(username))
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return members, nil
}

// Followers returns the usernames following the given user, unordered.
func (r *Repository) Followers(ctx context.Context, username string) ([]string, error) {
	members, err := r.store.SetMembers(ctx, store.FollowersKey(username))
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return members, nil
}
