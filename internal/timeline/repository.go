// Package timeline implements the write-time fan-out engine and the
// timeline reader. A timeline is a per-user, newest-first list of post
// ids; publishing appends the new id to the author's list and to the
// list of every follower known at publish time, so reads are plain list
// fetches.
package timeline

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tareqmn/microblog/internal/store"
)

// Cap is the maximum number of entries kept per timeline. Every push
// trims the list back to this bound, so timelines cannot grow without
// limit.
const Cap = 1000

// Repository handles timeline persistence, one list per username.
type Repository struct {
	store store.Store
}

// NewRepository creates a new timeline repository with the store injected.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// Push prepends a post id to the user's timeline and trims the list to
// the cap. Entries are ordered by push time, never reordered.
func (r *Repository) Push(ctx context.Context, username string, postID int64) error {
	key := store.TimelineKey(username)
	if err := r.store.ListPushFront(ctx, key, strconv.FormatInt(postID, 10)); err != nil {
		return fmt.Errorf("push timeline entry: %w", err)
	}
	if err := r.store.ListTrim(ctx, key, 0, Cap-1); err != nil {
		return fmt.Errorf("trim timeline: %w", err)
	}
	return nil
}

// Range returns up to limit of the most recent post ids, newest first.
func (r *Repository) Range(ctx context.Context, username string, limit int) ([]int64, error) {
	values, err := r.store.ListRange(ctx, store.TimelineKey(username), 0, int64(limit)-1)
	if err != nil {
		return nil, fmt.Errorf("read timeline: %w", err)
	}

	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse timeline entry %q: %w", v, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
