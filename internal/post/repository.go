package post

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tareqmn/microblog/internal/store"
)

// Hash fields of a post record.
const (
	fieldUserID    = "userid"
	fieldUsername  = "username"
	fieldMessage   = "message"
	fieldTimestamp = "timestamp"
)

// Repository handles post persistence, one hash per record.
type Repository struct {
	store store.Store
}

// NewRepository creates a new post repository with the store injected.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// Save writes the record under its id in one atomic call.
func (r *Repository) Save(ctx context.Context, rec *Record) error {
	err := r.store.HashSetMulti(ctx, store.PostKey(rec.ID), map[string]string{
		fieldUserID:    strconv.FormatInt(rec.AuthorUserID, 10),
		fieldUsername:  rec.AuthorUsername,
		fieldMessage:   rec.Message,
		fieldTimestamp: strconv.FormatInt(rec.CreatedAtMs, 10),
	})
	if err != nil {
		return fmt.Errorf("save post: %w", err)
	}
	return nil
}

// Get retrieves a record by id. A missing record returns (nil, nil).
func (r *Repository) Get(ctx context.Context, id int64) (*Record, error) {
	fields, err := r.store.HashGetAll(ctx, store.PostKey(id))
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	authorID, err := strconv.ParseInt(fields[fieldUserID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse post author id: %w", err)
	}
	createdAt, err := strconv.ParseInt(fields[fieldTimestamp], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse post timestamp: %w", err)
	}

	return &Record{
		ID:             id,
		AuthorUserID:   authorID,
		AuthorUsername: fields[fieldUsername],
		Message:        fields[fieldMessage],
		CreatedAtMs:    createdAt,
	}, nil
}
