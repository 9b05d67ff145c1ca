package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/tareqmn/microblog/internal/store"
)

// Hash fields of a user record.
const (
	fieldUsername = "username"
	fieldHash     = "hash"
)

// Repository handles user persistence: the username directory hash and
// one record hash per user.
type Repository struct {
	store store.Store
}

// NewRepository creates a new user repository with the store injected.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// ClaimUsername atomically maps the username to the id in the directory.
// It reports false when the username is already taken, in which case
// nothing was written; this is what guards concurrent duplicate signups.
func (r *Repository) ClaimUsername(ctx context.Context, username string, id int64) (bool, error) {
	claimed, err := r.store.HashSetIfAbsent(ctx, store.UsersKey, username, strconv.FormatInt(id, 10))
	if err != nil {
		return false, fmt.Errorf("claim username: %w", err)
	}
	return claimed, nil
}

// Save writes the user record. Records are immutable after signup.
func (r *Repository) Save(ctx context.Context, u *User) error {
	err := r.store.HashSetMulti(ctx, store.UserKey(u.ID), map[string]string{
		fieldUsername: u.Username,
		fieldHash:     u.CredentialHash,
	})
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// FindIDByUsername resolves a username through the directory. A missing
// entry returns (0, nil).
func (r *Repository) FindIDByUsername(ctx context.Context, username string) (int64, error) {
	v, err := r.store.HashGet(ctx, store.UsersKey, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("find user id: %w", err)
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse user id %q: %w", v, err)
	}
	return id, nil
}

// GetByID retrieves a user record. A missing record returns (nil, nil).
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	fields, err := r.store.HashGetAll(ctx, store.UserKey(id))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return &User{
		ID:             id,
		Username:       fields[fieldUsername],
		CredentialHash: fields[fieldHash],
	}, nil
}

// CredentialHash returns the stored credential hash for a user.
func (r *Repository) CredentialHash(ctx context.Context, id int64) (string, error) {
	hash, err := r.store.HashGet(ctx, store.UserKey(id), fieldHash)
	if err != nil {
		return "", fmt.Errorf("get credential hash: %w", err)
	}
	return hash, nil
}

// ListUsernames returns every registered username.
func (r *Repository) ListUsernames(ctx context.Context) ([]string, error) {
	names, err := r.store.HashKeys(ctx, store.UsersKey)
	if err != nil {
		return nil, fmt.Errorf("list usernames: %w", err)
	}
	return names, nil
}
