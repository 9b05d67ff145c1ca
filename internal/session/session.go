// Package session manages login sessions. A session is an opaque token
// mapped to the authenticated user in the shared store, so any service
// instance can resolve it; the token travels in a cookie or bearer header.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tareqmn/microblog/internal/store"
)

// ErrInvalidSession means the token is unknown or expired.
var ErrInvalidSession = errors.New("invalid session")

// Hash fields of a session record.
const (
	fieldUserID   = "userid"
	fieldUsername = "username"
)

// Principal identifies the user a session belongs to.
type Principal struct {
	UserID   int64
	Username string
}

// Service creates and resolves sessions.
type Service struct {
	store store.Store
	ttl   time.Duration
}

// NewService creates a session service. Sessions expire after ttl.
func NewService(s store.Store, ttl time.Duration) *Service {
	return &Service{store: s, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Create stores a new session for the user and returns its token.
func (s *Service) Create(ctx context.Context, userID int64, username string) (string, error) {
	token := uuid.NewString()
	key := store.SessionKey(token)
	err := s.store.HashSetMulti(ctx, key, map[string]string{
		fieldUserID:   strconv.FormatInt(userID, 10),
		fieldUsername: username,
	})
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	if err := s.store.Expire(ctx, key, s.ttl); err != nil {
		return "", fmt.Errorf("expire session: %w", err)
	}
	return token, nil
}

// Lookup resolves a token to its principal.
func (s *Service) Lookup(ctx context.Context, token string) (*Principal, error) {
	fields, err := s.store.HashGetAll(ctx, store.SessionKey(token))
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrInvalidSession
	}
	userID, err := strconv.ParseInt(fields[fieldUserID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse session user id: %w", err)
	}
	return &Principal{UserID: userID, Username: fields[fieldUsername]}, nil
}
