package post

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrEmptyMessage = errors.New("message is required")
	ErrPostNotFound = errors.New("post not found")
)

// IDAllocator issues post ids.
type IDAllocator interface {
	NextPostID(ctx context.Context) (int64, error)
}

// Service handles post business logic.
type Service struct {
	repo      *Repository
	allocator IDAllocator
}

// NewService creates a new post service with its dependencies injected.
func NewService(repo *Repository, allocator IDAllocator) *Service {
	return &Service{repo: repo, allocator: allocator}
}

// Create allocates an id, persists the record and returns the id only
// after the write succeeded. The message is stored verbatim; an empty
// message is rejected before anything is written.
func (s *Service) Create(ctx context.Context, authorUserID int64, authorUsername, message string, createdAtMs int64) (int64, error) {
	if message == "" {
		return 0, ErrEmptyMessage
	}

	id, err := s.allocator.NextPostID(ctx)
	if err != nil {
		return 0, err
	}

	rec := &Record{
		ID:             id,
		AuthorUserID:   authorUserID,
		AuthorUsername: authorUsername,
		Message:        message,
		CreatedAtMs:    createdAtMs,
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return 0, err
	}
	return id, nil
}

// Get retrieves a post record by id.
func (s *Service) Get(ctx context.Context, id int64) (*Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrPostNotFound
	}
	return rec, nil
}
