package follow

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrEmptyUsername = errors.New("username is required")
	ErrSelfFollow    = errors.New("cannot follow yourself")
	ErrUnknownUser   = errors.New("unknown user")
)

// Directory resolves usernames; a zero id means the username is not
// registered.
type Directory interface {
	FindIDByUsername(ctx context.Context, username string) (int64, error)
}

// Service handles follow-graph business logic.
type Service struct {
	repo      *Repository
	directory Directory
}

// NewService creates a new follow service with its dependencies injected.
func NewService(repo *Repository, directory Directory) *Service {
	return &Service{repo: repo, directory: directory}
}

// Follow adds the directed edge follower -> followee. Both usernames must
// exist and differ; validation happens before any store mutation. The
// operation is idempotent: re-adding an existing edge changes nothing.
func (s *Service) Follow(ctx context.Context, follower, followee string) error {
	if follower == "" || followee == "" {
		return ErrEmptyUsername
	}
	if follower == followee {
		return ErrSelfFollow
	}

	for _, username := range []string{follower, followee} {
		id, err := s.directory.FindIDByUsername(ctx, username)
		if err != nil {
			return err
		}
		if id == 0 {
			return ErrUnknownUser
		}
	}

	return s.repo.AddEdge(ctx, follower, followee)
}

// Following returns who the user follows.
func (s *Service) Following(ctx context.Context, username string) ([]string, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	return s.repo.Following(ctx, username)
}

// Followers returns who follows the user.
func (s *Service) Followers(ctx context.Context, username string) ([]string, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	return s.repo.Followers(ctx, username)
}
