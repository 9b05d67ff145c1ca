package user

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/crypto/bcrypt"
)

// Common errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrWrongPassword    = errors.New("wrong password")
	ErrEmptyCredentials = errors.New("username and password are required")
)

// IDAllocator issues user ids.
type IDAllocator interface {
	NextUserID(ctx context.Context) (int64, error)
}

// FollowingLister reports who a user already follows; used to filter
// follow suggestions.
type FollowingLister interface {
	Following(ctx context.Context, username string) ([]string, error)
}

// Service handles user business logic
type Service struct {
	repo      *Repository
	allocator IDAllocator
	following FollowingLister
}

// NewService creates a new user service with its dependencies injected.
func NewService(repo *Repository, allocator IDAllocator, following FollowingLister) *Service {
	return &Service{repo: repo, allocator: allocator, following: following}
}

// Signup registers a new user: hashes the password, allocates an id and
// claims the username. Input is validated before any store mutation. When
// two signups race on the same username, exactly one claims it; the loser
// gets ErrUsernameTaken and leaves no record behind.
func (s *Service) Signup(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.allocator.NextUserID(ctx)
	if err != nil {
		return nil, err
	}

	claimed, err := s.repo.ClaimUsername(ctx, username, id)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrUsernameTaken
	}

	u := &User{ID: id, Username: username, CredentialHash: string(hash)}
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login authenticates a user against the stored credential hash.
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	id, err := s.repo.FindIDByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, ErrUserNotFound
	}

	hash, err := s.repo.CredentialHash(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	return &User{ID: id, Username: username, CredentialHash: hash}, nil
}

// FindIDByUsername resolves a username to its user id.
func (s *Service) FindIDByUsername(ctx context.Context, username string) (int64, error) {
	id, err := s.repo.FindIDByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, ErrUserNotFound
	}
	return id, nil
}

// GetByID retrieves a user by id.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// CredentialHash exposes the stored hash to the authentication layer.
func (s *Service) CredentialHash(ctx context.Context, username string) (string, error) {
	id, err := s.FindIDByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return s.repo.CredentialHash(ctx, id)
}

// Suggestions lists registered usernames the given user does not follow
// yet, excluding the user themselves.
func (s *Service) Suggestions(ctx context.Context, username string) ([]string, error) {
	all, err := s.repo.ListUsernames(ctx)
	if err != nil {
		return nil, err
	}
	following, err := s.following.Following(ctx, username)
	if err != nil {
		return nil, err
	}

	suggestions := make([]string, 0, len(all))
	for _, name := range all {
		if name == username || slices.Contains(following, name) {
			continue
		}
		suggestions = append(suggestions, name)
	}
	return suggestions, nil
}
