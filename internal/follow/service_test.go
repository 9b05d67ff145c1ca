package follow

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tareqmn/microblog/internal/store"
)

// knownUsers is a directory stub: every listed username resolves.
type knownUsers map[string]int64

func (d knownUsers) FindIDByUsername(_ context.Context, username string) (int64, error) {
	return d[username], nil
}

func newTestService(t *testing.T, users knownUsers) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewService(NewRepository(store.NewRedis(client)), users)
}

func TestFollowSymmetry(t *testing.T) {
	s := newTestService(t, knownUsers{"alice": 1, "bob": 2, "carol": 3})
	ctx := context.Background()

	calls := [][2]string{{"alice", "bob"}, {"carol", "bob"}, {"alice", "carol"}}
	for i, c := range calls {
		if err := s.Follow(ctx, c[0], c[1]); err != nil {
			t.Fatalf("follow %v: %v", c, err)
		}

		// After every call, both directions agree for every edge so far.
		for _, e := range calls[:i+1] {
			following, err := s.Following(ctx, e[0])
			if err != nil {
				t.Fatalf("following: %v", err)
			}
			followers, err := s.Followers(ctx, e[1])
			if err != nil {
				t.Fatalf("followers: %v", err)
			}
			if !slices.Contains(following, e[1]) || !slices.Contains(followers, e[0]) {
				t.Fatalf("asymmetric or missing edge %v: following=%v followers=%v", e, following, followers)
			}
		}
	}
}

func TestFollowIdempotent(t *testing.T) {
	s := newTestService(t, knownUsers{"alice": 1, "bob": 2})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := s.Follow(ctx, "alice", "bob"); err != nil {
			t.Fatalf("follow: %v", err)
		}
	}

	following, err := s.Following(ctx, "alice")
	if err != nil {
		t.Fatalf("following: %v", err)
	}
	if len(following) != 1 || following[0] != "bob" {
		t.Fatalf("expected [bob], got %v", following)
	}
	followers, err := s.Followers(ctx, "bob")
	if err != nil {
		t.Fatalf("followers: %v", err)
	}
	if len(followers) != 1 || followers[0] != "alice" {
		t.Fatalf("expected [alice], got %v", followers)
	}
}

func TestFollowValidation(t *testing.T) {
	s := newTestService(t, knownUsers{"alice": 1, "bob": 2})
	ctx := context.Background()

	if err := s.Follow(ctx, "", "bob"); !errors.Is(err, ErrEmptyUsername) {
		t.Fatalf("expected ErrEmptyUsername, got %v", err)
	}
	if err := s.Follow(ctx, "alice", "alice"); !errors.Is(err, ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
	if err := s.Follow(ctx, "alice", "ghost"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}

	// No half edge escaped a rejected call.
	following, err := s.Following(ctx, "alice")
	if err != nil {
		t.Fatalf("following: %v", err)
	}
	if len(following) != 0 {
		t.Fatalf("expected no edges, got %v", following)
	}
}

func TestRelationReadsAreMembershipOnly(t *testing.T) {
	s := newTestService(t, knownUsers{"alice": 1, "bob": 2, "carol": 3})
	ctx := context.Background()

	if err := s.Follow(ctx, "bob", "alice"); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := s.Follow(ctx, "carol", "alice"); err != nil {
		t.Fatalf("follow: %v", err)
	}

	followers, err := s.Followers(ctx, "alice")
	if err != nil {
		t.Fatalf("followers: %v", err)
	}
	slices.Sort(followers)
	if len(followers) != 2 || followers[0] != "bob" || followers[1] != "carol" {
		t.Fatalf("expected bob and carol, got %v", followers)
	}
}
