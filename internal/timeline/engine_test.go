package timeline

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/tareqmn/microblog/internal/follow"
	"github.com/tareqmn/microblog/internal/ident"
	"github.com/tareqmn/microblog/internal/post"
	"github.com/tareqmn/microblog/internal/store"
)

// allUsersExist is a directory stub for the follow service: every
// username resolves.
type allUsersExist struct{}

func (allUsersExist) FindIDByUsername(context.Context, string) (int64, error) { return 1, nil }

type fixture struct {
	engine *Engine
	reader *Reader
	repo   *Repository
	graph  *follow.Service
	posts  *post.Service
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return newFixtureOn(store.NewRedis(client))
}

func newFixtureOn(kv store.Store) *fixture {
	graph := follow.NewService(follow.NewRepository(kv), allUsersExist{})
	posts := post.NewService(post.NewRepository(kv), ident.NewAllocator(kv))
	repo := NewRepository(kv)
	return &fixture{
		engine: NewEngine(repo, posts, graph, quietLogger()),
		reader: NewReader(repo, posts),
		repo:   repo,
		graph:  graph,
		posts:  posts,
	}
}

func (f *fixture) mustFollow(t *testing.T, follower, followee string) {
	t.Helper()
	if err := f.graph.Follow(context.Background(), follower, followee); err != nil {
		t.Fatalf("follow %s -> %s: %v", follower, followee, err)
	}
}

func (f *fixture) head(t *testing.T, username string) []int64 {
	t.Helper()
	ids, err := f.repo.Range(context.Background(), username, DefaultWindow)
	if err != nil {
		t.Fatalf("range %s: %v", username, err)
	}
	return ids
}

func TestPublishDeliversToSelfAndFollowers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mustFollow(t, "bob", "alice")
	f.mustFollow(t, "carol", "alice")

	postID, err := f.engine.Publish(ctx, "alice", 1, "hello")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	for _, username := range []string{"alice", "bob", "carol"} {
		ids := f.head(t, username)
		if len(ids) == 0 || ids[0] != postID {
			t.Fatalf("expected %s timeline to start with %d, got %v", username, postID, ids)
		}
	}
	if ids := f.head(t, "dave"); len(ids) != 0 {
		t.Fatalf("expected empty timeline for non-follower, got %v", ids)
	}
}

func TestPublishOrdersNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.engine.Publish(ctx, "alice", 1, "first")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	second, err := f.engine.Publish(ctx, "alice", 1, "second")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	ids := f.head(t, "alice")
	if len(ids) != 2 || ids[0] != second || ids[1] != first {
		t.Fatalf("expected [%d %d], got %v", second, first, ids)
	}
}

func TestPublishRejectsEmptyMessage(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Publish(context.Background(), "alice", 1, "")
	if !errors.Is(err, post.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if ids := f.head(t, "alice"); len(ids) != 0 {
		t.Fatalf("expected no timeline entries after rejected publish, got %v", ids)
	}
}

func TestPublishIsNotIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.engine.Publish(ctx, "alice", 1, "same message")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	b, err := f.engine.Publish(ctx, "alice", 1, "same message")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct post ids, got %d twice", a)
	}
	if ids := f.head(t, "alice"); len(ids) != 2 {
		t.Fatalf("expected two timeline entries, got %v", ids)
	}
}

func TestConcurrentPublishesDoNotCrossContaminate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mustFollow(t, "bob", "alice")
	f.mustFollow(t, "dave", "carol")

	const perAuthor = 10
	var wg sync.WaitGroup
	for _, author := range []string{"alice", "carol"} {
		author := author
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perAuthor; j++ {
				if _, err := f.engine.Publish(ctx, author, 1, "from "+author); err != nil {
					t.Errorf("publish by %s: %v", author, err)
				}
			}
		}()
	}
	wg.Wait()

	checks := map[string]string{"bob": "alice", "dave": "carol"}
	for username, wantAuthor := range checks {
		ids := f.head(t, username)
		if len(ids) != perAuthor {
			t.Fatalf("expected %d entries for %s, got %d", perAuthor, username, len(ids))
		}
		for _, id := range ids {
			rec, err := f.posts.Get(ctx, id)
			if err != nil {
				t.Fatalf("get post %d: %v", id, err)
			}
			if rec.AuthorUsername != wantAuthor {
				t.Fatalf("%s received post by %s", username, rec.AuthorUsername)
			}
		}
	}
}

// pushFailingStore fails timeline pushes for one key and delegates
// everything else.
type pushFailingStore struct {
	store.Store
	failKey string
}

func (s *pushFailingStore) ListPushFront(ctx context.Context, key, value string) error {
	if key == s.failKey {
		return store.ErrUnavailable
	}
	return s.Store.ListPushFront(ctx, key, value)
}

func TestFanoutIsolatesFollowerFailures(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	kv := &pushFailingStore{Store: store.NewRedis(client), failKey: store.TimelineKey("carol")}
	f := newFixtureOn(kv)
	ctx := context.Background()

	f.mustFollow(t, "bob", "alice")
	f.mustFollow(t, "carol", "alice")

	postID, err := f.engine.Publish(ctx, "alice", 1, "hello")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	// The author and the healthy follower still got the post.
	for _, username := range []string{"alice", "bob"} {
		ids := f.head(t, username)
		if !slices.Contains(ids, postID) {
			t.Fatalf("expected %s timeline to contain %d, got %v", username, postID, ids)
		}
	}
	if got := f.engine.FanoutFailures(); got != 1 {
		t.Fatalf("expected 1 recorded fan-out failure, got %d", got)
	}
}

func TestPublishFailsWhenAuthorAppendFails(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	kv := &pushFailingStore{Store: store.NewRedis(client), failKey: store.TimelineKey("alice")}
	f := newFixtureOn(kv)

	_, err := f.engine.Publish(context.Background(), "alice", 1, "hello")
	if !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestTimelineCapEnforcedAtPush(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < Cap+5; i++ {
		if err := f.repo.Push(ctx, "alice", int64(i+1)); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}

	ids, err := f.repo.Range(ctx, "alice", Cap+10)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(ids) != Cap {
		t.Fatalf("expected timeline capped at %d, got %d", Cap, len(ids))
	}
	if ids[0] != int64(Cap+5) {
		t.Fatalf("expected newest entry %d first, got %d", Cap+5, ids[0])
	}
}
