package session

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/tareqmn/microblog/internal/store"
)

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewService(store.NewRedis(client), time.Hour), mr
}

func TestCreateAndLookup(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	token, err := s.Create(ctx, 7, "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	p, err := s.Lookup(ctx, token)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if p.UserID != 7 || p.Username != "alice" {
		t.Fatalf("expected principal 7/alice, got %d/%s", p.UserID, p.Username)
	}
}

func TestLookupUnknownToken(t *testing.T) {
	s, _ := newTestService(t)

	if _, err := s.Lookup(context.Background(), "nope"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestSessionExpires(t *testing.T) {
	s, mr := newTestService(t)
	ctx := context.Background()

	token, err := s.Create(ctx, 7, "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := s.Lookup(ctx, token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession after expiry, got %v", err)
	}
}

func TestMiddleware(t *testing.T) {
	s, _ := newTestService(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	var seen *Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := s.Middleware(log)(next)

	// No token at all.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	// Garbage token.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}

	// Valid token via cookie.
	token, err := s.Create(context.Background(), 7, "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
	if seen == nil || seen.Username != "alice" {
		t.Fatalf("expected principal alice in context, got %+v", seen)
	}

	// Valid token via bearer header.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d", rec.Code)
	}
}
