package session

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tareqmn/microblog/internal/store"
	"github.com/tareqmn/microblog/pkg/response"
)

// CookieName is the cookie carrying the session token.
const CookieName = "session"

// contextKey is a private type so nothing outside this package can
// collide with the principal key.
type contextKey struct{}

var principalKey contextKey

// Middleware resolves the session token from the request and puts the
// principal into the request context. Requests with no valid session get
// a 401 before reaching the handler.
func (s *Service) Middleware(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				response.Unauthorized(w, "Login required")
				return
			}

			principal, err := s.Lookup(r.Context(), token)
			if err != nil {
				if errors.Is(err, store.ErrUnavailable) {
					log.WithError(err).Error("session lookup failed")
					response.ServiceUnavailable(w, "Session store unavailable")
					return
				}
				response.Unauthorized(w, "Invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the authenticated principal, if any.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}

// SetCookie attaches the session token to the response.
func SetCookie(w http.ResponseWriter, token string, ttlSeconds int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   ttlSeconds,
		HttpOnly: true,
	})
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
