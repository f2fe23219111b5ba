package middleware

import (
	"context"
	"net/http"

	"github.com/OrganizeVA/turf-backend/internal/editor"
	"github.com/OrganizeVA/turf-backend/internal/utils"
	"golang.org/x/time/rate"
)

const sessionCookie = "turf_session"

// SessionStore is implemented by editor.Store. Split out so the middleware
// can be tested without a real dataset behind it.
type SessionStore interface {
	Fetch(id string) (*editor.Session, bool)
	Create() *editor.Session
}

// SessionMiddleware resolves the turf_session cookie to an editing session,
// creating one on demand. The dashboard has no accounts, so an unknown or
// expired cookie simply means a fresh session with an untouched working
// copy. The session rides the request context.
func SessionMiddleware(store SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var session *editor.Session
			if cookie, err := r.Cookie(sessionCookie); err == nil {
				session, _ = store.Fetch(cookie.Value)
			}
			if session == nil {
				session = store.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    session.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), utils.ContextSessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext retrieves the session placed there by SessionMiddleware.
func SessionFromContext(ctx context.Context) (*editor.Session, bool) {
	s, ok := ctx.Value(utils.ContextSessionKey).(*editor.Session)
	return s, ok
}

// CORSMiddleware echoes the origin back only if it's on the allow-list.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin") // important for caches
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods",
					"GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers",
					"Content-Type, Authorization")
			}

			w.Header().Set("Access-Control-Expose-Headers", "Retry-After, Cache-Control, Content-Disposition")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware guards the CSV download endpoints. Exports walk the
// whole working copy, so a stuck frontend retry loop shouldn't be allowed to
// hammer them.
func RateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Too many download requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
