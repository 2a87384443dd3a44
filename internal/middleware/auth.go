// Package middleware provides HTTP middleware for session resolution,
// role-based authorization, and request protection.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Yigit-Sert/library-portal/internal/model"
	"github.com/Yigit-Sert/library-portal/internal/relay"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request-scoped data.
const (
	ContextKeySession     ContextKey = "session"
	ContextKeyRequestPath ContextKey = "request_path"
)

// ResolveSession creates middleware that resolves the caller's identity
// against the backend once per request and stores it in the request context.
// Resolution never fails the request: any backend error, including an
// explicit 401, collapses to an anonymous session. An anonymous visitor is
// an expected state, not an error, so nothing is surfaced to the user.
func ResolveSession(client *relay.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := client.Me(r.Context(), relay.CredentialsFromRequest(r))
			if err != nil {
				session = nil
				// Only log unexpected failures; a plain 401 is just an
				// anonymous visitor.
				if !errors.Is(err, relay.ErrUnauthorized) && !errors.Is(err, relay.ErrForbidden) {
					slog.Debug("session resolution failed", "error", err)
				}
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession retrieves the resolved session from the request context.
// Returns nil for anonymous visitors.
func GetSession(r *http.Request) *model.Session {
	session, ok := r.Context().Value(ContextKeySession).(*model.Session)
	if !ok {
		return nil
	}
	return session
}

// RequireAuth creates middleware that requires a resolved session and
// redirects anonymous visitors to the landing page.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetSession(r) == nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole creates middleware that requires a minimum backend role.
// Roles are hierarchical: ADMIN > PERSONNEL > MEMBER. Anonymous visitors
// are redirected to the landing page; authenticated users below the
// minimum get 403.
func RequireRole(minRole model.Role) func(http.Handler) http.Handler {
	minLevel := minRole.Level()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSession(r)
			if session == nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			if session.Role.Level() < minLevel {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_role", session.Role,
					"required_role", minRole,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireExactRole creates middleware that requires one specific role.
// Member-only routes use this: the member dashboard is not part of the
// staff hierarchy.
func RequireExactRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSession(r)
			if session == nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			if session.Role != role {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_role", session.Role,
					"required_role", role,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestPath creates middleware that stores the request path in the context
// for logging.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}
