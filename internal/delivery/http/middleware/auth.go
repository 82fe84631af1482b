package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "eventsapi/internal/delivery/http/helpers"
	"eventsapi/internal/domain"
)

type contextKey string

const accountKey contextKey = "account"

// SetCurrentAccount returns a context carrying the authenticated account.
func SetCurrentAccount(ctx context.Context, account *domain.Account) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

// CurrentAccount returns the authenticated account, or nil for an anonymous request.
func CurrentAccount(ctx context.Context) *domain.Account {
	a, _ := ctx.Value(accountKey).(*domain.Account)
	return a
}

// RequireAuth returns a wrapper that resolves the Bearer token to an account and sets it
// in the request context. Without a valid token it responds with 401 and does not call next.
func RequireAuth(authn domain.AuthService, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				unauthorized(w, "missing authorization header")
				return
			}
			authenticate(authn, logger, next)(w, r)
		}
	}
}

// OptionalAuth is RequireAuth for endpoints that also serve anonymous callers. A request
// without an Authorization header passes through with no account; a bad token is still 401.
func OptionalAuth(authn domain.AuthService, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next(w, r)
				return
			}
			authenticate(authn, logger, next)(w, r)
		}
	}
}

func authenticate(authn domain.AuthService, logger *slog.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if len(auth) < len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
			unauthorized(w, "invalid authorization format")
			return
		}
		token := strings.TrimSpace(auth[len(prefix):])
		if token == "" {
			unauthorized(w, "missing token")
			return
		}
		account, err := authn.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidToken) {
				unauthorized(w, "invalid or expired token")
				return
			}
			logger.ErrorContext(r.Context(), "token check failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal error")
			return
		}
		next(w, r.WithContext(SetCurrentAccount(r.Context(), account)))
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="eventsapi", error="invalid_token"`)
	h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, message)
}
