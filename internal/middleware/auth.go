package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"farm-market/internal/auth"
	"farm-market/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey int

const identityKey contextKey = iota

// Identity is the authenticated subject attached to a request.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// IdentityFrom extracts the authenticated identity from a request context.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// WithIdentity returns a context carrying the given identity. Exported
// for handler tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Authenticate verifies the bearer token and attaches the subject's
// identity to the request context. Verification is stateless: the
// subject is not looked up in the store.
func Authenticate(tokens *auth.TokenManager, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logger.Warn().Str("path", r.URL.Path).Msg("missing authorization header")
				writeAuthError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "missing bearer token")
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				logger.Warn().Str("path", r.URL.Path).Msg("malformed authorization header")
				writeAuthError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "malformed bearer token")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				logger.Warn().Str("path", r.URL.Path).Err(err).Msg("token verification failed")
				writeAuthError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "invalid or expired token")
				return
			}

			identity := Identity{UserID: claims.UserID, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireRole rejects authenticated requests whose role is not in the
// permitted set. It must run after Authenticate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "not authenticated")
				return
			}

			if !allowed[identity.Role] {
				writeAuthError(w, http.StatusForbidden, model.ErrCodeForbidden, "role not permitted for this operation")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: code, Message: message})
}
