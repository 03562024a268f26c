package auth

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

// SessionCookie is the name of the HttpOnly cookie carrying the session token.
const SessionCookie = "session"

// contextKey is unexported so only this package can place or read the
// user ID in a request context.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth guards the admin routes. It reads the session cookie,
// validates the token and stores the user ID in the request context.
// Requests without a valid session get a 401 and never reach the
// wrapped handler.
func RequireAuth(tokens *TokenService, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				logger.Warn().Str("path", r.URL.Path).Msg("unauthenticated admin request")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": "UNAUTHORIZED", "message": "valid session required"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

// ContextWithUserID returns a context carrying the authenticated user's
// ID. Handlers reach it back out with UserIDFromContext.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user's ID, or ("", false)
// for an anonymous request.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// extractUserID reads and validates the session cookie.
func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", err
	}
	return tokens.Validate(cookie.Value)
}
