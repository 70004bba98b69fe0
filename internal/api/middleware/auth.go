package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/parlorchat/parlor/internal/session"
)

type contextKey string

// IdentityContextKey carries the authenticated identity through the request
// context.
const IdentityContextKey contextKey = "identity"

// SessionAuth guards routes that need an authenticated identity.
type SessionAuth struct {
	sessions *session.Manager
}

// NewSessionAuth creates the auth middleware over a session manager.
func NewSessionAuth(sessions *session.Manager) *SessionAuth {
	return &SessionAuth{sessions: sessions}
}

// RequireSession resolves the session cookie to an identity and stores it in
// the request context, or rejects the request with 401.
func (a *SessionAuth) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _, ok := a.sessions.FromRequest(r)
		if !ok {
			jsonError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext retrieves the authenticated identity from the request
// context, or "" when the route ran without RequireSession.
func IdentityFromContext(ctx context.Context) string {
	identity, _ := ctx.Value(IdentityContextKey).(string)
	return identity
}

func jsonError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
