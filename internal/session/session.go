// Package session maps opaque cookie tokens to claimed identities. Tokens
// live in memory only; restarting the server logs everyone out, which matches
// the in-memory presence model.
package session

import (
	"net/http"
	"sync"

	"github.com/oklog/ulid/v2"
)

// CookieName is the cookie carrying the session token.
const CookieName = "parlor_session"

// Manager is a mutex-guarded token store.
type Manager struct {
	mu      sync.RWMutex
	byToken map[string]string
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{byToken: make(map[string]string)}
}

// Create issues a fresh token for an identity.
func (m *Manager) Create(identity string) string {
	token := ulid.Make().String()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.byToken[token] = identity
	return token
}

// Identity resolves a token to the identity it was issued for.
func (m *Manager) Identity(token string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	identity, ok := m.byToken[token]
	return identity, ok
}

// Destroy invalidates a token. Unknown tokens are ignored.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byToken, token)
}

// DestroyIdentity invalidates every token issued for an identity. Called when
// the identity's presence claim is released.
func (m *Manager) DestroyIdentity(identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, id := range m.byToken {
		if id == identity {
			delete(m.byToken, token)
		}
	}
}

// FromRequest resolves the session identity from a request's cookie.
func (m *Manager) FromRequest(r *http.Request) (identity, token string, ok bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", "", false
	}
	identity, ok = m.Identity(c.Value)
	return identity, c.Value, ok
}

// SetCookie attaches a session cookie to a response.
func SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
