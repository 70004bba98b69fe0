package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenLifecycle(t *testing.T) {
	m := NewManager()

	token := m.Create("alice")
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	identity, ok := m.Identity(token)
	if !ok || identity != "alice" {
		t.Fatalf("expected alice, got %q (ok=%v)", identity, ok)
	}

	m.Destroy(token)
	if _, ok := m.Identity(token); ok {
		t.Error("token should be gone after destroy")
	}
	m.Destroy(token) // unknown tokens are ignored
}

func TestDestroyIdentity(t *testing.T) {
	m := NewManager()
	t1 := m.Create("alice")
	t2 := m.Create("alice")
	t3 := m.Create("bob")

	m.DestroyIdentity("alice")

	if _, ok := m.Identity(t1); ok {
		t.Error("first alice token should be gone")
	}
	if _, ok := m.Identity(t2); ok {
		t.Error("second alice token should be gone")
	}
	if identity, ok := m.Identity(t3); !ok || identity != "bob" {
		t.Error("other identities' tokens must survive")
	}
}

func TestTokensAreUnique(t *testing.T) {
	m := NewManager()

	if m.Create("alice") == m.Create("alice") {
		t.Error("two sessions must not share a token")
	}
}

func TestFromRequest(t *testing.T) {
	m := NewManager()
	token := m.Create("alice")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, _, ok := m.FromRequest(req); ok {
		t.Error("request without a cookie should not resolve")
	}

	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	identity, gotToken, ok := m.FromRequest(req)
	if !ok || identity != "alice" || gotToken != token {
		t.Errorf("unexpected resolution: %q %q %v", identity, gotToken, ok)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "stale"})
	if _, _, ok := m.FromRequest(req); ok {
		t.Error("stale token should not resolve")
	}
}
