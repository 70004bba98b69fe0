package chat

import (
	"errors"
	"testing"
)

func TestClaimReleaseCycle(t *testing.T) {
	p := NewPresence()

	if err := p.Claim("alice"); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if !p.IsActive("alice") {
		t.Error("alice should be active after claim")
	}

	if err := p.Claim("alice"); !errors.Is(err, ErrIdentityActive) {
		t.Fatalf("second claim: expected ErrIdentityActive, got %v", err)
	}

	if !p.Release("alice") {
		t.Error("release should report the identity was present")
	}
	if p.IsActive("alice") {
		t.Error("alice should not be active after release")
	}

	if err := p.Claim("alice"); err != nil {
		t.Fatalf("claim after release failed: %v", err)
	}
}

func TestReleaseAbsent(t *testing.T) {
	p := NewPresence()

	if p.Release("ghost") {
		t.Error("release of an unclaimed identity should report false")
	}
}

func TestCount(t *testing.T) {
	p := NewPresence()
	p.Claim("alice")
	p.Claim("bob")

	if got := p.Count(); got != 2 {
		t.Errorf("expected 2 active, got %d", got)
	}
}
