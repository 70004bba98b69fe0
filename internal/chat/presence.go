package chat

import "sync"

// Presence tracks which identities currently hold an active claim. It is the
// source of truth for "is user X online" and enforces at most one active
// claim per identity.
type Presence struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewPresence creates an empty presence registry.
func NewPresence() *Presence {
	return &Presence{active: make(map[string]struct{})}
}

// Claim registers an identity as active. It returns ErrIdentityActive if the
// identity is already claimed.
func (p *Presence) Claim(identity string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.active[identity]; ok {
		return ErrIdentityActive
	}
	p.active[identity] = struct{}{}
	return nil
}

// Release removes an identity's claim and reports whether it was present.
// Callers use the return value to decide whether an offline event is due, so
// a concurrent double-release never produces a duplicate event.
func (p *Presence) Release(identity string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.active[identity]; !ok {
		return false
	}
	delete(p.active, identity)
	return true
}

// IsActive reports whether an identity currently holds a claim.
func (p *Presence) IsActive(identity string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.active[identity]
	return ok
}

// Count returns the number of active identities.
func (p *Presence) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.active)
}
