package chat

import (
	"sync"

	"github.com/rs/zerolog"
)

// RoomRouter maps identities to the channels they are subscribed to for live
// delivery and holds the live session per identity. Delivery is best-effort:
// events for identities without a live session, or with a full queue, are
// dropped. Offline parties only ever see history.
type RoomRouter struct {
	logger zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	members  map[string]map[string]struct{} // channel key -> identities
	joined   map[string]map[string]struct{} // identity -> channel keys
}

// NewRoomRouter creates an empty router.
func NewRoomRouter(logger zerolog.Logger) *RoomRouter {
	return &RoomRouter{
		logger:   logger.With().Str("component", "rooms").Logger(),
		sessions: make(map[string]*Session),
		members:  make(map[string]map[string]struct{}),
		joined:   make(map[string]map[string]struct{}),
	}
}

// selfKey is the channel key of an identity's self-room, joined implicitly
// on connect and used for point-to-point delivery.
func selfKey(identity string) string {
	return "user:" + identity
}

// Bind registers a live session for an identity and joins its self-room.
// A previous session for the same identity is closed and replaced.
func (r *RoomRouter) Bind(identity string, s *Session) {
	r.mu.Lock()
	prev := r.sessions[identity]
	r.sessions[identity] = s
	r.join(identity, selfKey(identity))
	r.mu.Unlock()

	if prev != nil && prev != s {
		r.logger.Debug().Str("identity", identity).Msg("replacing live session")
		prev.Close()
	}
}

// Unbind removes an identity's session and clears its whole membership set.
// It reports whether s was the bound session; a stale disconnect from a
// replaced socket removes nothing and cannot evict a newer connection.
func (r *RoomRouter) Unbind(identity string, s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.sessions[identity]; !ok || cur != s {
		return false
	}
	delete(r.sessions, identity)

	for key := range r.joined[identity] {
		r.leave(identity, key)
	}
	delete(r.joined, identity)
	return true
}

// Join subscribes an identity to a channel key. Idempotent.
func (r *RoomRouter) Join(identity, channelKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.join(identity, channelKey)
}

func (r *RoomRouter) join(identity, channelKey string) {
	ids, ok := r.members[channelKey]
	if !ok {
		ids = make(map[string]struct{})
		r.members[channelKey] = ids
	}
	ids[identity] = struct{}{}

	keys, ok := r.joined[identity]
	if !ok {
		keys = make(map[string]struct{})
		r.joined[identity] = keys
	}
	keys[channelKey] = struct{}{}
}

// Leave unsubscribes an identity from a channel key. Idempotent.
func (r *RoomRouter) Leave(identity, channelKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.leave(identity, channelKey)
	delete(r.joined[identity], channelKey)
}

func (r *RoomRouter) leave(identity, channelKey string) {
	ids := r.members[channelKey]
	delete(ids, identity)
	if len(ids) == 0 {
		delete(r.members, channelKey)
	}
}

// Memberships returns the channel keys an identity is subscribed to.
func (r *RoomRouter) Memberships(identity string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.joined[identity]))
	for key := range r.joined[identity] {
		keys = append(keys, key)
	}
	return keys
}

// Broadcast delivers an event to every live session subscribed to a channel
// key. Synchronous fan-out, no queuing beyond the per-session buffer, no
// retry.
func (r *RoomRouter) Broadcast(channelKey string, ev Event) {
	for _, s := range r.subscribers(channelKey) {
		if !s.enqueue(ev) {
			r.logger.Warn().
				Str("identity", s.Identity()).
				Str("channel", channelKey).
				Str("event", ev.Event).
				Msg("dropping event for slow session")
		}
	}
}

// EmitTo delivers an event to a single identity's self-room.
func (r *RoomRouter) EmitTo(identity string, ev Event) {
	r.Broadcast(selfKey(identity), ev)
}

// BroadcastAll delivers an event to every live session regardless of
// membership. Used for presence changes.
func (r *RoomRouter) BroadcastAll(ev Event) {
	r.mu.Lock()
	targets := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		targets = append(targets, s)
	}
	r.mu.Unlock()

	for _, s := range targets {
		if !s.enqueue(ev) {
			r.logger.Warn().
				Str("identity", s.Identity()).
				Str("event", ev.Event).
				Msg("dropping event for slow session")
		}
	}
}

// subscribers snapshots the live sessions subscribed to a channel key so
// delivery happens outside the lock.
func (r *RoomRouter) subscribers(channelKey string) []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.members[channelKey]
	targets := make([]*Session, 0, len(ids))
	for id := range ids {
		if s, ok := r.sessions[id]; ok {
			targets = append(targets, s)
		}
	}
	return targets
}
