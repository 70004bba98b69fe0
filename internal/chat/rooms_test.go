package chat

import (
	"testing"

	"github.com/rs/zerolog"
)

func newTestRooms() *RoomRouter {
	return NewRoomRouter(zerolog.Nop())
}

// newTestSession builds a session with no underlying connection; events pile
// up in the outbound queue for inspection.
func newTestSession(identity string) *Session {
	return NewSession(identity, nil, nil, zerolog.Nop())
}

// drain empties a session's outbound queue.
func drain(s *Session) []Event {
	var events []Event
	for {
		select {
		case ev := <-s.out:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestJoinIdempotent(t *testing.T) {
	r := newTestRooms()

	r.Join("alice", "lobby")
	r.Join("alice", "lobby")

	if got := len(r.Memberships("alice")); got != 1 {
		t.Errorf("expected 1 membership, got %d", got)
	}
}

func TestLeaveIdempotent(t *testing.T) {
	r := newTestRooms()
	r.Join("alice", "lobby")

	r.Leave("alice", "lobby")
	r.Leave("alice", "lobby")

	if got := len(r.Memberships("alice")); got != 0 {
		t.Errorf("expected no memberships, got %d", got)
	}
}

func TestBroadcastReachesSubscribersOnly(t *testing.T) {
	r := newTestRooms()
	alice := newTestSession("alice")
	bob := newTestSession("bob")
	r.Bind("alice", alice)
	r.Bind("bob", bob)
	r.Join("alice", "lobby")

	r.Broadcast("lobby", Event{Event: EventMessage})

	if got := len(drain(alice)); got != 1 {
		t.Errorf("subscriber should receive the event, got %d", got)
	}
	if got := len(drain(bob)); got != 0 {
		t.Errorf("non-subscriber should receive nothing, got %d", got)
	}
}

func TestBroadcastSkipsOffline(t *testing.T) {
	r := newTestRooms()
	r.Join("alice", "lobby")

	// No live session for alice; delivery is silently dropped.
	r.Broadcast("lobby", Event{Event: EventMessage})
}

func TestEmitTo(t *testing.T) {
	r := newTestRooms()
	alice := newTestSession("alice")
	bob := newTestSession("bob")
	r.Bind("alice", alice)
	r.Bind("bob", bob)

	r.EmitTo("alice", Event{Event: EventFriendUpdate})

	if got := len(drain(alice)); got != 1 {
		t.Errorf("expected 1 event for alice, got %d", got)
	}
	if got := len(drain(bob)); got != 0 {
		t.Errorf("expected no events for bob, got %d", got)
	}
}

func TestUnbindClearsMembership(t *testing.T) {
	r := newTestRooms()
	alice := newTestSession("alice")
	r.Bind("alice", alice)
	r.Join("alice", "lobby")

	if !r.Unbind("alice", alice) {
		t.Error("unbinding the live session should report removal")
	}

	if got := len(r.Memberships("alice")); got != 0 {
		t.Errorf("expected cleared memberships, got %d", got)
	}

	r.Broadcast("lobby", Event{Event: EventMessage})
	if got := len(drain(alice)); got != 0 {
		t.Errorf("unbound session should receive nothing, got %d", got)
	}
}

func TestUnbindIgnoresStaleSession(t *testing.T) {
	r := newTestRooms()
	old := newTestSession("alice")
	r.Bind("alice", old)
	replacement := newTestSession("alice")
	r.Bind("alice", replacement)

	// The stale session's disconnect must not evict the replacement.
	if r.Unbind("alice", old) {
		t.Error("a stale unbind should report nothing removed")
	}

	r.EmitTo("alice", Event{Event: EventMessage})
	if got := len(drain(replacement)); got != 1 {
		t.Errorf("replacement session should still be bound, got %d events", got)
	}
}

func TestBroadcastAll(t *testing.T) {
	r := newTestRooms()
	alice := newTestSession("alice")
	bob := newTestSession("bob")
	r.Bind("alice", alice)
	r.Bind("bob", bob)

	r.BroadcastAll(Event{Event: EventUserStatus})

	if len(drain(alice)) != 1 || len(drain(bob)) != 1 {
		t.Error("every live session should receive the event")
	}
}
