package chat

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
)

func TestHandleFrameRoutesSendMessage(t *testing.T) {
	e := newTestEngine()
	alice := e.connect(t, "alice")

	alice.handleFrame([]byte(`{"event":"send_message","data":{"channel":"lobby","message":"hi"}}`))

	if _, ok := findEvent(drain(alice), EventMessage); !ok {
		t.Error("send_message frame should produce a message event")
	}
	if e.history.Len("lobby") != 1 {
		t.Error("send_message frame should persist the record")
	}
}

func TestHandleFrameRoutesGroupAndInvite(t *testing.T) {
	e := newTestEngine()
	alice := e.connect(t, "alice")
	bob := e.connect(t, "bob")
	drain(alice)

	alice.handleFrame([]byte(`{"event":"join_group","data":{"group":"devs"}}`))
	if _, ok := findEvent(drain(alice), EventSystem); !ok {
		t.Error("join_group frame should produce a system notice")
	}

	alice.handleFrame([]byte(`{"event":"private_invite","data":{"to":"bob"}}`))
	if _, ok := findEvent(drain(bob), EventFriendUpdate); !ok {
		t.Error("private_invite frame should notify the target")
	}

	alice.handleFrame([]byte(`{"event":"leave_group","data":{"group":"devs"}}`))
	if got := len(e.rooms.Memberships("alice")); got != 1 { // self-room only
		t.Errorf("expected only the self-room membership, got %d", got)
	}
}

func TestHandleFrameIgnoresGarbage(t *testing.T) {
	e := newTestEngine()
	alice := e.connect(t, "alice")

	alice.handleFrame([]byte(`not json`))
	alice.handleFrame([]byte(`{"event":"no_such_event","data":{}}`))
	alice.handleFrame([]byte(`{"event":"send_message","data":"wrong shape"}`))

	if got := len(drain(alice)); got != 0 {
		t.Errorf("garbage frames must not surface events, got %d", got)
	}
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	s := NewSession("alice", nil, nil, zerolog.Nop())

	for i := 0; i < sendQueueSize; i++ {
		if !s.enqueue(Event{Event: fmt.Sprintf("ev-%d", i)}) {
			t.Fatalf("enqueue %d should succeed", i)
		}
	}
	if s.enqueue(Event{Event: "overflow"}) {
		t.Error("enqueue on a full queue must report false")
	}
}

func TestEnqueueAfterClose(t *testing.T) {
	s := NewSession("alice", nil, nil, zerolog.Nop())
	s.Close()
	s.Close() // safe to repeat

	if s.enqueue(Event{Event: EventMessage}) {
		t.Error("enqueue on a closed session must report false")
	}
}
