package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/parlorchat/parlor/internal/metrics"
)

// Rejection messages sent back to the originator. Other parties are never
// informed of a rejected request.
const (
	msgGroupNotFound = "Group not found."
	msgUserNotFound  = "User is not available."
	msgNotConnected  = "You are not connected with this user."
)

// Dispatcher orchestrates every inbound action: it validates input, resolves
// channels, writes history, and fans events out through the room router. All
// engine state is owned by the service objects passed in at construction.
type Dispatcher struct {
	logger   zerolog.Logger
	presence *Presence
	friends  *FriendGraph
	groups   *GroupRegistry
	resolver *Resolver
	history  *HistoryStore
	rooms    *RoomRouter

	tailLimit int
	now       func() time.Time
	onRelease func(identity string)
}

// NewDispatcher wires the engine together. tailLimit bounds history reads;
// zero or negative falls back to DefaultTail.
func NewDispatcher(logger zerolog.Logger, presence *Presence, friends *FriendGraph, groups *GroupRegistry, history *HistoryStore, rooms *RoomRouter, tailLimit int) *Dispatcher {
	if tailLimit <= 0 {
		tailLimit = DefaultTail
	}
	return &Dispatcher{
		logger:    logger.With().Str("component", "dispatcher").Logger(),
		presence:  presence,
		friends:   friends,
		groups:    groups,
		resolver:  NewResolver(groups, friends),
		history:   history,
		rooms:     rooms,
		tailLimit: tailLimit,
		now:       time.Now,
	}
}

// Friends exposes the friend graph so the authentication collaborator can
// seed a starter social graph at claim time.
func (d *Dispatcher) Friends() *FriendGraph { return d.friends }

// Groups exposes the group registry for listing and seeding.
func (d *Dispatcher) Groups() *GroupRegistry { return d.groups }

// OnRelease registers a callback fired each time an identity's claim is
// released. The HTTP layer uses it to invalidate the identity's session
// tokens, so a stale cookie cannot rebind a released name.
func (d *Dispatcher) OnRelease(fn func(identity string)) {
	d.onRelease = fn
}

// Welcome appends a system record to a group's history without broadcasting
// it, used by the login path to greet newcomers in the default group.
func (d *Dispatcher) Welcome(groupID, message string) {
	if !d.groups.Contains(groupID) {
		return
	}
	d.history.Append(groupID, Record{
		Channel:   groupID,
		From:      SystemFrom,
		Message:   message,
		Timestamp: d.timestamp(),
	})
}

// Claim registers an identity as active. ErrIdentityActive when the
// username is already claimed.
func (d *Dispatcher) Claim(identity string) error {
	if err := d.presence.Claim(identity); err != nil {
		return err
	}
	metrics.OnlineUsers.Inc()
	d.logger.Info().Str("identity", identity).Msg("identity claimed")
	return nil
}

// Logout releases an identity's claim. The offline broadcast only fires when
// the claim was actually held, so logout racing a disconnect emits one event.
func (d *Dispatcher) Logout(identity string) {
	d.releasePresence(identity)
}

// Connect binds a live session: the identity joins its self-room and every
// live session learns it is online. The identity must hold an active claim;
// a cookie that outlived its claim does not get a socket.
func (d *Dispatcher) Connect(s *Session) error {
	if s.Identity() == "" || !d.presence.IsActive(s.Identity()) {
		return ErrUnauthenticated
	}

	d.rooms.Bind(s.Identity(), s)
	d.rooms.BroadcastAll(Event{
		Event: EventUserStatus,
		Data:  StatusPayload{Username: s.Identity(), Status: "online"},
	})
	d.logger.Info().Str("identity", s.Identity()).Msg("session connected")
	return nil
}

// Disconnect settles a closed session: membership and presence are released
// together, and the offline event fires at most once per claim. A socket that
// was replaced by a newer connection settles here too; its identity still has
// a live session, so the claim stays held.
func (d *Dispatcher) Disconnect(s *Session) {
	if !d.rooms.Unbind(s.Identity(), s) {
		return
	}
	d.releasePresence(s.Identity())
	d.logger.Info().Str("identity", s.Identity()).Msg("session disconnected")
}

func (d *Dispatcher) releasePresence(identity string) {
	if !d.presence.Release(identity) {
		return
	}
	metrics.OnlineUsers.Dec()
	if d.onRelease != nil {
		d.onRelease(identity)
	}
	d.rooms.BroadcastAll(Event{
		Event: EventUserStatus,
		Data:  StatusPayload{Username: identity, Status: "offline"},
	})
}

// SendMessage validates, classifies, persists, and delivers one message.
// Blank input is silently dropped; an unreachable channel produces a single
// error event back to the sender and nothing else.
func (d *Dispatcher) SendMessage(from, channel, text string) error {
	text = strings.TrimSpace(text)
	if from == "" || channel == "" || text == "" {
		return ErrEmptyInput
	}

	ch := d.resolver.Classify(channel, from)
	switch ch.Kind {
	case ChannelGroup:
		rec := Record{Channel: ch.Group, From: from, Message: text, Timestamp: d.timestamp()}
		d.history.Append(ch.Key, rec)
		// Sender receives its own echo via the room broadcast, so make
		// sure it is subscribed even without an explicit join.
		d.rooms.Join(from, ch.Key)
		d.rooms.Broadcast(ch.Key, Event{Event: EventMessage, Data: rec})
		metrics.MessagesSent.WithLabelValues("group").Inc()

	case ChannelDM:
		rec := Record{From: from, Message: text, Timestamp: d.timestamp()}
		d.history.Append(ch.Key, rec)

		toSender := rec
		toSender.Channel = ch.Peer
		toPeer := rec
		toPeer.Channel = from
		d.rooms.EmitTo(from, Event{Event: EventMessage, Data: toSender})
		d.rooms.EmitTo(ch.Peer, Event{Event: EventMessage, Data: toPeer})
		metrics.MessagesSent.WithLabelValues("dm").Inc()

	default:
		d.rooms.EmitTo(from, errorEvent(msgNotConnected))
		return ErrChannelInvalid
	}
	return nil
}

// JoinGroup subscribes an identity to a registered group and announces it
// with a system record. Group ids are authorized against the registry only;
// no friend check applies.
func (d *Dispatcher) JoinGroup(identity, groupID string) error {
	g, ok := d.groups.Get(groupID)
	if !ok {
		d.rooms.EmitTo(identity, errorEvent(msgGroupNotFound))
		return ErrChannelInvalid
	}

	d.rooms.Join(identity, g.ID)
	d.announce(g, fmt.Sprintf("%s joined %s", identity, g.Name))
	return nil
}

// LeaveGroup unsubscribes an identity from a group. The leaver drops out of
// the room before the notice is broadcast, so it does not see its own exit.
func (d *Dispatcher) LeaveGroup(identity, groupID string) error {
	g, ok := d.groups.Get(groupID)
	if !ok {
		d.rooms.EmitTo(identity, errorEvent(msgGroupNotFound))
		return ErrChannelInvalid
	}

	d.rooms.Leave(identity, g.ID)
	d.announce(g, fmt.Sprintf("%s left %s", identity, g.Name))
	return nil
}

// announce persists a system record for a group and broadcasts it under the
// system event so clients can style it apart from ordinary messages.
func (d *Dispatcher) announce(g Group, message string) {
	rec := Record{Channel: g.ID, From: SystemFrom, Message: message, Timestamp: d.timestamp()}
	d.history.Append(g.ID, rec)
	d.rooms.Broadcast(g.ID, Event{Event: EventSystem, Data: rec})
}

// PrivateInvite creates a mutual friend edge and notifies both parties. The
// target must be present, distinct from the requester, and currently active.
// This is the only way new edges appear after the login seed.
func (d *Dispatcher) PrivateInvite(from, to string) error {
	if to == "" || to == from || !d.presence.IsActive(to) {
		d.rooms.EmitTo(from, errorEvent(msgUserNotFound))
		return ErrTargetUnavailable
	}

	d.friends.AddEdge(from, to)
	d.rooms.EmitTo(from, Event{Event: EventFriendUpdate, Data: FriendPayload{Friend: to}})
	d.rooms.EmitTo(to, Event{Event: EventFriendUpdate, Data: FriendPayload{Friend: from}})
	metrics.InvitesSent.Inc()
	d.logger.Info().Str("from", from).Str("to", to).Msg("friend edge created")
	return nil
}

// History returns the bounded suffix of a channel's log for a requester,
// applying exactly the same classification as the send path. DM records come
// back annotated with the peer as the viewer-relative channel.
func (d *Dispatcher) History(identity, channel string) ([]Record, error) {
	ch := d.resolver.Classify(channel, identity)
	switch ch.Kind {
	case ChannelGroup:
		return d.history.Tail(ch.Key, d.tailLimit), nil
	case ChannelDM:
		recs := d.history.Tail(ch.Key, d.tailLimit)
		for i := range recs {
			recs[i].Channel = ch.Peer
		}
		return recs, nil
	default:
		return nil, ErrChannelInvalid
	}
}

// timestamp renders the current UTC time in the ISO-8601 form records carry.
func (d *Dispatcher) timestamp() string {
	return d.now().UTC().Format(time.RFC3339)
}
