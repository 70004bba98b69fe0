package chat

import "encoding/json"

// SystemFrom is the author of synthesized records such as join/leave notices.
const SystemFrom = "system"

// Outbound event names.
const (
	EventMessage      = "message"
	EventSystem       = "system"
	EventUserStatus   = "user_status"
	EventFriendUpdate = "friend_update"
	EventError        = "error"
)

// Inbound event names.
const (
	EventJoinGroup     = "join_group"
	EventLeaveGroup    = "leave_group"
	EventPrivateInvite = "private_invite"
	EventSendMessage   = "send_message"
)

// Envelope frames every inbound frame on a live connection. Data is decoded
// per event name once the envelope is parsed.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Event is an outbound event pushed onto a session's queue.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Record is a single history entry. Channel is set on group records at
// storage time; DM records store without it and are re-annotated with the
// viewer-relative channel on read and emit.
type Record struct {
	Channel   string `json:"channel,omitempty"`
	From      string `json:"from"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// StatusPayload announces a presence change.
type StatusPayload struct {
	Username string `json:"username"`
	Status   string `json:"status"` // "online" or "offline"
}

// FriendPayload notifies one party of a new friend edge.
type FriendPayload struct {
	Friend string `json:"friend"`
}

// ErrorPayload is sent point-to-point to the originator of a bad request.
type ErrorPayload struct {
	Message string `json:"message"`
}

// SendPayload is the body of a send_message frame.
type SendPayload struct {
	Channel string `json:"channel"`
	Message string `json:"message"`
}

// GroupPayload is the body of join_group and leave_group frames.
type GroupPayload struct {
	Group string `json:"group"`
}

// InvitePayload is the body of a private_invite frame.
type InvitePayload struct {
	To string `json:"to"`
}

func errorEvent(message string) Event {
	return Event{Event: EventError, Data: ErrorPayload{Message: message}}
}
