package chat

import "errors"

// Sentinel errors for the failure modes of the chat engine. Each one maps to
// a single HTTP status or outbound error event at the edges; none is fatal.
var (
	// ErrIdentityActive is returned when claiming a username that already
	// has an active claim.
	ErrIdentityActive = errors.New("identity already active")

	// ErrChannelInvalid covers self-addressing, unknown groups, and DM
	// attempts between non-friends.
	ErrChannelInvalid = errors.New("channel invalid")

	// ErrTargetUnavailable is returned for invites to absent, inactive, or
	// self targets.
	ErrTargetUnavailable = errors.New("target unavailable")

	// ErrEmptyInput is returned for blank usernames or blank message content.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnauthenticated is returned when no identity context is present.
	ErrUnauthenticated = errors.New("unauthenticated")
)
