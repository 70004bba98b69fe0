package chat

import (
	"sort"
	"strings"
)

const dmKeyPrefix = "dm:"

// ChannelKind classifies a channel token.
type ChannelKind int

const (
	// ChannelInvalid marks tokens that name no reachable channel for the
	// requester: unknown groups, self-addressing, and non-friend DMs.
	ChannelInvalid ChannelKind = iota
	// ChannelGroup marks tokens naming a registered group.
	ChannelGroup
	// ChannelDM marks tokens naming a friend of the requester.
	ChannelDM
)

// Channel is the result of classifying a channel token for a requester.
// Key is the canonical history key: the group id for groups, the
// order-independent DM key for DMs.
type Channel struct {
	Kind  ChannelKind
	Group string // group id, ChannelGroup only
	Peer  string // peer identity, ChannelDM only
	Key   string
}

// Resolver classifies channel tokens. Both the send path and the
// history-read path go through Classify, so the two can never diverge in
// authorization outcome.
type Resolver struct {
	groups  *GroupRegistry
	friends *FriendGraph
}

// NewResolver creates a resolver over the given registries.
func NewResolver(groups *GroupRegistry, friends *FriendGraph) *Resolver {
	return &Resolver{groups: groups, friends: friends}
}

// Classify resolves a channel token for a requester. Rules, in order: a
// registered group id is a group channel; the requester's own name is
// invalid; a non-friend is invalid; anything else is a DM with that friend.
func (r *Resolver) Classify(token, requester string) Channel {
	if r.groups.Contains(token) {
		return Channel{Kind: ChannelGroup, Group: token, Key: token}
	}
	if token == requester {
		return Channel{Kind: ChannelInvalid}
	}
	if !r.friends.AreFriends(requester, token) {
		return Channel{Kind: ChannelInvalid}
	}
	return Channel{Kind: ChannelDM, Peer: token, Key: DMKey(requester, token)}
}

// DMKey returns the canonical history key for a DM thread. The two
// identities are sorted before joining, so DMKey(a, b) == DMKey(b, a).
func DMKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return dmKeyPrefix + strings.Join(pair, ":")
}
