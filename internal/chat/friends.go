package chat

import "sync"

// FriendGraph stores symmetric friend pairs. A DM channel between two
// identities is only addressable while an edge exists between them.
type FriendGraph struct {
	mu    sync.RWMutex
	edges map[string]map[string]struct{}
}

// NewFriendGraph creates an empty friend graph.
func NewFriendGraph() *FriendGraph {
	return &FriendGraph{edges: make(map[string]map[string]struct{})}
}

// AddEdge inserts the pair in both directions. It is idempotent and a no-op
// when a == b.
func (g *FriendGraph) AddEdge(a, b string) {
	if a == b {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.insert(a, b)
	g.insert(b, a)
}

func (g *FriendGraph) insert(from, to string) {
	set, ok := g.edges[from]
	if !ok {
		set = make(map[string]struct{})
		g.edges[from] = set
	}
	set[to] = struct{}{}
}

// AreFriends reports whether an edge exists between a and b. Symmetric by
// construction.
func (g *FriendGraph) AreFriends(a, b string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.edges[a][b]
	return ok
}

// FriendsOf returns the identities adjacent to the given identity, in no
// particular order. Callers sort for display.
func (g *FriendGraph) FriendsOf(identity string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	set := g.edges[identity]
	friends := make([]string, 0, len(set))
	for friend := range set {
		friends = append(friends, friend)
	}
	return friends
}
