package chat

// Group is a pre-registered, world-joinable broadcast destination.
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GroupRegistry holds the set of groups known at startup. The set is fixed
// for the process lifetime, so reads need no locking.
type GroupRegistry struct {
	groups map[string]Group
	order  []string
}

// NewGroupRegistry builds a registry from the given groups, preserving their
// order for listing.
func NewGroupRegistry(groups []Group) *GroupRegistry {
	r := &GroupRegistry{groups: make(map[string]Group, len(groups))}
	for _, g := range groups {
		if _, ok := r.groups[g.ID]; ok {
			continue
		}
		r.groups[g.ID] = g
		r.order = append(r.order, g.ID)
	}
	return r
}

// DefaultGroups returns the built-in group set.
func DefaultGroups() []Group {
	return []Group{
		{ID: "lobby", Name: "Lobby", Description: "Chat with everyone in the app"},
		{ID: "gamers", Name: "Gamers", Description: "Find teammates and discuss games"},
		{ID: "devs", Name: "Devs", Description: "Share code, tips, and resources"},
	}
}

// Get looks up a group by id.
func (r *GroupRegistry) Get(id string) (Group, bool) {
	g, ok := r.groups[id]
	return g, ok
}

// Contains reports whether id names a registered group.
func (r *GroupRegistry) Contains(id string) bool {
	_, ok := r.groups[id]
	return ok
}

// List returns all groups in registration order.
func (r *GroupRegistry) List() []Group {
	out := make([]Group, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.groups[id])
	}
	return out
}
