package handlers

import (
	"net/http"
	"sort"

	"github.com/parlorchat/parlor/internal/api/middleware"
	"github.com/parlorchat/parlor/internal/chat"
)

// GroupsResponse represents the group listing response.
type GroupsResponse struct {
	Groups []chat.Group `json:"groups"`
}

// ListGroups enumerates the registered groups.
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, GroupsResponse{Groups: h.dispatcher.Groups().List()})
}

// FriendsResponse represents the friend listing response.
type FriendsResponse struct {
	Friends []string `json:"friends"`
}

// ListFriends returns the requester's friends sorted for display.
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == "" {
		h.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	friends := h.dispatcher.Friends().FriendsOf(identity)
	sort.Strings(friends)

	h.JSON(w, http.StatusOK, FriendsResponse{Friends: friends})
}
