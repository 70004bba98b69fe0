package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/parlorchat/parlor/internal/chat"
	"github.com/parlorchat/parlor/internal/session"
)

// defaultGroup is the well-known group that greets newcomers.
const defaultGroup = "lobby"

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username"`
}

// LoginResponse represents the login response.
type LoginResponse struct {
	Username string `json:"username"`
}

// Login claims a username, seeds the newcomer's starter social graph, and
// issues a session cookie. A username already in use is rejected without any
// state change.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	username := sanitizeUsername(req.Username)
	if username == "" {
		h.Error(w, http.StatusBadRequest, "please choose a username to join the chat")
		return
	}

	if err := h.dispatcher.Claim(username); err != nil {
		if errors.Is(err, chat.ErrIdentityActive) {
			h.Error(w, http.StatusConflict, "that username is already in use, pick a different one")
			return
		}
		h.Error(w, http.StatusInternalServerError, "failed to claim username")
		return
	}

	h.seedNewcomer(username)

	token := h.sessions.Create(username)
	session.SetCookie(w, token)

	h.JSON(w, http.StatusOK, LoginResponse{Username: username})
}

// seedNewcomer gives a fresh identity its starter friends and a welcome
// record in the default group.
func (h *Handler) seedNewcomer(username string) {
	for _, friend := range h.cfg.StarterFriends {
		// AddEdge no-ops when the newcomer picked a starter name.
		h.dispatcher.Friends().AddEdge(username, friend)
	}

	h.dispatcher.Welcome(defaultGroup,
		fmt.Sprintf("Welcome %s! Say hi to everyone in the Lobby.", username))
}

// Logout releases the session's claim and clears the cookie. The offline
// broadcast fires only if the identity was still active.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, token, ok := h.sessions.FromRequest(r)
	if ok {
		h.sessions.Destroy(token)
		h.dispatcher.Logout(identity)
	}
	session.ClearCookie(w)

	h.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
