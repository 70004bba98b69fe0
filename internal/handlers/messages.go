package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parlorchat/parlor/internal/api/middleware"
	"github.com/parlorchat/parlor/internal/chat"
)

// MessagesResponse represents the history read response.
type MessagesResponse struct {
	Messages []chat.Record `json:"messages"`
}

// GetMessages serves the bounded history suffix for a channel. The channel
// token is classified exactly as on the send path, so an identity can never
// read history it could not post to.
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == "" {
		h.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	channel := chi.URLParam(r, "channel")

	records, err := h.dispatcher.History(identity, channel)
	if err != nil {
		if errors.Is(err, chat.ErrChannelInvalid) {
			h.Error(w, http.StatusNotFound, "unknown channel")
			return
		}
		h.Error(w, http.StatusInternalServerError, "failed to read history")
		return
	}

	h.JSON(w, http.StatusOK, MessagesResponse{Messages: records})
}
