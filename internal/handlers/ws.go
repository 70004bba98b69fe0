package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/parlorchat/parlor/internal/api/middleware"
	"github.com/parlorchat/parlor/internal/chat"
	"github.com/parlorchat/parlor/internal/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Clients connect from the app's own pages and from tooling; origin
	// enforcement is the deployment proxy's concern.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request to a websocket and runs the live session for
// the authenticated identity until it disconnects.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == "" {
		h.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	s := chat.NewSession(identity, conn, h.dispatcher, h.logger)
	if err := h.dispatcher.Connect(s); err != nil {
		_ = conn.Close()
		return
	}

	metrics.LiveSessions.Inc()
	defer metrics.LiveSessions.Dec()

	s.Run()
}
