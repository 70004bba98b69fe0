package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/parlorchat/parlor/internal/chat"
	"github.com/parlorchat/parlor/internal/config"
	"github.com/parlorchat/parlor/internal/session"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	logger     zerolog.Logger
	cfg        *config.Config
	sessions   *session.Manager
	dispatcher *chat.Dispatcher
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(logger zerolog.Logger, cfg *config.Config, sessions *session.Manager, dispatcher *chat.Dispatcher) *Handler {
	return &Handler{
		logger:     logger.With().Str("component", "handlers").Logger(),
		cfg:        cfg,
		sessions:   sessions,
		dispatcher: dispatcher,
	}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// sanitizeUsername trims the claimed username, strips control characters, and
// caps it at 32 bytes. The cap backs off to a rune boundary so a multi-byte
// character is never split.
func sanitizeUsername(name string) string {
	name = strings.TrimSpace(name)

	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)

	if len(name) > 32 {
		cut := 32
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}

	return name
}
