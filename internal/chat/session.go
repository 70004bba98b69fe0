package chat

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait     = 10 * time.Second
	pongWait      = 60 * time.Second
	pingPeriod    = 54 * time.Second
	maxFrameSize  = 4096
	sendQueueSize = 64
	inboundBurst  = 20
	inboundRefill = time.Second
)

// Session is one live connection bound to an identity: a queue endpoint for
// outbound events plus read/write pumps over the underlying websocket.
type Session struct {
	id         uuid.UUID
	identity   string
	conn       *websocket.Conn
	dispatcher *Dispatcher
	logger     zerolog.Logger
	throttle   *frameThrottle

	out       chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession wraps a websocket connection for an identity. The session does
// nothing until Run is called.
func NewSession(identity string, conn *websocket.Conn, d *Dispatcher, logger zerolog.Logger) *Session {
	id := uuid.New()
	return &Session{
		id:         id,
		identity:   identity,
		conn:       conn,
		dispatcher: d,
		logger: logger.With().
			Str("component", "session").
			Str("session_id", id.String()).
			Str("identity", identity).
			Logger(),
		throttle: newFrameThrottle(inboundBurst, inboundRefill),
		out:      make(chan Event, sendQueueSize),
		done:     make(chan struct{}),
	}
}

// Identity returns the identity the session is bound to.
func (s *Session) Identity() string {
	return s.identity
}

// Close tears the session down. Safe to call more than once and from any
// goroutine.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.conn != nil {
			_ = s.conn.Close()
		}
	})
}

// enqueue pushes an event onto the outbound queue without blocking. It
// reports false when the session is closed or the queue is full; the caller
// drops the event either way.
func (s *Session) enqueue(ev Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.out <- ev:
		return true
	default:
		return false
	}
}

// Run services the connection until the peer disconnects, then settles
// presence and membership through the dispatcher. It blocks.
func (s *Session) Run() {
	go s.writePump()
	s.readPump()
	s.dispatcher.Disconnect(s)
}

func (s *Session) readPump() {
	defer s.Close()

	s.conn.SetReadLimit(maxFrameSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug().Err(err).Msg("read error")
			}
			return
		}

		if !s.throttle.permit() {
			s.logger.Warn().Msg("inbound rate limit exceeded, frame discarded")
			continue
		}

		s.handleFrame(raw)
	}
}

// handleFrame decodes one inbound envelope and dispatches it. Malformed
// frames and dispatcher rejections surface to the sender only; the errors
// returned here are already settled and only logged.
func (s *Session) handleFrame(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.logger.Debug().Err(err).Msg("discarding malformed frame")
		return
	}

	var err error
	switch env.Event {
	case EventSendMessage:
		var p SendPayload
		if err = json.Unmarshal(env.Data, &p); err == nil {
			err = s.dispatcher.SendMessage(s.identity, p.Channel, p.Message)
		}
	case EventJoinGroup:
		var p GroupPayload
		if err = json.Unmarshal(env.Data, &p); err == nil {
			err = s.dispatcher.JoinGroup(s.identity, p.Group)
		}
	case EventLeaveGroup:
		var p GroupPayload
		if err = json.Unmarshal(env.Data, &p); err == nil {
			err = s.dispatcher.LeaveGroup(s.identity, p.Group)
		}
	case EventPrivateInvite:
		var p InvitePayload
		if err = json.Unmarshal(env.Data, &p); err == nil {
			err = s.dispatcher.PrivateInvite(s.identity, p.To)
		}
	default:
		s.logger.Debug().Str("event", env.Event).Msg("ignoring unknown event")
		return
	}

	if err != nil {
		s.logger.Debug().Err(err).Str("event", env.Event).Msg("event rejected")
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case ev := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(ev); err != nil {
				s.logger.Debug().Err(err).Msg("write error")
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}
