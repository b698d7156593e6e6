// realtime maintains one live websocket per room. A session survives
// drops on its own: every disconnect is retried after a fixed delay for
// as long as the session has not been torn down, and each attempt
// re-reads the access token so a refreshed credential is picked up on
// reconnect. Subscribers never see a "disconnected" error: during an
// outage they simply receive no events.
package realtime

import (
	"crypto/tls"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"voteroom/internal/config"
	"voteroom/internal/constants"
	"voteroom/internal/token"
	"voteroom/internal/types"
	"voteroom/internal/wirelog"
)

// State of a session's connection.
type State int

const (
	// StateIdle: never connected, or connect was skipped for lack of a token.
	StateIdle State = iota
	// StateConnecting: dial in progress.
	StateConnecting
	// StateOpen: connection live, ping timer running.
	StateOpen
	// StateClosed: connection down; a reconnect may be pending.
	StateClosed
)

// Handler receives a parsed server event. At most one handler exists per
// event type; registering again replaces the previous one.
type Handler func(evt types.Event)

type Session struct {
	roomID string
	origin string
	store  *token.Store
	dialer *websocket.Dialer
	log    *slog.Logger
	wire   *wirelog.Logger

	pingInterval   time.Duration
	reconnectDelay time.Duration

	mu              sync.Mutex
	state           State
	conn            *websocket.Conn
	handlers        map[types.EventType]Handler
	pingStop        chan struct{}
	reconnectTimer  *time.Timer
	shouldReconnect bool
	closed          bool
}

// NewSession builds a session for one room. The session is Idle until
// Connect; it owns no goroutines or timers before that.
func NewSession(cfg *config.Config, store *token.Store, roomID string, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}

	dialer := &websocket.Dialer{
		ReadBufferSize:   constants.WSBufferSize,
		WriteBufferSize:  constants.WSBufferSize,
		HandshakeTimeout: cfg.WS.HandshakeTimeout,
	}
	if cfg.Server.InsecureSkipVerify {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	s := &Session{
		roomID:          roomID,
		origin:          cfg.Server.URL,
		store:           store,
		dialer:          dialer,
		log:             log,
		pingInterval:    constants.PingInterval,
		reconnectDelay:  constants.ReconnectDelay,
		handlers:        make(map[types.EventType]Handler),
		shouldReconnect: true,
	}

	if cfg.WireLog.Enabled {
		wire, err := wirelog.New(roomID)
		if err != nil {
			log.Warn("wire log disabled", "room", roomID, "err", err)
		} else {
			s.wire = wire
		}
	}

	return s
}

func (s *Session) RoomID() string {
	return s.roomID
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// On registers the handler for an event type, replacing any previous one.
func (s *Session) On(eventType types.EventType, handler Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[eventType] = handler
}

// Off removes the handler for an event type.
func (s *Session) Off(eventType types.EventType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handlers, eventType)
}

// Connect dials the room's websocket endpoint. Without an access token
// the session stays Idle and only logs: the caller is expected to
// connect again after authenticating. Dial failures are not surfaced
// either: the session schedules its own retry.
func (s *Session) Connect() {
	s.mu.Lock()
	if s.closed || s.state == StateConnecting || s.state == StateOpen {
		s.mu.Unlock()
		return
	}

	tok, ok := s.store.Get()
	if !ok {
		s.state = StateIdle
		s.mu.Unlock()
		s.log.Warn("websocket connect skipped: no access token", "room", s.roomID)
		return
	}
	s.state = StateConnecting
	s.mu.Unlock()

	wsURL := BuildURL(s.origin, s.roomID, tok)
	s.wire.LogEvent("dialing " + wsURL)

	conn, _, err := s.dialer.Dial(wsURL, nil)
	if err != nil {
		s.log.Warn("websocket dial failed", "room", s.roomID, "err", err)
		s.wire.LogError("client->server", err)

		s.mu.Lock()
		s.state = StateClosed
		if s.shouldReconnect {
			s.scheduleReconnectLocked()
		}
		s.mu.Unlock()
		return
	}
	conn.SetReadLimit(constants.MaxWSMessageSize)

	s.mu.Lock()
	if s.closed {
		// Disconnect raced the dial; the handshake result is discarded.
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.conn = conn
	s.state = StateOpen
	s.startPingLocked(conn)
	s.mu.Unlock()

	s.log.Info("websocket connected", "room", s.roomID)
	s.wire.LogEvent("connected")

	go s.readLoop(conn)
}

// Disconnect is the terminal teardown: no reconnects happen afterwards
// and the session cannot be reused. Safe to call at any point in the
// lifecycle, any number of times.
func (s *Session) Disconnect() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.shouldReconnect = false
	s.state = StateClosed
	if s.reconnectTimer != nil {
		s.reconnectTimer.Stop()
		s.reconnectTimer = nil
	}
	s.stopPingLocked()
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn != nil {
		conn.Close()
	}

	s.wire.LogEvent("disconnected")
	s.wire.Close()
	s.log.Info("websocket session closed", "room", s.roomID)
}

func (s *Session) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.handleDrop(conn, err)
			return
		}

		var evt types.Event
		if err := json.Unmarshal(data, &evt); err != nil {
			// A bad frame never kills the session.
			s.log.Warn("failed to parse server event", "room", s.roomID, "err", err)
			s.wire.LogError("server->client", err)
			continue
		}

		s.wire.LogFrame("server->client", string(evt.Type), len(data))
		s.dispatch(evt)
	}
}

// dispatch invokes the registered handler for the event's type, if any.
// Events without a handler are dropped.
func (s *Session) dispatch(evt types.Event) {
	s.mu.Lock()
	handler := s.handlers[evt.Type]
	s.mu.Unlock()

	if handler != nil {
		handler(evt)
	}
}

// handleDrop runs when the read loop dies for any reason: peer close,
// network error, or our own Disconnect closing the connection.
func (s *Session) handleDrop(conn *websocket.Conn, err error) {
	s.mu.Lock()
	if s.conn != conn {
		// A stale loop from a connection that was already replaced or
		// torn down; the current state is not ours to touch.
		s.mu.Unlock()
		return
	}
	s.stopPingLocked()
	s.conn = nil
	s.state = StateClosed
	reconnect := s.shouldReconnect
	if reconnect {
		s.scheduleReconnectLocked()
	}
	s.mu.Unlock()

	conn.Close()
	s.log.Info("websocket disconnected", "room", s.roomID, "reconnect", reconnect, "err", err)
	s.wire.LogError("server->client", err)
}

// scheduleReconnectLocked arms the reconnect timer: fixed delay, no
// backoff, at most one outstanding timer per session.
func (s *Session) scheduleReconnectLocked() {
	if s.reconnectTimer != nil {
		return
	}
	s.reconnectTimer = time.AfterFunc(s.reconnectDelay, func() {
		s.mu.Lock()
		s.reconnectTimer = nil
		ok := s.shouldReconnect
		s.mu.Unlock()

		if ok {
			s.log.Info("websocket reconnecting", "room", s.roomID)
			s.Connect()
		}
	})
}

func (s *Session) startPingLocked(conn *websocket.Conn) {
	stop := make(chan struct{})
	s.pingStop = stop

	go func() {
		ticker := time.NewTicker(s.pingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.TextMessage, []byte(constants.PingPayload)); err != nil {
					// The read loop will notice the broken connection.
					return
				}
				s.wire.LogFrame("client->server", constants.PingPayload, len(constants.PingPayload))
			case <-stop:
				return
			}
		}
	}()
}

func (s *Session) stopPingLocked() {
	if s.pingStop != nil {
		close(s.pingStop)
		s.pingStop = nil
	}
}
