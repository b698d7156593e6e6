package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voteroom/internal/config"
	"voteroom/internal/token"
	"voteroom/internal/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// serverConn is one accepted websocket from the fake service's side.
type serverConn struct {
	conn    *websocket.Conn
	token   string
	path    string
	inbound chan string
}

func (c *serverConn) sendEvent(t *testing.T, evt types.Event) {
	t.Helper()
	require.NoError(t, c.conn.WriteJSON(evt))
}

func (c *serverConn) sendRaw(t *testing.T, data string) {
	t.Helper()
	require.NoError(t, c.conn.WriteMessage(websocket.TextMessage, []byte(data)))
}

// newWSServer runs a fake realtime endpoint; every accepted connection
// is delivered on the returned channel.
func newWSServer(t *testing.T) (*httptest.Server, chan *serverConn) {
	t.Helper()

	conns := make(chan *serverConn, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		sc := &serverConn{
			conn:    conn,
			token:   r.URL.Query().Get("token"),
			path:    r.URL.Path,
			inbound: make(chan string, 64),
		}
		go func() {
			for {
				_, data, err := conn.ReadMessage()
				if err != nil {
					close(sc.inbound)
					return
				}
				sc.inbound <- string(data)
			}
		}()
		conns <- sc
	}))
	t.Cleanup(srv.Close)
	return srv, conns
}

func newTestSession(t *testing.T, serverURL string, tok string) (*Session, *token.Store) {
	t.Helper()

	store := token.NewStore(token.NewFileBackendAt(filepath.Join(t.TempDir(), "access_token")), nil)
	if tok != "" {
		store.Set(tok)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{URL: serverURL},
		WS:     config.WSConfig{HandshakeTimeout: 5 * time.Second},
	}

	s := NewSession(cfg, store, "r1", nil)
	s.reconnectDelay = 50 * time.Millisecond
	s.pingInterval = 50 * time.Millisecond
	t.Cleanup(s.Disconnect)
	return s, store
}

func waitConn(t *testing.T, conns chan *serverConn) *serverConn {
	t.Helper()
	select {
	case sc := <-conns:
		return sc
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a connection")
		return nil
	}
}

func waitEvent(t *testing.T, events chan types.Event) types.Event {
	t.Helper()
	select {
	case evt := <-events:
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an event")
		return types.Event{}
	}
}

func rawPayload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestSession_ConnectWithoutToken(t *testing.T) {
	t.Parallel()

	srv, conns := newWSServer(t)
	s, _ := newTestSession(t, srv.URL, "")

	s.Connect()
	assert.Equal(t, StateIdle, s.State())

	select {
	case <-conns:
		t.Fatal("dialed without a token")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestSession_ConnectBuildsRoomURL(t *testing.T) {
	t.Parallel()

	srv, conns := newWSServer(t)
	s, _ := newTestSession(t, srv.URL, "tok1")

	s.Connect()
	sc := waitConn(t, conns)

	assert.Equal(t, "/api/v1/rooms/r1/ws", sc.path)
	assert.Equal(t, "tok1", sc.token)
	assert.Equal(t, StateOpen, s.State())
}

func TestSession_DispatchByType(t *testing.T) {
	t.Parallel()

	srv, conns := newWSServer(t)
	s, _ := newTestSession(t, srv.URL, "tok1")

	got := make(chan types.Event, 8)
	s.On(types.EventGameAdded, func(evt types.Event) { got <- evt })

	s.Connect()
	sc := waitConn(t, conns)

	// An event type nobody registered for is silently dropped.
	sc.sendEvent(t, types.Event{Type: types.EventVoteAdded, RoomID: "r1", Payload: rawPayload(t, types.VotePayload{VoteID: "v1"})})
	sc.sendEvent(t, types.Event{Type: types.EventGameAdded, RoomID: "r1", Payload: rawPayload(t, types.GamePayload{GameID: "g1", Title: "chess"}), Ts: 7})

	evt := waitEvent(t, got)
	assert.Equal(t, types.EventGameAdded, evt.Type)
	assert.Equal(t, "r1", evt.RoomID)
	assert.EqualValues(t, 7, evt.Ts)

	var payload types.GamePayload
	require.NoError(t, evt.DecodePayload(&payload))
	assert.Equal(t, "g1", payload.GameID)
	assert.Equal(t, "chess", payload.Title)

	assert.Empty(t, got)
}

func TestSession_HandlerReplaced(t *testing.T) {
	t.Parallel()

	srv, conns := newWSServer(t)
	s, _ := newTestSession(t, srv.URL, "tok1")

	first := make(chan types.Event, 1)
	second := make(chan types.Event, 1)
	s.On(types.EventGameAdded, func(evt types.Event) { first <- evt })
	s.On(types.EventGameAdded, func(evt types.Event) { second <- evt })

	s.Connect()
	sc := waitConn(t, conns)
	sc.sendEvent(t, types.Event{Type: types.EventGameAdded, RoomID: "r1", Payload: rawPayload(t, types.GamePayload{GameID: "g1"})})

	waitEvent(t, second)
	assert.Empty(t, first)
}

func TestSession_Off(t *testing.T) {
	t.Parallel()

	srv, conns := newWSServer(t)
	s, _ := newTestSession(t, srv.URL, "tok1")

	gameEvents := make(chan types.Event, 1)
	voteEvents := make(chan types.Event, 1)
	s.On(types.EventGameAdded, func(evt types.Event) { gameEvents <- evt })
	s.On(types.EventVoteAdded, func(evt types.Event) { voteEvents <- evt })
	s.Off(types.EventGameAdded)

	s.Connect()
	sc := waitConn(t, conns)
	sc.sendEvent(t, types.Event{Type: types.EventGameAdded, RoomID: "r1", Payload: rawPayload(t, types.GamePayload{GameID: "g1"})})
	sc.sendEvent(t, types.Event{Type: types.EventVoteAdded, RoomID: "r1", Payload: rawPayload(t, types.VotePayload{VoteID: "v1"})})

	waitEvent(t, voteEvents)
	assert.Empty(t, gameEvents)
}

// One bad frame must not take the session down.
func TestSession_MalformedFrameTolerated(t *testing.T) {
	t.Parallel()

	srv, conns := newWSServer(t)
	s, _ := newTestSession(t, srv.URL, "tok1")

	got := make(chan types.Event, 1)
	s.On(types.EventResultsUpdated, func(evt types.Event) { got <- evt })

	s.Connect()
	sc := waitConn(t, conns)
	sc.sendRaw(t, "{not json")
	sc.sendEvent(t, types.Event{Type: types.EventResultsUpdated, RoomID: "r1", Payload: rawPayload(t, types.ResultsPayload{GameID: "g1"})})

	waitEvent(t, got)
	assert.Equal(t, StateOpen, s.State())
}

func TestSession_SendsLivenessPing(t *testing.T) {
	t.Parallel()

	srv, conns := newWSServer(t)
	s, _ := newTestSession(t, srv.URL, "tok1")

	s.Connect()
	sc := waitConn(t, conns)

	select {
	case msg := <-sc.inbound:
		assert.Equal(t, "ping", msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no liveness probe observed")
	}
}

// A server-side close triggers exactly one reconnect after the fixed
// delay, and the new dial re-reads the token from the store.
func TestSession_ReconnectAfterDrop(t *testing.T) {
	t.Parallel()

	srv, conns := newWSServer(t)
	s, store := newTestSession(t, srv.URL, "tok1")

	s.Connect()
	first := waitConn(t, conns)
	assert.Equal(t, "tok1", first.token)

	// A refresh happened while the connection was up; the reconnect
	// must pick up the new credential.
	store.Set("tok2")
	first.conn.Close()

	second := waitConn(t, conns)
	assert.Equal(t, "tok2", second.token)
	assert.Equal(t, StateOpen, s.State())

	select {
	case <-conns:
		t.Fatal("more than one reconnect attempt")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestSession_DisconnectStopsReconnect(t *testing.T) {
	t.Parallel()

	srv, conns := newWSServer(t)
	s, _ := newTestSession(t, srv.URL, "tok1")

	s.Connect()
	sc := waitConn(t, conns)

	sc.conn.Close()
	s.Disconnect()

	select {
	case <-conns:
		t.Fatal("reconnected after teardown")
	case <-time.After(200 * time.Millisecond):
	}
	assert.Equal(t, StateClosed, s.State())
}

// Teardown before any connect, and double teardown, are both no-ops.
func TestSession_DisconnectIdempotent(t *testing.T) {
	t.Parallel()

	srv, _ := newWSServer(t)
	s, _ := newTestSession(t, srv.URL, "tok1")

	s.Disconnect()
	s.Disconnect()
	assert.Equal(t, StateClosed, s.State())

	// A torn-down session never connects again.
	s.Connect()
	assert.Equal(t, StateClosed, s.State())
}

func TestSession_DisconnectWhileOpen(t *testing.T) {
	t.Parallel()

	srv, conns := newWSServer(t)
	s, _ := newTestSession(t, srv.URL, "tok1")

	s.Connect()
	sc := waitConn(t, conns)

	s.Disconnect()

	// The server side observes the close; skip over any pings that
	// were in flight before the teardown.
	deadline := time.After(2 * time.Second)
	for closed := false; !closed; {
		select {
		case _, ok := <-sc.inbound:
			closed = !ok
		case <-deadline:
			t.Fatal("server never saw the close")
		}
	}

	select {
	case <-conns:
		t.Fatal("reconnected after teardown")
	case <-time.After(150 * time.Millisecond):
	}
}
