package streamdeck

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost is an in-process stand-in for the Stream Deck software's
// WebSocket server.
type fakeHost struct {
	server   *httptest.Server
	received chan []byte
	conns    chan *websocket.Conn
}

func newFakeHost(t *testing.T) *fakeHost {
	t.Helper()

	h := &fakeHost{
		received: make(chan []byte, 256),
		conns:    make(chan *websocket.Conn, 4),
	}

	upgrader := websocket.Upgrader{}
	h.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.conns <- conn
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			h.received <- msg
		}
	}))
	t.Cleanup(h.server.Close)

	return h
}

func (h *fakeHost) port() int {
	return h.server.Listener.Addr().(*net.TCPAddr).Port
}

func (h *fakeHost) conn(t *testing.T) *websocket.Conn {
	t.Helper()

	select {
	case c := <-h.conns:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no client connected")
		return nil
	}
}

func (h *fakeHost) recv(t *testing.T) []byte {
	t.Helper()

	select {
	case msg := <-h.received:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received from client")
		return nil
	}
}

func (h *fakeHost) closeNormally(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	require.NoError(t, conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)))
}

func TestTransport_DialRefused(t *testing.T) {
	// Grab a port with nothing listening on it.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	_, err = Dial(context.Background(), port, zerolog.Nop())
	require.Error(t, err)

	var cerr *ConnectionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "dial", cerr.Op)
}

func TestTransport_SendReachesHost(t *testing.T) {
	host := newFakeHost(t)

	tr, err := Dial(context.Background(), host.port(), zerolog.Nop())
	require.NoError(t, err)
	defer tr.Stop()

	require.NoError(t, tr.Send([]byte(`{"event":"ping"}`)))
	assert.JSONEq(t, `{"event":"ping"}`, string(host.recv(t)))
}

func TestTransport_ProduceEmitsUntilNormalClose(t *testing.T) {
	host := newFakeHost(t)

	tr, err := Dial(context.Background(), host.port(), zerolog.Nop())
	require.NoError(t, err)
	defer tr.Stop()

	conn := host.conn(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(fmt.Sprintf(`{"n":%d}`, i))))
	}
	host.closeNormally(t, conn)

	var got []string
	err = tr.Produce(context.Background(), func(raw []byte) {
		got = append(got, string(raw))
	})

	require.NoError(t, err, "normal closure is end-of-sequence, not an error")
	assert.Equal(t, []string{`{"n":0}`, `{"n":1}`, `{"n":2}`}, got)
}

func TestTransport_AbruptCloseIsConnectionError(t *testing.T) {
	host := newFakeHost(t)

	tr, err := Dial(context.Background(), host.port(), zerolog.Nop())
	require.NoError(t, err)
	defer tr.Stop()

	conn := host.conn(t)
	require.NoError(t, conn.Close()) // no close handshake

	err = tr.Produce(context.Background(), func([]byte) {})
	require.Error(t, err)

	var cerr *ConnectionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "receive", cerr.Op)
}

func TestTransport_StopUnblocksProduceAndIsIdempotent(t *testing.T) {
	host := newFakeHost(t)

	tr, err := Dial(context.Background(), host.port(), zerolog.Nop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- tr.Produce(context.Background(), func([]byte) {})
	}()

	time.Sleep(20 * time.Millisecond)
	tr.Stop()
	tr.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err, "an explicitly stopped transport ends its sequence cleanly")
	case <-time.After(2 * time.Second):
		t.Fatal("Produce did not return after Stop")
	}
}

func TestTransport_ConcurrentSendsDoNotInterleave(t *testing.T) {
	host := newFakeHost(t)

	tr, err := Dial(context.Background(), host.port(), zerolog.Nop())
	require.NoError(t, err)
	defer tr.Stop()

	const senders = 20
	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := fmt.Sprintf(`{"event":"cmd","payload":{"sender":%d}}`, i)
			assert.NoError(t, tr.Send([]byte(payload)))
		}(i)
	}
	wg.Wait()

	// Every frame arrives whole: valid JSON with a distinct sender id.
	seen := make(map[float64]bool)
	for i := 0; i < senders; i++ {
		var msg struct {
			Event   string `json:"event"`
			Payload struct {
				Sender float64 `json:"sender"`
			} `json:"payload"`
		}
		raw := host.recv(t)
		require.NoError(t, json.Unmarshal(raw, &msg), "frame interleaved or corrupt: %q", raw)
		assert.Equal(t, "cmd", msg.Event)
		assert.False(t, seen[msg.Payload.Sender], "duplicate sender %v", msg.Payload.Sender)
		seen[msg.Payload.Sender] = true
	}
}
