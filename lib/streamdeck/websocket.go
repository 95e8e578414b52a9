package streamdeck

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Transport maintains the duplex WebSocket channel to the Stream Deck host.
//
// The write path is single-writer serialized: concurrent senders produce
// whole, non-interleaved text frames in FIFO order. Transport implements
// Listener so the supervisor merges host traffic and auxiliary listeners
// through the same queue; its lifetime is the plugin's lifetime, there is no
// reconnection.
type Transport struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	stopOnce sync.Once
	stopped  atomic.Bool

	log zerolog.Logger
}

// Dial opens the channel to the Stream Deck host listening on the given
// local port. Refusal or timeout yields a *ConnectionError.
func Dial(ctx context.Context, port int, log zerolog.Logger) (*Transport, error) {
	url := fmt.Sprintf("ws://127.0.0.1:%d", port)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, &ConnectionError{Op: "dial", Err: err}
	}

	log.Debug().Str("url", url).Msg("connected to host")
	return &Transport{conn: conn, log: log}, nil
}

// Send writes one complete text frame to the host. Safe for concurrent use.
func (t *Transport) Send(payload []byte) error {
	if t.conn == nil {
		return ErrNotConnected
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if err := t.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return &ConnectionError{Op: "send", Err: err}
	}
	return nil
}

// Produce blocks reading messages from the host and emits each raw payload.
// It returns nil when the connection closes normally or the transport is
// stopped, and a *ConnectionError when the connection closes abruptly.
func (t *Transport) Produce(ctx context.Context, emit func(raw []byte)) error {
	if t.conn == nil {
		return ErrNotConnected
	}

	// Cancelling ctx unblocks the read by closing the connection.
	unregister := context.AfterFunc(ctx, t.Stop)
	defer unregister()

	for {
		_, raw, err := t.conn.ReadMessage()
		if err != nil {
			if t.stopped.Load() || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				t.log.Debug().Msg("connection closed normally")
				return nil
			}
			return &ConnectionError{Op: "receive", Err: err}
		}
		emit(raw)
	}
}

// Stop flushes a close frame, releases the connection, and unblocks Produce.
// Idempotent and safe to call from any goroutine.
func (t *Transport) Stop() {
	t.stopOnce.Do(func() {
		t.stopped.Store(true)

		if t.conn == nil {
			return
		}

		deadline := time.Now().Add(time.Second)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if err := t.conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
			t.log.Debug().Err(err).Msg("close frame not delivered")
		}

		_ = t.conn.Close()
	})
}
