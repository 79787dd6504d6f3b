// Package client implements the consumer side of the realtime path: a
// WebSocket socket with explicit connection states, a path-keyed response
// cache invalidated by inbound envelopes, and a JSON API client.
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// State is the socket connection state.
type State int32

const (
	// StateConnecting is the initial state while the dial is in flight.
	StateConnecting State = iota
	// StateConnected means the socket is open and Send is live.
	StateConnected
	// StateDisconnected is terminal: the peer closed the socket.
	StateDisconnected
	// StateError is terminal: the dial or a read failed.
	StateError
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

const (
	socketWriteWait = 10 * time.Second
	socketPongWait  = 60 * time.Second
)

// EnvelopeHandler receives each inbound envelope's raw bytes and parsed type.
type EnvelopeHandler func(envType string, raw []byte)

// Socket is one client connection to the relay. Terminal on close or error;
// there is no auto-reconnect — callers construct a fresh Socket instead.
type Socket struct {
	mu      sync.RWMutex
	state   State
	conn    *websocket.Conn
	last    []byte
	lastTyp string
	err     error
	done    chan struct{}

	// OnEnvelope, if set, is invoked for every valid inbound envelope.
	OnEnvelope EnvelopeHandler
}

// NewSocket returns a socket in the connecting state.
func NewSocket() *Socket {
	return &Socket{state: StateConnecting, done: make(chan struct{})}
}

// Dial connects to the relay endpoint and starts the read loop. header may
// carry a bearer token; the relay itself ignores it.
func (s *Socket) Dial(ctx context.Context, url string, header http.Header) error {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.state = StateConnected
	s.mu.Unlock()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(socketPongWait))
	})
	conn.SetPingHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(socketPongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(socketWriteWait))
	})

	go s.readLoop()
	return nil
}

func (s *Socket) readLoop() {
	defer close(s.done)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			if s.state == StateConnected {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.state = StateDisconnected
				} else {
					s.state = StateError
					s.err = err
				}
			}
			s.mu.Unlock()
			return
		}

		var header struct {
			Type string `json:"type"`
		}
		if json.Unmarshal(data, &header) != nil || header.Type == "" {
			// The relay only forwards validated envelopes; skip anything else.
			continue
		}

		s.mu.Lock()
		s.last = data
		s.lastTyp = header.Type
		handler := s.OnEnvelope
		s.mu.Unlock()

		if handler != nil {
			handler(header.Type, data)
		}
	}
}

// Send writes an envelope to the relay. When the socket is not connected it
// is a silent no-op: no error, no panic, the envelope is simply not sent.
func (s *Socket) Send(v interface{}) {
	s.mu.RLock()
	conn := s.conn
	connected := s.state == StateConnected
	s.mu.RUnlock()

	if !connected || conn == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		return
	}

	_ = conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.fail(err)
	}
}

// Last returns the most recent inbound envelope and its type. Each inbound
// envelope overwrites the previous one; consumers needing history must
// re-fetch through the REST API.
func (s *Socket) Last() (envType string, raw []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTyp, s.last
}

// State reports the current connection state.
func (s *Socket) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err returns the error that moved the socket into the error state, if any.
func (s *Socket) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Close shuts the socket down. The state becomes disconnected unless an
// error already made it terminal.
func (s *Socket) Close() error {
	s.mu.Lock()
	conn := s.conn
	if s.state == StateConnected || s.state == StateConnecting {
		s.state = StateDisconnected
	}
	s.mu.Unlock()

	if conn == nil {
		return nil
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(socketWriteWait))
	return conn.Close()
}

// Done is closed when the read loop exits.
func (s *Socket) Done() <-chan struct{} {
	if s.done == nil {
		return nil
	}
	return s.done
}

func (s *Socket) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDisconnected || s.state == StateError {
		return
	}
	s.state = StateError
	s.err = err
}
