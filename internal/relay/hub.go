package relay

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"sync"

	"verser/internal/middleware"
	"verser/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// Max total connections
	maxTotalConns = 10000
)

// Hub is the flat broadcast set: every registered connection receives every
// valid envelope except its own.
type Hub struct {
	mu       sync.RWMutex
	conns    map[*Client]struct{}
	shutdown chan struct{}
	done     chan struct{}
}

// NewHub creates an empty relay hub.
func NewHub() *Hub {
	return &Hub{
		conns:    make(map[*Client]struct{}),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Name returns a human-readable identifier for this hub.
func (h *Hub) Name() string { return "relay hub" }

// Register adds a connection to the broadcast set and returns its Client.
func (h *Hub) Register(conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.conns) >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	client := NewClient(h, conn)
	client.IncomingHandler = h.HandleInbound
	h.conns[client] = struct{}{}
	observability.ActiveWebSockets.Inc()
	return client, nil
}

// UnregisterClient removes a connection from the broadcast set. Only the
// departing connection is affected.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[client]; ok {
		delete(h.conns, client)
		observability.ActiveWebSockets.Dec()
	}
}

// HandleInbound validates one inbound payload and rebroadcasts it verbatim
// to every other connection. Malformed payloads are dropped and logged; the
// sender's connection stays open either way.
func (h *Hub) HandleInbound(sender *Client, data []byte) {
	env, err := ParseEnvelope(data)
	if err != nil {
		observability.RelayEnvelopes.WithLabelValues("malformed").Inc()
		middleware.Logger.Warn("dropping malformed relay payload",
			slog.Int("bytes", len(data)),
			slog.String("error", err.Error()),
		)
		return
	}

	observability.RelayEnvelopes.WithLabelValues("relayed").Inc()
	observability.MessageThroughput.WithLabelValues("socket").Inc()
	h.BroadcastExcept(sender, env.Raw)
}

// BroadcastExcept sends data to every registered connection except sender.
func (h *Hub) BroadcastExcept(sender *Client, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.conns {
		if c == sender {
			continue
		}
		c.TrySend(data)
	}
}

// Broadcast sends data to every registered connection. Used for
// server-originated envelopes, which have no sender to exclude.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.conns {
		c.TrySend(data)
	}
}

// ConnCount reports the current size of the broadcast set.
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// StartWiring connects the Notifier to this hub: envelopes published by
// other instances (or by this one's HTTP handlers) are broadcast to every
// local connection.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartSubscriber(ctx, func(payload string) {
		h.Broadcast([]byte(payload))
	})
}

// Shutdown gracefully closes all websocket connections
func (h *Hub) Shutdown(_ context.Context) error {
	close(h.shutdown)

	h.mu.Lock()
	for client := range h.conns {
		if client.Conn == nil {
			continue
		}
		if err := client.Conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
			log.Printf("failed to write close message: %v", err)
		}
		if err := client.Conn.Close(); err != nil {
			log.Printf("failed to close websocket: %v", err)
		}
	}
	observability.ActiveWebSockets.Sub(float64(len(h.conns)))
	h.conns = make(map[*Client]struct{})
	h.mu.Unlock()

	close(h.done)

	return nil
}
