// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveWebSockets is the gauge of currently open relay connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "verser_websocket_connections_active",
		Help: "Number of currently open WebSocket connections",
	})

	// RelayEnvelopes counts inbound relay envelopes by outcome.
	// Outcomes: "relayed", "malformed".
	RelayEnvelopes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verser_relay_envelopes_total",
		Help: "Total inbound relay envelopes by outcome",
	}, []string{"outcome"})

	// WebSocketBackpressureDrops counts messages dropped because a client's
	// send buffer was full or its channel already closed.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verser_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})

	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verser_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// MessageThroughput counts chat messages accepted by delivery path.
	// Paths: "http" (persisted then broadcast) and "socket" (relayed only).
	MessageThroughput = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verser_message_throughput_total",
		Help: "Total number of chat messages processed by delivery path",
	}, []string{"path"})
)
