package server

import (
	"verser/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RelayUpgrade gates the relay endpoint to genuine WebSocket upgrade
// requests.
func (s *Server) RelayUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// RelayHandler returns the WebSocket handler for the relay endpoint. The
// relay is anonymous: it never reads auth state and rebroadcasts each
// well-formed envelope to every other connection verbatim.
func (s *Server) RelayHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client, err := s.hub.Register(conn)
		if err != nil {
			middleware.Logger.Warn("relay connection rejected", "error", err)
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "relay full"))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		// ReadPump blocks for the lifetime of the connection and
		// unregisters the client on exit.
		client.ReadPump()
	})
}
