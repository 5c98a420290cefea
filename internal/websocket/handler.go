package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ServeWs registers the connection and blocks until the peer goes away.
func ServeWs(hub *Hub, sender MessageSender, c *websocket.Conn, userID string) {
	client := &Client{Hub: hub, Conn: c, UserID: userID, Send: make(chan []byte, 256)}
	if !hub.join(client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump(sender)
}

// RegisterRoutes mounts the chat socket at /chat/ws/:userId.
func RegisterRoutes(r fiber.Router, hub *Hub, sender MessageSender) {
	r.Use("/chat/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	r.Get("/chat/ws/:userId", websocket.New(func(c *websocket.Conn) {
		ServeWs(hub, sender, c, c.Params("userId"))
	}))
}
