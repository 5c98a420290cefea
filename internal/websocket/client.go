package websocket

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"os-help-bot/internal/dto"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	turnTimeout    = 45 * time.Second
)

// Frame types
const (
	FrameMessage = "message"
	FrameReply   = "reply"
	FrameError   = "error"
)

// MessageSender runs one chat turn.
type MessageSender interface {
	SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	UserID string

	// Buffered channel of outbound frames.
	Send chan []byte
}

// readPump feeds inbound chat frames to the sender, one turn at a time.
func (c *Client) readPump(sender MessageSender) {
	defer func() {
		c.Hub.leave(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("SOCKET", "Unexpected close", map[string]interface{}{
					"user_id": c.UserID,
					"error":   err.Error(),
				})
			}
			break
		}

		ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
		frame := HandleFrame(ctx, sender, c.UserID, raw)
		cancel()
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))

		if frame.Type == FrameError {
			// errors only concern the socket that sent the frame
			c.enqueue(encodeFrame(frame))
			continue
		}
		c.Hub.SendToUser(c.UserID, encodeFrame(frame))
	}
}

func (c *Client) enqueue(data []byte) {
	select {
	case c.Send <- data:
	default:
	}
}

// writePump pumps frames from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// HandleFrame turns one inbound frame into the frame to send back.
// Plain text is accepted verbatim as a chat message too. Empty messages are
// forwarded; the chatbot answers them like any other turn.
func HandleFrame(ctx context.Context, sender MessageSender, userID string, raw []byte) dto.SocketMessage {
	text := string(raw)
	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		var in dto.SocketMessage
		if err := json.Unmarshal(raw, &in); err != nil {
			return dto.SocketMessage{Type: FrameError, Error: "malformed frame"}
		}
		if in.Type != "" && in.Type != FrameMessage {
			return dto.SocketMessage{Type: FrameError, Error: "unsupported frame type: " + in.Type}
		}
		text = in.Message
	}
	reply, err := sender.SendMessage(ctx, &dto.SendMessageRequest{UserId: userID, Message: text})
	if err != nil {
		return dto.SocketMessage{Type: FrameError, Message: text, Error: err.Error()}
	}
	return dto.SocketMessage{Type: FrameReply, Message: text, Reply: reply}
}

func encodeFrame(frame dto.SocketMessage) []byte {
	data, err := json.Marshal(frame)
	if err != nil {
		data, _ = json.Marshal(dto.SocketMessage{Type: FrameError, Error: err.Error()})
	}
	return data
}
