package websocket

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	sendBufferSize = 256
)

// Client is one player connection. Send is written by the hub goroutine only
// and closed by it on unregister.
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID string
	UserID    string
	TopicID   string
}

func NewClient(hub *Hub, conn *websocket.Conn, sessionID, userID, topicID string) *Client {
	return &Client{
		Hub:       hub,
		Conn:      conn,
		Send:      make(chan []byte, sendBufferSize),
		SessionID: sessionID,
		UserID:    userID,
		TopicID:   topicID,
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("session_id", c.SessionID).Msg("WebSocket read error")
			}
			break
		}

		cmd, err := DecodeCommand(data)
		if !c.Hub.dispatch(&ClientMessage{Client: c, Command: cmd, Err: err}) {
			break
		}
	}
}

func (c *Client) WritePump() {
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
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One frame per message: clients parse each frame as a single JSON object.
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debug().Err(err).Str("session_id", c.SessionID).Msg("WebSocket write failed")
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

// SendMessage queues a frame. A client that stops reading is disconnected
// rather than stalling the hub.
func (c *Client) SendMessage(msgType MessageType, payload any) {
	data, err := json.Marshal(Message{Type: msgType, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("type", string(msgType)).Msg("Failed to marshal message")
		return
	}
	select {
	case c.Send <- data:
	default:
		log.Warn().Str("session_id", c.SessionID).Msg("Client send buffer full, closing connection")
		if c.Conn != nil {
			c.Conn.Close()
		}
	}
}

func (c *Client) SendError(code, message string) {
	c.SendMessage(MessageTypeError, ErrorPayload{Code: code, Message: message})
}
