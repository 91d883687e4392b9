package ws

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"codesync-server/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024 * 1024
)

// MessageHandler consumes inbound frames and disconnects. Implemented
// by the protocol handler.
type MessageHandler interface {
	HandleMessage(conn domain.Connection, data []byte)
	HandleDisconnect(conn domain.Connection)
}

type Client struct {
	id      string
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	handler MessageHandler
	log     *slog.Logger
}

func newUpgrader(clientURL string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == clientURL
		},
	}
}

// ServeWs upgrades an HTTP request and starts the read/write pumps for
// a new connection.
func ServeWs(hub *Hub, handler MessageHandler, log *slog.Logger, clientURL string) http.HandlerFunc {
	upgrader := newUpgrader(clientURL)

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("ws.upgrade", "err", err)
			return
		}

		client := &Client{
			id:      uuid.New().String(),
			hub:     hub,
			conn:    conn,
			send:    make(chan []byte, 256),
			handler: handler,
			log:     log,
		}

		hub.Register(client)

		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) ID() string { return c.id }

// Send queues a frame without blocking. A receiver that cannot keep up
// loses the frame rather than stalling the sender's transition.
func (c *Client) Send(data []byte) error {
	select {
	case c.send <- data:
		return nil
	default:
		return websocket.ErrCloseSent
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) readPump() {
	defer func() {
		c.handler.HandleDisconnect(c)
		c.hub.Unregister(c.id)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("ws.read", "connId", c.id, "err", err)
			}
			break
		}

		c.handler.HandleMessage(c, message)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
