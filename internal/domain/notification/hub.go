package notification

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// WSEvent is a real-time event pushed to clients
type WSEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

const EventNewNotification = "new_notification"

// connection represents a single WebSocket client
type connection struct {
	accountID int64
	conn      *websocket.Conn
	send      chan []byte
}

// Hub manages all active WebSocket connections
type Hub struct {
	mu          sync.RWMutex
	connections map[int64]*connection // accountID -> connection
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*connection),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c.accountID] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.accountID]; ok && existing == c {
		delete(h.connections, c.accountID)
		close(c.send)
	}
}

// Push sends an event to one account if it has a live connection.
func (h *Hub) Push(accountID int64, event *WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.connections[accountID]
	if !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		// Client too slow — skip
	}
}

// ServeWS registers a new connection and starts read/write loops
func (h *Hub) ServeWS(conn *websocket.Conn, accountID int64) {
	c := &connection{
		accountID: accountID,
		conn:      conn,
		send:      make(chan []byte, 256),
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c) // blocks until disconnect
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Clients only listen; inbound frames just keep the connection alive.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
