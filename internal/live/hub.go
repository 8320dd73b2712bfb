package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/idiomoji/server/internal/logger"
)

// Message is the envelope for every frame the hub sends.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// event is one leaderboard change queued for fan-out. The kind selects which
// subscribers receive it.
type event struct {
	kind string
	data []byte
}

// Hub fans leaderboard change events out to connected websocket clients.
// Clients re-fetch the leaderboard over HTTP when they receive an event, so
// the hub never carries row data itself.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *logger.Logger
}

// Client is one websocket subscriber. The kind filter limits which
// leaderboard events it receives ("daily", "timeattack", or "" for all).
type Client struct {
	hub  *Hub
	id   string
	conn *websocket.Conn
	send chan []byte
	kind string
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan event, 8),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        logger.Default().WithPrefix("live"),
	}
}

// Run owns the client set. It must be running before any client registers.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.log.Info("hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.Debug("client registered: id=%s kind=%q total=%d", client.id, client.kind, h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.log.Debug("client unregistered: id=%s total=%d", client.id, h.ClientCount())

		case ev := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if client.kind != "" && client.kind != ev.kind {
					continue
				}
				select {
				case client.send <- ev.data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// LeaderboardChanged broadcasts a change event for the given leaderboard kind.
// Satisfies worker.Publisher.
func (h *Hub) LeaderboardChanged(kind string) {
	msg := Message{
		Type:    "leaderboard_changed",
		Payload: map[string]string{"kind": kind},
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("failed to marshal leaderboard event: %v", err)
		return
	}

	select {
	case h.broadcast <- event{kind: kind, data: data}:
	default:
		h.log.Warn("broadcast queue full, dropping %s leaderboard event", kind)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RegisterClient wraps an upgraded connection and starts its pumps.
func (h *Hub) RegisterClient(conn *websocket.Conn, kind string) *Client {
	client := &Client{
		hub:  h,
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 16),
		kind: kind,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
	return client
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug("read error on client %s: %v", c.id, err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Type == "ping" {
			data, _ := json.Marshal(Message{Type: "pong"})
			select {
			case c.send <- data:
			default:
			}
		}
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
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
