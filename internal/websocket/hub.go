package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ikkim/permit-backend/pkg/logger"
)

// Event is pushed to every admin subscribed to its type.
type Event struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// ClientMessage is sent by a dashboard to narrow its feed.
// An empty Events list subscribes to everything.
type ClientMessage struct {
	Type   string   `json:"type"` // subscribe
	Events []string `json:"events"`
}

// Client is one connected dashboard.
type Client struct {
	Hub           *Hub
	Conn          *Conn
	SessionID     string
	Send          chan []byte
	events        map[string]bool
	mu            sync.RWMutex
	MessageCount  int
	LastResetTime time.Time
	RateMu        sync.Mutex
}

func NewClient(hub *Hub, conn *Conn, sessionID string) *Client {
	return &Client{
		Hub:       hub,
		Conn:      conn,
		SessionID: sessionID,
		Send:      make(chan []byte, 64),
	}
}

// Wants reports whether the client subscribed to eventType.
func (c *Client) Wants(eventType string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events) == 0 || c.events[eventType]
}

func (c *Client) subscribe(events []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = make(map[string]bool, len(events))
	for _, e := range events {
		c.events[e] = true
	}
}

// Hub fans application events out to connected admin dashboards.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Event
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *Event, 1024),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"session_id":    client.SessionID,
				"total_clients": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("WebSocket client unregistered", map[string]interface{}{
				"session_id":    client.SessionID,
				"total_clients": total,
			})

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				logger.Error("Failed to marshal event", err, map[string]interface{}{
					"type": event.Type,
				})
				continue
			}
			h.mu.RLock()
			for client := range h.clients {
				if !client.Wants(event.Type) {
					continue
				}
				select {
				case client.Send <- data:
				default:
					go h.Unregister(client)
					logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
						"session_id": client.SessionID,
					})
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop closes every client and ends Run.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Notify queues an event for broadcast. Events are dropped when the queue is full.
func (h *Hub) Notify(eventType string, data map[string]interface{}) {
	select {
	case h.broadcast <- &Event{Type: eventType, Data: data, Timestamp: time.Now()}:
	default:
		logger.Warn("Broadcast channel full, event dropped", map[string]interface{}{
			"type": eventType,
		})
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of connected dashboards.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleClientMessage applies a dashboard's subscription request.
func (h *Hub) HandleClientMessage(client *Client, message []byte) {
	client.RateMu.Lock()
	now := time.Now()
	if now.Sub(client.LastResetTime) >= time.Second {
		client.MessageCount = 0
		client.LastResetTime = now
	}
	client.MessageCount++
	count := client.MessageCount
	client.RateMu.Unlock()

	if count > maxMessagesPerSecond {
		logger.Warn("Rate limit exceeded", map[string]interface{}{
			"session_id": client.SessionID,
			"count":      count,
		})
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		logger.Warn("Failed to parse client message", map[string]interface{}{
			"session_id": client.SessionID,
			"error":      err.Error(),
		})
		return
	}

	if msg.Type == "subscribe" {
		client.subscribe(msg.Events)
		logger.Debug("Client subscription updated", map[string]interface{}{
			"session_id": client.SessionID,
			"events":     msg.Events,
		})
	}
}
