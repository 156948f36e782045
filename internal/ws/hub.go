package ws

import (
	"encoding/json"
	"sync"
	"time"
	"zapzap/backend/internal/model"

	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

const (
	writeWait          = 10 * time.Second
	pongWait           = 60 * time.Second
	pingPeriod         = (pongWait * 9) / 10
	maxMessageSize     = 64 * 1024 // 64KB
	maxSendChannelSize = 256
)

const (
	EventTypeMessage = "message"
)

// Event is what goes down the wire to a connected client.
type Event struct {
	Type      string         `json:"type"`
	Message   *model.Message `json:"message,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Metrics are cheap counters over the hub's lifetime.
type Metrics struct {
	Connections  atomic.Int64
	MessagesSent atomic.Int64
	Errors       atomic.Int64
}

// Hub keeps one registry entry per connected user. A user may hold
// several connections (several tabs); every one of them gets each event.
// The hub replaces client polling: whenever a message is stored, it is
// pushed to everyone who should see it.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	metrics Metrics
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.userID]; !ok {
		h.clients[c.userID] = make(map[*Client]struct{})
	}
	h.clients[c.userID][c] = struct{}{}
	h.metrics.Connections.Inc()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[c.userID]; ok {
		if _, ok := conns[c]; ok {
			delete(conns, c)
			close(c.send)
			if len(conns) == 0 {
				delete(h.clients, c.userID)
			}
		}
	}
}

// Notify implements service.Notifier: fan the message out to every
// connection of every listed user. Slow consumers are dropped rather
// than blocking the send path.
func (h *Hub) Notify(userIDs []string, msg *model.Message) {
	ev := Event{
		Type:      EventTypeMessage,
		Message:   msg,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).Error("hub: failed to marshal event")
		h.metrics.Errors.Inc()
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := make(map[*Client]struct{})
	for _, userID := range userIDs {
		for c := range h.clients[userID] {
			if _, ok := delivered[c]; ok {
				continue
			}
			delivered[c] = struct{}{}
			select {
			case c.send <- data:
				h.metrics.MessagesSent.Inc()
			default:
				h.metrics.Errors.Inc()
				go c.conn.Close()
			}
		}
	}
}

// ConnectedUsers returns the user ids with at least one live connection.
func (h *Hub) ConnectedUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}
