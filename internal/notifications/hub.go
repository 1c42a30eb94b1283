package notifications

import (
	"context"
	"errors"
	"log"
	"sync"

	"forumapi/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	maxConnsPerThread = 500
	maxTotalConns     = 10000
)

var (
	ErrHubClosed       = errors.New("hub is shutting down")
	ErrServerConnLimit = errors.New("server connection limit reached")
	ErrThreadConnLimit = errors.New("thread connection limit reached")
)

// ThreadHub maps threadID -> watching clients.
type ThreadHub struct {
	mu         sync.RWMutex
	conns      map[string]map[*Client]struct{}
	totalConns int
	closed     bool
}

// NewThreadHub creates an empty hub.
func NewThreadHub() *ThreadHub {
	return &ThreadHub{conns: make(map[string]map[*Client]struct{})}
}

// Name returns a human-readable identifier for this hub.
func (h *ThreadHub) Name() string { return "thread hub" }

// Register adds a watcher for threadID. conn may be nil in tests.
func (h *ThreadHub) Register(threadID string, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	if h.totalConns >= maxTotalConns {
		return nil, ErrServerConnLimit
	}

	m, ok := h.conns[threadID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[threadID] = m
	}
	if len(m) >= maxConnsPerThread {
		return nil, ErrThreadConnLimit
	}

	client := NewClient(h, conn, threadID)
	m[client] = struct{}{}
	h.totalConns++
	observability.WebSocketConnectionsTotal.Inc()
	return client, nil
}

// UnregisterClient removes the client and closes its send channel. Safe to call twice.
func (h *ThreadHub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.conns[client.ThreadID]
	if !ok {
		return
	}
	if _, exists := m[client]; !exists {
		return
	}
	delete(m, client)
	close(client.Send)
	h.totalConns--
	observability.WebSocketConnectionsTotal.Dec()
	if len(m) == 0 {
		delete(h.conns, client.ThreadID)
	}
}

// Broadcast sends message to every client watching threadID.
func (h *ThreadHub) Broadcast(threadID, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.conns[threadID]; ok {
		data := []byte(message)
		for c := range clients {
			c.TrySend(data)
		}
	}
}

// Watchers reports how many clients are watching threadID.
func (h *ThreadHub) Watchers(threadID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[threadID])
}

// StartWiring subscribes to thread channels and fans messages out to local watchers.
func (h *ThreadHub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartPatternSubscriber(ctx, func(channel, payload string) {
		threadID, ok := ThreadIDFromChannel(channel)
		if !ok {
			log.Printf("invalid thread channel: %s", channel)
			return
		}
		h.Broadcast(threadID, payload)
	})
}

// Shutdown refuses new watchers and closes every send channel. Each
// client's WritePump owns its connection and sends the going-away frame.
func (h *ThreadHub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for _, clients := range h.conns {
		for client := range clients {
			close(client.Send)
			observability.WebSocketConnectionsTotal.Dec()
		}
	}
	h.conns = make(map[string]map[*Client]struct{})
	h.totalConns = 0
	return nil
}
