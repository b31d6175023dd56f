package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"lending_backend/internal/domain"
)

// SnapshotSource computes the dashboard pushed to a client
type SnapshotSource interface {
	Snapshot(ctx context.Context, user *domain.User) (*domain.DashboardSnapshot, error)
}

// Hub tracks live dashboard connections. Each client polls the source on its
// own ticker; the hub only owns membership and shutdown.
type Hub struct {
	source   SnapshotSource
	interval time.Duration

	mu      sync.RWMutex
	clients map[*Client]struct{}

	done      chan struct{}
	closeOnce sync.Once
}

func NewHub(source SnapshotSource, interval time.Duration) *Hub {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Hub{
		source:   source,
		interval: interval,
		clients:  make(map[*Client]struct{}),
		done:     make(chan struct{}),
	}
}

func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	select {
	case <-h.done:
		return false
	default:
	}
	h.clients[c] = struct{}{}
	ConnectedClients.Inc()
	return true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		ConnectedClients.Dec()
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown asks every client to close and rejects new ones
func (h *Hub) Shutdown() {
	h.closeOnce.Do(func() { close(h.done) })
}

// snapshotFrame renders the current dashboard of user as a snapshot frame
func (h *Hub) snapshotFrame(ctx context.Context, user *domain.User) ([]byte, error) {
	snap, err := h.source.Snapshot(ctx, user)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: MsgSnapshot, Data: snap})
}
