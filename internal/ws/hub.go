package ws

import (
	"log/slog"
	"sync"

	"codesync-server/internal/domain"
)

// Hub is the process-wide table of live connections keyed by id. Room
// membership lives in the directory; the hub only resolves ids to
// transports for delivery.
type Hub struct {
	mu    sync.RWMutex
	log   *slog.Logger
	conns map[string]domain.Connection
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:   log,
		conns: make(map[string]domain.Connection),
	}
}

func (h *Hub) Register(conn domain.Connection) {
	h.mu.Lock()
	h.conns[conn.ID()] = conn
	count := len(h.conns)
	h.mu.Unlock()

	h.log.Info("client.connected", "connId", conn.ID(), "clients", count)
}

func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	delete(h.conns, connID)
	count := len(h.conns)
	h.mu.Unlock()

	h.log.Info("client.disconnected", "connId", connID, "clients", count)
}

// Emit delivers a frame to one connection. Unknown ids and nil frames
// are dropped.
func (h *Hub) Emit(connID string, data []byte) {
	if data == nil {
		return
	}

	h.mu.RLock()
	conn, ok := h.conns[connID]
	h.mu.RUnlock()

	if !ok {
		return
	}
	if err := conn.Send(data); err != nil {
		h.log.Warn("client.send", "connId", connID, "err", err)
	}
}

// ClientCount returns the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
