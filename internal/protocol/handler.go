package protocol

import (
	"encoding/json"
	"log/slog"
	"sync"

	"codesync-server/internal/domain"
	"codesync-server/internal/registry"
	"codesync-server/internal/room"
)

// Handler is the room synchronization state machine. Every transition
// runs under one mutex so membership reads and the resulting fan-out
// are atomic with respect to other transitions.
type Handler struct {
	mu       sync.Mutex
	log      *slog.Logger
	registry *registry.Registry
	rooms    *room.Directory
	emitter  domain.Emitter
}

func NewHandler(log *slog.Logger, reg *registry.Registry, dir *room.Directory, em domain.Emitter) *Handler {
	return &Handler{
		log:      log,
		registry: reg,
		rooms:    dir,
		emitter:  em,
	}
}

// HandleMessage dispatches one inbound frame. Malformed frames are
// dropped; nothing on this channel is request/response, so no error
// ever goes back to the sender.
func (h *Handler) HandleMessage(conn domain.Connection, data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		h.log.Debug("protocol.drop", "connId", conn.ID(), "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	switch env.Event {
	case EventJoin:
		h.handleJoin(conn, env.Data)
	case EventCodeChange:
		h.handleCodeChange(conn, env.Data)
	case EventSyncCode:
		h.handleSyncCode(conn, env.Data)
	default:
		h.log.Debug("protocol.drop", "connId", conn.ID(), "event", env.Event)
	}
}

// HandleDisconnect notifies every room the connection belonged to,
// then tears down its registry binding and memberships. Membership is
// read before teardown so the room list still includes the departing
// connection.
func (h *Handler) HandleDisconnect(conn domain.Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	username, _ := h.registry.Lookup(conn.ID())
	frame := h.encode(EventDisconnected, DisconnectedPayload{
		SocketID: conn.ID(),
		Username: username,
	})

	for _, roomID := range h.rooms.Rooms(conn.ID()) {
		for _, member := range h.rooms.Members(roomID) {
			if member == conn.ID() {
				continue
			}
			h.emitter.Emit(member, frame)
		}
	}

	h.registry.Unbind(conn.ID())
	h.rooms.LeaveAll(conn.ID())
}

func (h *Handler) handleJoin(conn domain.Connection, data json.RawMessage) {
	var p JoinPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		h.log.Debug("protocol.drop", "connId", conn.ID(), "event", EventJoin)
		return
	}

	h.registry.Bind(conn.ID(), p.Username)
	h.rooms.Join(conn.ID(), p.RoomID)

	members := h.rooms.Members(p.RoomID)
	clients := make([]ClientInfo, len(members))
	for i, id := range members {
		name, _ := h.registry.Lookup(id)
		clients[i] = ClientInfo{SocketID: id, Username: name}
	}

	frame := h.encode(EventJoined, JoinedPayload{
		Clients:  clients,
		Username: p.Username,
		SocketID: conn.ID(),
	})

	// The joiner gets its own join event: old and new clients rebuild
	// an identical member list from the same frame.
	for _, member := range members {
		h.emitter.Emit(member, frame)
	}

	h.log.Info("room.join", "room", p.RoomID, "connId", conn.ID(), "username", p.Username, "members", len(members))
}

func (h *Handler) handleCodeChange(conn domain.Connection, data json.RawMessage) {
	var p CodeChangePayload
	if err := json.Unmarshal(data, &p); err != nil || p.Code == nil {
		h.log.Debug("protocol.drop", "connId", conn.ID(), "event", EventCodeChange)
		return
	}

	frame := h.encode(EventCodeChange, CodeChangeEvent{Code: *p.Code})

	// Sender excluded: its local buffer is already authoritative for
	// this edit.
	for _, member := range h.rooms.Members(p.RoomID) {
		if member == conn.ID() {
			continue
		}
		h.emitter.Emit(member, frame)
	}
}

func (h *Handler) handleSyncCode(conn domain.Connection, data json.RawMessage) {
	var p SyncCodePayload
	if err := json.Unmarshal(data, &p); err != nil || p.Code == nil {
		h.log.Debug("protocol.drop", "connId", conn.ID(), "event", EventSyncCode)
		return
	}

	// Unicast catch-up: the server never stores buffer content, a peer
	// supplies it to the late joiner directly.
	h.emitter.Emit(p.SocketID, h.encode(EventCodeChange, CodeChangeEvent{Code: *p.Code}))
}

func (h *Handler) encode(event string, payload any) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("protocol.encode", "event", event, "err", err)
		return nil
	}
	frame, _ := json.Marshal(Envelope{Event: event, Data: data})
	return frame
}
