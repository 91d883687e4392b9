package protocol

import "encoding/json"

// Event names shared with the editor frontend.
const (
	EventJoin         = "join"
	EventJoined       = "joined"
	EventCodeChange   = "code-change"
	EventSyncCode     = "sync-code"
	EventDisconnected = "disconnected"
)

// Envelope is the wire frame: an event name plus its payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ClientInfo identifies one room member in a JOINED payload.
type ClientInfo struct {
	SocketID string `json:"socketId"`
	Username string `json:"username"`
}

// JoinPayload is sent by a client entering a room.
type JoinPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// JoinedPayload is broadcast to every room member, including the
// joiner, so all clients rebuild the same member list from one event.
type JoinedPayload struct {
	Clients  []ClientInfo `json:"clients"`
	Username string       `json:"username"`
	SocketID string       `json:"socketId"`
}

// CodeChangePayload carries an edit. Code is a pointer so a missing or
// non-string field can be told apart from an empty buffer.
type CodeChangePayload struct {
	RoomID string  `json:"roomId"`
	Code   *string `json:"code"`
}

// SyncCodePayload asks the server to deliver the current buffer to one
// peer, typically a late joiner.
type SyncCodePayload struct {
	SocketID string  `json:"socketId"`
	Code     *string `json:"code"`
}

// CodeChangeEvent is the outbound form of a relayed edit.
type CodeChangeEvent struct {
	Code string `json:"code"`
}

// DisconnectedPayload notifies remaining members that a peer left.
type DisconnectedPayload struct {
	SocketID string `json:"socketId"`
	Username string `json:"username"`
}
