package domain

// Connection is one live client session. The id is assigned by the
// transport at connect time and never reused.
type Connection interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Emitter delivers an already-encoded frame to a single connection by
// id. Unknown ids are a no-op, not an error.
type Emitter interface {
	Emit(connID string, data []byte)
}
