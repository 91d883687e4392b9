package registry

import "sync"

// Registry maps connection ids to display names. Names are bound at
// join time and are not unique across connections.
type Registry struct {
	mu    sync.RWMutex
	names map[string]string
}

func New() *Registry {
	return &Registry{names: make(map[string]string)}
}

// Bind records the display name for a connection, overwriting any
// previous binding.
func (r *Registry) Bind(connID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[connID] = name
}

// Lookup returns the bound name and whether a binding exists.
func (r *Registry) Lookup(connID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.names[connID]
	return name, ok
}

// Unbind removes the binding; no-op if absent.
func (r *Registry) Unbind(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.names, connID)
}
