package room

import (
	"sort"
	"sync"
)

// Directory tracks room membership in both directions. Rooms have no
// lifecycle of their own: one appears when the first connection joins
// and is gone once the last member leaves.
type Directory struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]struct{} // roomID -> connIDs
	byConn map[string]map[string]struct{} // connID -> roomIDs
}

func NewDirectory() *Directory {
	return &Directory{
		rooms:  make(map[string]map[string]struct{}),
		byConn: make(map[string]map[string]struct{}),
	}
}

// Join adds the connection to a room. Joining twice has no additional
// effect.
func (d *Directory) Join(connID, roomID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.rooms[roomID] == nil {
		d.rooms[roomID] = make(map[string]struct{})
	}
	d.rooms[roomID][connID] = struct{}{}

	if d.byConn[connID] == nil {
		d.byConn[connID] = make(map[string]struct{})
	}
	d.byConn[connID][roomID] = struct{}{}
}

// Members returns the connection ids currently in a room, sorted for
// deterministic fan-out. Unknown rooms are empty, not an error.
func (d *Directory) Members(roomID string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	members := make([]string, 0, len(d.rooms[roomID]))
	for id := range d.rooms[roomID] {
		members = append(members, id)
	}
	sort.Strings(members)
	return members
}

// Rooms returns every room the connection currently belongs to.
func (d *Directory) Rooms(connID string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rooms := make([]string, 0, len(d.byConn[connID]))
	for id := range d.byConn[connID] {
		rooms = append(rooms, id)
	}
	sort.Strings(rooms)
	return rooms
}

// LeaveAll removes the connection from every room it belongs to,
// dropping rooms that become empty.
func (d *Directory) LeaveAll(connID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for roomID := range d.byConn[connID] {
		delete(d.rooms[roomID], connID)
		if len(d.rooms[roomID]) == 0 {
			delete(d.rooms, roomID)
		}
	}
	delete(d.byConn, connID)
}

// RoomCount returns the number of rooms with at least one member.
func (d *Directory) RoomCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rooms)
}
