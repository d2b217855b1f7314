// Package store keeps the in-memory registry of live rooms.
package store

import (
	"sync"

	"github.com/aaronzipp/serpents-and-stairways/internal/game"
	"github.com/aaronzipp/serpents-and-stairways/internal/room"
)

// RoomStore manages room storage
type RoomStore struct {
	rooms map[string]*room.Room
	mu    sync.RWMutex
}

// NewRoomStore creates a new room store
func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*room.Room),
	}
}

// Get retrieves a room by code
func (s *RoomStore) Get(code string) (*room.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, exists := s.rooms[code]
	return r, exists
}

// Set stores a room
func (s *RoomStore) Set(code string, r *room.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[code] = r
}

// Delete removes a room
func (s *RoomStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

// Exists checks if a room code is taken
func (s *RoomStore) Exists(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.rooms[code]
	return exists
}

// UniqueCode generates a room code no live room is using
func (s *RoomStore) UniqueCode() string {
	for {
		code := game.GenerateRoomCode()
		if !s.Exists(code) {
			return code
		}
	}
}
