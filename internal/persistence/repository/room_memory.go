package repository

import (
	"context"
	"sync"

	"github.com/parleychat/parley/internal/domain"
)

type memoryRoom struct {
	members  map[string]bool
	messages []domain.Message
}

// MemoryRoomStore is an in-process RoomStore with the same atomicity
// contract as the Redis store. Used by tests and single-node development
// runs; state does not survive a restart.
type MemoryRoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*memoryRoom
}

func NewMemoryRoomStore() *MemoryRoomStore {
	return &MemoryRoomStore{
		rooms: make(map[string]*memoryRoom),
	}
}

func (s *MemoryRoomStore) CreateRoom(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[code]; ok {
		return domain.ErrRoomAlreadyExists
	}

	s.rooms[code] = &memoryRoom{
		members:  make(map[string]bool),
		messages: make([]domain.Message, 0),
	}
	return nil
}

func (s *MemoryRoomStore) Exists(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.rooms[code]
	return ok, nil
}

func (s *MemoryRoomStore) Members(_ context.Context, code string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[code]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	return copyMembers(room.members), nil
}

func (s *MemoryRoomStore) Messages(_ context.Context, code string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[code]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	messages := make([]domain.Message, len(room.messages))
	copy(messages, room.messages)
	return messages, nil
}

func (s *MemoryRoomStore) UpdateMembers(_ context.Context, code string, fn func(members map[string]bool)) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	fn(room.members)
	return copyMembers(room.members), nil
}

func (s *MemoryRoomStore) AppendMessage(_ context.Context, code string, msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok {
		return domain.ErrRoomNotFound
	}

	room.messages = append(room.messages, msg)
	return nil
}

func copyMembers(members map[string]bool) map[string]bool {
	out := make(map[string]bool, len(members))
	for name, present := range members {
		out[name] = present
	}
	return out
}
