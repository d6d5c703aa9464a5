package events

import (
	"context"
	"sync"
)

// DefaultCapacity bounds the number of events kept by a MemoryStore.
const DefaultCapacity = 256

// MemoryStore keeps the most recent events in a ring buffer.
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	events   []Event
	next     int
	full     bool
}

// NewMemoryStore constructs a store holding up to capacity events.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{capacity: capacity, events: make([]Event, capacity)}
}

// Append records event, evicting the oldest one when full.
func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[s.next] = event
	s.next = (s.next + 1) % s.capacity
	if s.next == 0 {
		s.full = true
	}
	return nil
}

// Recent returns up to limit events, newest first. A non-positive limit
// returns everything retained.
func (s *MemoryStore) Recent(limit int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	size := s.next
	if s.full {
		size = s.capacity
	}
	if limit <= 0 || limit > size {
		limit = size
	}
	out := make([]Event, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (s.next - i + s.capacity) % s.capacity
		out = append(out, s.events[idx])
	}
	return out
}
