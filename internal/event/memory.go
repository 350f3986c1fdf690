package event

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/youmna-rabie/event-registry/internal/types"
)

var ErrNotFound = errors.New("event not found")

// MemoryStore is an in-memory event store. Events are kept in insertion order
// with a map index for O(1) lookups by ID. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	events []types.Event
	index  map[string]int // event ID → position in events

	now   func() time.Time
	newID func() string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index: make(map[string]int),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Create stamps CreatedAt and UpdatedAt with the current time and appends the event.
func (s *MemoryStore) Create(in Input) types.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	ev := types.Event{
		ID:        s.newID(),
		Name:      in.Name,
		Location:  in.Location,
		Date:      in.Date,
		StartTime: in.StartTime,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.index[ev.ID] = len(s.events)
	s.events = append(s.events, ev)
	return ev
}

// Get retrieves an event by ID.
func (s *MemoryStore) Get(id string) (types.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return types.Event{}, ErrNotFound
	}
	return s.events[pos], nil
}

// Exists reports whether id resolves to a stored event at the time of the call.
func (s *MemoryStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.index[id]
	return ok
}

// List returns the events matching f, ordered by date then start time.
// Events sharing both keep their insertion order.
func (s *MemoryStore) List(f Filter) []types.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Whitespace-only means no filter; otherwise the value is matched as given.
	var location string
	if strings.TrimSpace(f.Location) != "" {
		location = strings.ToLower(f.Location)
	}

	result := make([]types.Event, 0, len(s.events))
	for _, ev := range s.events {
		if f.Date != nil && ev.Date != *f.Date {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(ev.Location), location) {
			continue
		}
		result = append(result, ev)
	}

	slices.SortStableFunc(result, func(a, b types.Event) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return a.StartTime.Compare(b.StartTime)
	})
	return result
}

// Update overwrites the fields set in p and refreshes UpdatedAt.
func (s *MemoryStore) Update(id string, p Patch) (types.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return types.Event{}, ErrNotFound
	}

	ev := &s.events[pos]
	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		ev.Name = *p.Name
	}
	if p.Location != nil && strings.TrimSpace(*p.Location) != "" {
		ev.Location = *p.Location
	}
	if p.Date != nil {
		ev.Date = *p.Date
	}
	if p.StartTime != nil {
		ev.StartTime = *p.StartTime
	}
	ev.UpdatedAt = s.now()

	return *ev, nil
}

// Delete removes the event identified by ID.
func (s *MemoryStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return false
	}

	s.events = slices.Delete(s.events, pos, pos+1)
	delete(s.index, id)
	// Shift the index of everything that moved down one slot.
	for i := pos; i < len(s.events); i++ {
		s.index[s.events[i].ID] = i
	}
	return true
}

// Count returns the number of events currently stored.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
