package registration

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/youmna-rabie/event-registry/internal/types"
)

var (
	ErrNotFound      = errors.New("registration not found")
	ErrEventNotFound = errors.New("event not found")
)

// MemoryStore is an append-only, in-memory registration store. It is safe for
// concurrent use.
type MemoryStore struct {
	events EventLookup

	mu    sync.RWMutex
	regs  []types.Registration
	index map[string]int // registration ID → position in regs

	now   func() time.Time
	newID func() string
}

// NewMemoryStore creates an empty MemoryStore that checks event existence
// against events.
func NewMemoryStore(events EventLookup) *MemoryStore {
	return &MemoryStore{
		events: events,
		index:  make(map[string]int),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Create appends a registration after checking that its event exists.
//
// The existence check runs before this store's lock is taken and no lock on
// the event store is held afterwards, so an event deleted concurrently may
// still end up with a registration.
func (s *MemoryStore) Create(in Input) (types.Registration, error) {
	if !s.events.Exists(in.EventID) {
		return types.Registration{}, ErrEventNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reg := types.Registration{
		ID:                 s.newID(),
		EventID:            in.EventID,
		Name:               in.Name,
		Email:              in.Email,
		Pronouns:           in.Pronouns,
		OptInCommunication: in.OptInCommunication,
		RegisteredAt:       s.now(),
	}

	s.index[reg.ID] = len(s.regs)
	s.regs = append(s.regs, reg)
	return reg, nil
}

// Get retrieves a registration by ID.
func (s *MemoryStore) Get(id string) (types.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return types.Registration{}, ErrNotFound
	}
	return s.regs[pos], nil
}

// ListByEvent returns the registrations for eventID in the order they were
// created. The event itself is not looked up, so registrations of a deleted
// event are still returned.
func (s *MemoryStore) ListByEvent(eventID string) []types.Registration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []types.Registration{}
	for _, reg := range s.regs {
		if reg.EventID == eventID {
			result = append(result, reg)
		}
	}
	return result
}

// Count returns the number of registrations currently stored.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.regs)
}
