package registration

import "github.com/youmna-rabie/event-registry/internal/types"

// Input carries the fields of a new registration. Values are expected to be
// validated by the caller.
type Input struct {
	EventID            string
	Name               string
	Email              string
	Pronouns           string
	OptInCommunication bool
}

// EventLookup answers point-in-time existence checks against the event store.
type EventLookup interface {
	Exists(id string) bool
}

// Store defines the operations on the registration collection. Registrations
// are append-only: there is no update or delete.
type Store interface {
	// Create adds a registration for an existing event.
	// Returns ErrEventNotFound if the event does not exist.
	Create(in Input) (types.Registration, error)

	// Get retrieves a registration by ID. Returns ErrNotFound if absent.
	Get(id string) (types.Registration, error)

	// ListByEvent returns the registrations for eventID in registration order.
	ListByEvent(eventID string) []types.Registration

	// Count returns the number of registrations currently stored.
	Count() int
}
