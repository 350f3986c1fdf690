package event

import "github.com/youmna-rabie/event-registry/internal/types"

// Input carries the fields of a new event. Values are expected to be validated
// by the caller.
type Input struct {
	Name      string
	Location  string
	Date      types.Date
	StartTime types.TimeOfDay
}

// Patch describes a partial update. Nil fields are left untouched, and so are
// blank strings: a name or location can be replaced but never cleared.
type Patch struct {
	Name      *string
	Location  *string
	Date      *types.Date
	StartTime *types.TimeOfDay
}

// Filter narrows List results. Zero value matches everything.
type Filter struct {
	// Date, when set, must equal the event date.
	Date *types.Date
	// Location is matched as a case-insensitive substring. Blank means no filter.
	Location string
}

// Store defines the operations on the event collection.
type Store interface {
	// Create adds a new event with a fresh ID and returns it.
	Create(in Input) types.Event

	// Get retrieves an event by ID. Returns ErrNotFound if absent.
	Get(id string) (types.Event, error)

	// Exists reports whether id currently resolves to an event.
	Exists(id string) bool

	// List returns matching events ordered by date, then start time.
	List(f Filter) []types.Event

	// Update applies p to the event and refreshes UpdatedAt.
	// Returns ErrNotFound if absent.
	Update(id string, p Patch) (types.Event, error)

	// Delete removes the event and reports whether it existed.
	Delete(id string) bool

	// Count returns the number of events currently stored.
	Count() int
}
