package notify

import (
	"time"

	"github.com/youmna-rabie/event-registry/internal/types"
)

// EventCreated is published after an event is created.
type EventCreated struct {
	EventID    string          `json:"event_id"`
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	Date       types.Date      `json:"date"`
	StartTime  types.TimeOfDay `json:"start_time"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// EventUpdated is published after an event is updated.
type EventUpdated struct {
	EventID    string          `json:"event_id"`
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	Date       types.Date      `json:"date"`
	StartTime  types.TimeOfDay `json:"start_time"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// EventDeleted is published after an event is deleted.
type EventDeleted struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RegistrationCreated is published after an attendee registers.
type RegistrationCreated struct {
	RegistrationID     string    `json:"registration_id"`
	EventID            string    `json:"event_id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	OptInCommunication bool      `json:"opt_in_communication"`
	RegisteredAt       time.Time `json:"registered_at"`
}

// NewEventCreated builds an EventCreated message from ev.
func NewEventCreated(ev types.Event) EventCreated {
	return EventCreated{
		EventID:    ev.ID,
		Name:       ev.Name,
		Location:   ev.Location,
		Date:       ev.Date,
		StartTime:  ev.StartTime,
		OccurredAt: ev.CreatedAt,
	}
}

// NewEventUpdated builds an EventUpdated message from ev.
func NewEventUpdated(ev types.Event) EventUpdated {
	return EventUpdated{
		EventID:    ev.ID,
		Name:       ev.Name,
		Location:   ev.Location,
		Date:       ev.Date,
		StartTime:  ev.StartTime,
		OccurredAt: ev.UpdatedAt,
	}
}

// NewRegistrationCreated builds a RegistrationCreated message from reg.
func NewRegistrationCreated(reg types.Registration) RegistrationCreated {
	return RegistrationCreated{
		RegistrationID:     reg.ID,
		EventID:            reg.EventID,
		Name:               reg.Name,
		Email:              reg.Email,
		OptInCommunication: reg.OptInCommunication,
		RegisteredAt:       reg.RegisteredAt,
	}
}
