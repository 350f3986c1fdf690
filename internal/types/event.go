package types

import "time"

// Event is a published event that attendees can register for.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Date      Date      `json:"date"`
	StartTime TimeOfDay `json:"startTime"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Registration records one attendee signing up for an event.
// Registrations are append-only.
type Registration struct {
	ID                 string    `json:"id"`
	EventID            string    `json:"eventId"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Pronouns           string    `json:"pronouns"`
	OptInCommunication bool      `json:"optInCommunication"`
	RegisteredAt       time.Time `json:"registeredAt"`
}
