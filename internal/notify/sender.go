package notify

import "context"

// Confirmation is what an attendee is told after registering.
type Confirmation struct {
	RegistrationID string `json:"registration_id"`
	EventID        string `json:"event_id"`
	Recipient      string `json:"recipient"`
	Name           string `json:"name"`
	// Subscribed is true when the attendee opted in to further communication.
	Subscribed bool `json:"subscribed"`
}

// Sender delivers registration confirmations.
type Sender interface {
	SendConfirmation(ctx context.Context, c Confirmation) error
}
