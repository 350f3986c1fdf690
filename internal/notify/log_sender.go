package notify

import (
	"context"
	"log/slog"
)

// LogSender is a Sender that only logs the confirmation. It stands in for a
// mail transport in development.
type LogSender struct {
	Logger *slog.Logger
}

// SendConfirmation logs the confirmation and never fails.
func (s *LogSender) SendConfirmation(_ context.Context, c Confirmation) error {
	s.Logger.Info("registration confirmation",
		"registration_id", c.RegistrationID,
		"event_id", c.EventID,
		"recipient", c.Recipient,
		"subscribed", c.Subscribed,
	)
	return nil
}
