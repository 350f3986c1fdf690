package notify

import (
	"context"
	"log/slog"
)

type handlers struct {
	sender Sender
	logger *slog.Logger
}

func (h *handlers) auditEventCreated(ctx context.Context, ev *EventCreated) error {
	h.logger.InfoContext(ctx, "event created",
		"event_id", ev.EventID,
		"name", ev.Name,
		"date", ev.Date.String(),
	)
	return nil
}

func (h *handlers) auditEventUpdated(ctx context.Context, ev *EventUpdated) error {
	h.logger.InfoContext(ctx, "event updated",
		"event_id", ev.EventID,
		"name", ev.Name,
		"date", ev.Date.String(),
	)
	return nil
}

func (h *handlers) auditEventDeleted(ctx context.Context, ev *EventDeleted) error {
	h.logger.InfoContext(ctx, "event deleted", "event_id", ev.EventID)
	return nil
}

func (h *handlers) auditRegistrationCreated(ctx context.Context, ev *RegistrationCreated) error {
	h.logger.InfoContext(ctx, "registration created",
		"registration_id", ev.RegistrationID,
		"event_id", ev.EventID,
	)
	return nil
}

// sendConfirmation never returns the sender's error: a failed confirmation is
// logged and acked so the message is not redelivered forever.
func (h *handlers) sendConfirmation(ctx context.Context, ev *RegistrationCreated) error {
	err := h.sender.SendConfirmation(ctx, Confirmation{
		RegistrationID: ev.RegistrationID,
		EventID:        ev.EventID,
		Recipient:      ev.Email,
		Name:           ev.Name,
		Subscribed:     ev.OptInCommunication,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "failed to send registration confirmation",
			"error", err,
			"registration_id", ev.RegistrationID,
		)
	}
	return nil
}
