package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfirmation() Confirmation {
	return Confirmation{
		RegistrationID: "reg-1",
		EventID:        "ev-1",
		Recipient:      "sam@example.com",
		Name:           "Sam",
		Subscribed:     true,
	}
}

func TestLogSender_Succeeds(t *testing.T) {
	var buf bytes.Buffer
	sender := &LogSender{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	assert.NoError(t, sender.SendConfirmation(context.Background(), newTestConfirmation()))
}

func TestLogSender_LogsConfirmation(t *testing.T) {
	var buf bytes.Buffer
	sender := &LogSender{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	require.NoError(t, sender.SendConfirmation(context.Background(), newTestConfirmation()))

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry), "failed to parse log output")

	assert.Equal(t, "registration confirmation", logEntry["msg"])
	assert.Equal(t, "sam@example.com", logEntry["recipient"])
	assert.Equal(t, true, logEntry["subscribed"])
}

func TestLogSender_ImplementsSenderInterface(t *testing.T) {
	var _ Sender = (*LogSender)(nil)
}
