package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youmna-rabie/event-registry/internal/config"
	"github.com/youmna-rabie/event-registry/internal/event"
	"github.com/youmna-rabie/event-registry/internal/registration"
	"github.com/youmna-rabie/event-registry/internal/server"
	"github.com/youmna-rabie/event-registry/internal/types"
)

type fixture struct {
	client        *Client
	events        *event.MemoryStore
	registrations *registration.MemoryStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	events := event.NewMemoryStore()
	registrations := registration.NewMemoryStore(events)
	cfg := &config.Config{Server: config.ServerConfig{AllowedOrigins: []string{"*"}}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ts := httptest.NewServer(server.NewServer(cfg, events, registrations, nil, logger))
	t.Cleanup(ts.Close)

	return fixture{
		client:        New(ts.URL+"/", ts.Client()),
		events:        events,
		registrations: registrations,
	}
}

func (f fixture) addEvent(name, location string, date types.Date, start types.TimeOfDay) types.Event {
	return f.events.Create(event.Input{Name: name, Location: location, Date: date, StartTime: start})
}

func TestListEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	later := f.addEvent("Later", "Main Hall", types.NewDate(2025, time.March, 2), types.NewTimeOfDay(9, 0, 0))
	sooner := f.addEvent("Sooner", "Room B", types.NewDate(2025, time.March, 1), types.NewTimeOfDay(9, 0, 0))

	all, err := f.client.ListEvents(ctx, event.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, sooner.ID, all[0].ID)
	assert.Equal(t, later.ID, all[1].ID)
	assert.Equal(t, sooner.StartTime, all[0].StartTime)

	d := types.NewDate(2025, time.March, 2)
	byDate, err := f.client.ListEvents(ctx, event.Filter{Date: &d})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, later.ID, byDate[0].ID)

	byLocation, err := f.client.ListEvents(ctx, event.Filter{Location: "room b"})
	require.NoError(t, err)
	require.Len(t, byLocation, 1)
	assert.Equal(t, sooner.ID, byLocation[0].ID)
}

func TestGetEvent(t *testing.T) {
	f := newFixture(t)
	ev := f.addEvent("Meetup", "Main Hall", types.NewDate(2025, time.March, 1), types.NewTimeOfDay(18, 30, 0))

	got, err := f.client.GetEvent(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev.ID, got.ID)
	assert.Equal(t, ev.Date, got.Date)
	assert.True(t, ev.CreatedAt.Equal(got.CreatedAt))
}

func TestGetEventNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.client.GetEvent(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Event not found", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "404")
}

func TestListRegistrations(t *testing.T) {
	f := newFixture(t)
	ev := f.addEvent("Meetup", "Main Hall", types.NewDate(2025, time.March, 1), types.NewTimeOfDay(9, 0, 0))

	reg, err := f.registrations.Create(registration.Input{
		EventID:            ev.ID,
		Name:               "Sam",
		Email:              "sam@example.com",
		Pronouns:           "they/them",
		OptInCommunication: true,
	})
	require.NoError(t, err)

	regs, err := f.client.ListRegistrations(context.Background(), ev.ID)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, reg.ID, regs[0].ID)
	assert.True(t, regs[0].OptInCommunication)
}

func TestListRegistrationsUnknownEvent(t *testing.T) {
	f := newFixture(t)

	_, err := f.client.ListRegistrations(context.Background(), "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestAPIErrorWithoutJSONBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	_, err := New(ts.URL, ts.Client()).ListEvents(context.Background(), event.Filter{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "api returned 502: Bad Gateway", apiErr.Error())
}

func TestAPIErrorDetails(t *testing.T) {
	err := &APIError{StatusCode: 400, Message: "Validation failed", Details: []string{"name is required", "email must be a valid email address"}}
	assert.Equal(t, "api returned 400: Validation failed (name is required; email must be a valid email address)", err.Error())
}

func TestConnectionError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url, nil).GetEvent(context.Background(), "x")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
