package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/youmna-rabie/event-registry/internal/event"
	"github.com/youmna-rabie/event-registry/internal/notify"
	"github.com/youmna-rabie/event-registry/internal/types"
)

// handleListEvents responds to GET /api/events. An unparsable date query
// parameter is ignored rather than rejected.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var f event.Filter
	if raw := strings.TrimSpace(q.Get("date")); raw != "" {
		if d, err := types.ParseDate(raw); err == nil {
			f.Date = &d
		}
	}
	f.Location = q.Get("location")

	writeJSON(w, http.StatusOK, s.events.List(f))
}

// handleCreateEvent responds to POST /api/events.
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeRequestError(w, r, err)
		return
	}

	ev := s.events.Create(req.input())
	s.publish(r.Context(), notify.NewEventCreated(ev))

	writeJSON(w, http.StatusOK, ev)
}

// handleGetEvent responds to GET /api/events/{id}.
func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := s.events.Get(chi.URLParam(r, "id"))
	if errors.Is(err, event.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgEventNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// handleUpdateEvent responds to PUT /api/events/{id}.
func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req updateEventRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeRequestError(w, r, err)
		return
	}

	ev, err := s.events.Update(chi.URLParam(r, "id"), req.patch())
	if errors.Is(err, event.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgEventNotFound)
		return
	}
	s.publish(r.Context(), notify.NewEventUpdated(ev))

	writeJSON(w, http.StatusOK, ev)
}

// handleDeleteEvent responds to DELETE /api/events/{id}. Registrations for
// the event are kept.
func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.events.Delete(id) {
		writeError(w, http.StatusNotFound, msgEventNotFound)
		return
	}
	s.publish(r.Context(), notify.EventDeleted{EventID: id, OccurredAt: time.Now().UTC()})

	w.WriteHeader(http.StatusNoContent)
}
