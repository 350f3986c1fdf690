package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/youmna-rabie/event-registry/internal/notify"
	"github.com/youmna-rabie/event-registry/internal/registration"
)

// handleCreateRegistration responds to POST /api/registrations. Registering
// for an unknown event is a client error, not a missing resource.
func (s *Server) handleCreateRegistration(w http.ResponseWriter, r *http.Request) {
	var req createRegistrationRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeRequestError(w, r, err)
		return
	}

	reg, err := s.registrations.Create(req.input())
	switch {
	case errors.Is(err, registration.ErrEventNotFound):
		writeError(w, http.StatusBadRequest, msgEventNotFound)
		return
	case err != nil:
		s.writeRequestError(w, r, err)
		return
	}
	s.publish(r.Context(), notify.NewRegistrationCreated(reg))

	writeJSON(w, http.StatusOK, reg)
}

// handleGetRegistration responds to GET /api/registrations/{id}.
func (s *Server) handleGetRegistration(w http.ResponseWriter, r *http.Request) {
	reg, err := s.registrations.Get(chi.URLParam(r, "id"))
	if errors.Is(err, registration.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgRegistrationNotFound)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// handleListRegistrations responds to GET /api/events/{id}/registrations.
func (s *Server) handleListRegistrations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.events.Exists(id) {
		writeError(w, http.StatusNotFound, msgEventNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.registrations.ListByEvent(id))
}
