package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/youmna-rabie/event-registry/internal/config"
	"github.com/youmna-rabie/event-registry/internal/event"
	"github.com/youmna-rabie/event-registry/internal/notify"
	"github.com/youmna-rabie/event-registry/internal/registration"
)

const (
	msgEventNotFound        = "Event not found"
	msgRegistrationNotFound = "Registration not found"
	msgInvalidBody          = "Invalid request body"
	msgValidation           = "Validation failed"
	msgInternal             = "An internal error occurred"
)

// Server is the HTTP API in front of the event and registration stores.
type Server struct {
	cfg           *config.Config
	events        event.Store
	registrations registration.Store
	publisher     notify.Publisher
	validate      *validator.Validate
	router        chi.Router
	logger        *slog.Logger
}

// NewServer creates a Server wired with the given dependencies. A nil
// publisher discards notifications.
func NewServer(
	cfg *config.Config,
	events event.Store,
	registrations registration.Store,
	publisher notify.Publisher,
	logger *slog.Logger,
) *Server {
	if publisher == nil {
		publisher = notify.Discard{}
	}
	s := &Server{
		cfg:           cfg,
		events:        events,
		registrations: registrations,
		publisher:     publisher,
		validate:      newValidator(),
		logger:        logger,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logging(logger))
	r.Use(Recovery(logger))
	r.Use(CORS(cfg.Server.AllowedOrigins))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", s.handleListEvents)
			r.Post("/", s.handleCreateEvent)
			r.Get("/{id}", s.handleGetEvent)
			r.Put("/{id}", s.handleUpdateEvent)
			r.Delete("/{id}", s.handleDeleteEvent)
			r.Get("/{id}/registrations", s.handleListRegistrations)
		})
		r.Route("/registrations", func(r chi.Router) {
			r.Post("/", s.handleCreateRegistration)
			r.Get("/{id}", s.handleGetRegistration)
		})
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleHealth responds to GET /health with a liveness check and store sizes.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"events":        s.events.Count(),
		"registrations": s.registrations.Count(),
	})
}

// publish hands msg to the notification bus. Failures are logged only.
func (s *Server) publish(ctx context.Context, msg any) {
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "failed to publish notification",
			"error", err,
			"request_id", RequestIDFromContext(ctx),
		)
	}
}

// writeRequestError answers a decode or validation failure. Anything that is
// not a client error becomes a 500.
func (s *Server) writeRequestError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		writeError(w, http.StatusBadRequest, reqErr.msg, reqErr.details...)
		return
	}
	s.logger.ErrorContext(r.Context(), "request handling failed",
		"error", err,
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(r.Context()),
	)
	writeError(w, http.StatusInternalServerError, msgInternal)
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string, details ...string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
