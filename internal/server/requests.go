package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/youmna-rabie/event-registry/internal/event"
	"github.com/youmna-rabie/event-registry/internal/registration"
	"github.com/youmna-rabie/event-registry/internal/types"
)

const maxBodyBytes = 1 << 20

// createEventRequest is the body of POST /api/events.
type createEventRequest struct {
	Name      string `json:"name" validate:"required,notblank,max=200"`
	Location  string `json:"location" validate:"required,notblank,max=500"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,timeofday"`
}

func (r createEventRequest) input() event.Input {
	// Both values have already passed validation.
	date, _ := types.ParseDate(r.Date)
	start, _ := types.ParseTimeOfDay(r.StartTime)
	return event.Input{
		Name:      r.Name,
		Location:  r.Location,
		Date:      date,
		StartTime: start,
	}
}

// updateEventRequest is the body of PUT /api/events/{id}. Absent fields are
// left unchanged.
type updateEventRequest struct {
	Name      *string `json:"name" validate:"omitnil,min=1,max=200"`
	Location  *string `json:"location" validate:"omitnil,min=1,max=500"`
	Date      *string `json:"date" validate:"omitnil,datetime=2006-01-02"`
	StartTime *string `json:"startTime" validate:"omitnil,timeofday"`
}

func (r updateEventRequest) patch() event.Patch {
	p := event.Patch{Name: r.Name, Location: r.Location}
	if r.Date != nil {
		d, _ := types.ParseDate(*r.Date)
		p.Date = &d
	}
	if r.StartTime != nil {
		t, _ := types.ParseTimeOfDay(*r.StartTime)
		p.StartTime = &t
	}
	return p
}

// createRegistrationRequest is the body of POST /api/registrations.
type createRegistrationRequest struct {
	EventID            string `json:"eventId" validate:"required"`
	Name               string `json:"name" validate:"required,notblank,max=100"`
	Email              string `json:"email" validate:"required,email"`
	Pronouns           string `json:"pronouns" validate:"required,notblank,max=50"`
	OptInCommunication *bool  `json:"optInCommunication" validate:"required"`
}

func (r createRegistrationRequest) input() registration.Input {
	return registration.Input{
		EventID:            r.EventID,
		Name:               r.Name,
		Email:              r.Email,
		Pronouns:           r.Pronouns,
		OptInCommunication: *r.OptInCommunication,
	}
}

// newValidator returns a validator that reports JSON field names and knows the
// notblank and timeofday tags.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validateNotBlank)
	_ = v.RegisterValidation("timeofday", validateTimeOfDay)
	return v
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	_, err := types.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

// requestError is a client error carrying the response message and details.
type requestError struct {
	msg     string
	details []string
}

func (e *requestError) Error() string {
	if len(e.details) == 0 {
		return e.msg
	}
	return e.msg + ": " + strings.Join(e.details, "; ")
}

// decodeAndValidate decodes the JSON body of r into dst, rejecting a null
// body, unknown fields and trailing data, then validates dst.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	var raw json.RawMessage
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&raw); err != nil {
		return &requestError{msg: msgInvalidBody, details: []string{decodeDetail(err)}}
	}
	if dec.More() {
		return &requestError{msg: msgInvalidBody, details: []string{"body must contain a single JSON object"}}
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return &requestError{msg: msgInvalidBody, details: []string{"body must not be null"}}
	}

	strict := json.NewDecoder(bytes.NewReader(raw))
	strict.DisallowUnknownFields()
	if err := strict.Decode(dst); err != nil {
		return &requestError{msg: msgInvalidBody, details: []string{decodeDetail(err)}}
	}

	if err := s.validate.StructCtx(r.Context(), dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return &requestError{msg: msgValidation, details: validationDetails(verrs)}
		}
		return fmt.Errorf("validating request: %w", err)
	}
	return nil
}

func decodeDetail(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return "body must not be empty"
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr) && typeErr.Field == "":
		return "body must be a JSON object"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return "unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field ")
	default:
		return err.Error()
	}
}

func validationDetails(verrs validator.ValidationErrors) []string {
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldMessage(fe))
	}
	return details
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "notblank":
		return field + " must not be blank"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "timeofday":
		return field + " must be a time in HH:MM or HH:MM:SS format"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
