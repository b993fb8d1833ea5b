package booking

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"cinemago-cli/model"
	"cinemago-cli/service"
)

const minBookingAge = 18

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// BookingAPI is the slice of the API client the submitter needs.
type BookingAPI interface {
	Book(ctx context.Context, req model.BookingRequest) (model.Order, error)
}

// Submitter validates a booking request locally and sends it exactly once.
// In-flight duplicate suppression (disabling the submit control) is the
// caller's responsibility.
type Submitter struct {
	api BookingAPI
}

// NewSubmitter creates a submitter over the given API client.
func NewSubmitter(api BookingAPI) *Submitter {
	return &Submitter{api: api}
}

// Validate runs the local checks without touching the network.
func Validate(req model.BookingRequest) error {
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return &ValidationError{Field: "email", Reason: "must look like local@domain"}
	}
	if strings.TrimSpace(req.Seat) == "" {
		return &ValidationError{Field: "seat", Reason: "no seat selected"}
	}
	if req.SessionID <= 0 {
		return &ValidationError{Field: "session", Reason: "no session selected"}
	}
	if req.Age < minBookingAge {
		return &ValidationError{Field: "age", Reason: "must be 18 or older"}
	}
	return nil
}

// Submit books the seat. Local validation failures short-circuit with a
// ValidationError before any network call; a server refusal comes back as a
// RejectedError with the server's message verbatim; no response at all
// becomes a NetworkError. Never retried.
func (s *Submitter) Submit(ctx context.Context, req model.BookingRequest) (model.Order, error) {
	if err := Validate(req); err != nil {
		return model.Order{}, err
	}

	order, err := s.api.Book(ctx, req)
	if err != nil {
		var apiErr *service.APIError
		if errors.As(err, &apiErr) {
			return model.Order{}, &RejectedError{StatusCode: apiErr.StatusCode, Message: apiErr.Message}
		}
		var schemaErr *service.SchemaError
		if errors.As(err, &schemaErr) {
			return model.Order{}, err
		}
		return model.Order{}, &NetworkError{Err: err}
	}
	return order, nil
}
