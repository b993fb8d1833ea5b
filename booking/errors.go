package booking

import "fmt"

// LayoutOverflowError means the requested seat count cannot be addressed by
// the row alphabet. The caller must surface it; the layout is never clipped.
type LayoutOverflowError struct {
	Total    int
	Capacity int
}

func (e *LayoutOverflowError) Error() string {
	return fmt.Sprintf("seat count %d exceeds layout capacity %d", e.Total, e.Capacity)
}

// InvalidSelectionError means the seat is taken or not part of the layout.
// The previous selection, if any, stays in place.
type InvalidSelectionError struct {
	Seat   string
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("cannot select seat %s: %s", e.Seat, e.Reason)
}

// ValidationError is a local pre-network rejection of a booking request. No
// request has been sent; the user corrects the input and tries again.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RejectedError means the server explicitly declined the booking. Message
// is the server's text verbatim; seat-taken races land here.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("booking rejected (status %d)", e.StatusCode)
}

// NetworkError means no response arrived. The user may retry manually;
// nothing retries automatically.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
