package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNoIdentity is returned when an operation needs a resolved user and the session is a guest.
	ErrNoIdentity = errors.New("no authenticated identity")

	// ErrNoGuestSession is returned when a guest call carries no usable session id.
	ErrNoGuestSession = errors.New("guest session id missing or invalid")

	// ErrEmptySelection is returned when a submission has no selected books.
	ErrEmptySelection = errors.New("no books selected")

	// ErrInvalidTransition is returned for status changes the state machine does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConfirmationRequired is returned when an irreversible action was not confirmed.
	ErrConfirmationRequired = errors.New("confirmation required")

	ErrUnauthenticated   = errors.New("session expired or missing")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrMalformedResponse = errors.New("malformed api response")
	ErrSuperseded        = errors.New("superseded by a newer request")
)

// ValidationError lists the fields that failed input validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" "+e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// APIError is a non-2xx answer from the library API not covered by a sentinel.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("library api returned %d", e.StatusCode)
	}
	return fmt.Sprintf("library api returned %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether retrying the same call later may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrEmptySelection)
}
