package raidhelper

import (
	"errors"
	"fmt"
)

// ErrInvalidURL indicates that the given URL does not point to the Raid-Helper API.
var ErrInvalidURL = errors.New("invalid Raid-Helper URL")

// ErrFetchFailed indicates that the event could not be downloaded.
var ErrFetchFailed = errors.New("failed to fetch event")

// ErrMalformedPayload indicates that the response body is not an event JSON object.
var ErrMalformedPayload = errors.New("malformed event payload")

// StatusError is returned when the API responds with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("raid-helper api returned status: %s", e.Status)
}

// Is reports StatusError as a fetch failure.
func (e *StatusError) Is(target error) bool {
	return target == ErrFetchFailed
}
