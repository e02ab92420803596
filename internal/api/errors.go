package api

import (
	"errors"
	"fmt"
)

// ErrNotArray is returned when the API answers 2xx with a JSON document that
// is not an array.
var ErrNotArray = errors.New("API response is not an array")

// ErrInvalidWorkoutID is returned before any request when the workout id is
// not a UUID.
var ErrInvalidWorkoutID = errors.New("invalid workout ID")

// StatusError reports a non-2xx response.
type StatusError struct {
	Resource   string // "sessions" or "exercises"
	StatusCode int
	Status     string // reason phrase, e.g. "Not Found"
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to fetch %s: %d %s", e.Resource, e.StatusCode, e.Status)
}
