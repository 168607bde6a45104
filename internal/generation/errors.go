package generation

import "errors"

// Common errors returned by generator implementations
var (
	// ErrBackendFailure is returned when the generation backend answers
	// with a non-success status or the request cannot be delivered. The
	// wrapped message carries the backend's diagnostic text.
	ErrBackendFailure = errors.New("generation backend request failed")

	// ErrInvalidResponse is returned when a success response lacks the
	// expected envelope or its content does not parse into a structurally
	// well-formed itinerary.
	ErrInvalidResponse = errors.New("invalid response from generation backend")

	// ErrInvalidConfig is returned when a generator is constructed with
	// unusable configuration.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
