package store

import "errors"

// Common store errors used across store implementations.
var (
	// ErrJobAlreadyExists is returned when a create would land on an
	// occupied key. Identifier allocation makes this unreachable in normal
	// operation, but the contract must not silently overwrite.
	ErrJobAlreadyExists = errors.New("job record already exists")

	// ErrJobNotFound is returned when a partial update targets a record
	// that does not exist.
	ErrJobNotFound = errors.New("job record not found")

	// ErrStoreUnavailable is returned on transport or authentication
	// failures talking to the document store. During the terminal write of
	// a background sequence this is unrecoverable for the job: the record
	// stays in processing and the failure is reported to the operator
	// surface instead.
	ErrStoreUnavailable = errors.New("document store unavailable")
)
