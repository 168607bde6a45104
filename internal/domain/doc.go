// Package domain contains the core entities of itinerary generation: the
// job record with its processing/completed/failed state machine and the
// itinerary value it produces. It is independent of storage, transport and
// the generation backend.
package domain
